package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceCenter draws overlay centered on a width x height canvas of base.
func PlaceCenter(base, overlay string, width, height int) string {
	lines := splitToLines(overlay, 0)
	x := (width - maxLineWidth(lines)) / 2
	y := (height - len(lines)) / 2
	return PlaceAt(base, overlay, x, y, width, height)
}

// PlaceAt draws overlay over base with its top-left corner at (x, y). base
// is fitted to width x height first; rows outside the canvas are clipped and
// base columns on either side of the overlay are kept.
func PlaceAt(base, overlay string, x, y, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	baseLines := splitToLines(base, height)
	for i := range baseLines {
		baseLines[i] = padRightANSI(baseLines[i], width)
	}

	overlayLines := splitToLines(overlay, 0)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row >= height {
			break
		}
		target := baseLines[row]

		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		ol := padRightANSI(line, overlayWidth)
		if x+overlayWidth > width {
			ol = ansi.Truncate(ol, width-x, "")
		}
		pos := x + ansi.StringWidth(ol)

		right := dropColumns(target, pos)
		baseLines[row] = left + ol + right
	}
	return strings.Join(baseLines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
