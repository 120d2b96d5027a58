package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func baseCanvas(rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = "row-" + string(rune('0'+i)) + "..............."
	}
	return strings.Join(lines, "\n")
}

func TestPlaceCenterKeepsBaseRows(t *testing.T) {
	out := PlaceCenter(baseCanvas(9), "Popup", 20, 9)
	lines := strings.Split(out, "\n")

	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(lines[4], "Popup") {
		t.Fatalf("expected popup on middle row, got %q", lines[4])
	}
	if !strings.Contains(lines[0], "row-0") || !strings.Contains(lines[8], "row-8") {
		t.Fatal("expected top and bottom base rows preserved")
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 20 {
			t.Fatalf("line %d width = %d, want 20", i, w)
		}
	}
}

func TestPlaceAtKeepsColumnsAroundOverlay(t *testing.T) {
	out := PlaceAt("abcdefghij", "XY", 3, 0, 10, 1)
	if out != "abcXYfghij" {
		t.Fatalf("PlaceAt = %q, want abcXYfghij", out)
	}
}

func TestPlaceAtClipsToCanvas(t *testing.T) {
	out := PlaceAt("abcdef", "WXYZ", 4, 0, 6, 1)
	if ansi.StringWidth(out) != 6 {
		t.Fatalf("width = %d, want 6 (%q)", ansi.StringWidth(out), out)
	}
	if out != "abcdWX" {
		t.Fatalf("PlaceAt = %q, want abcdWX", out)
	}

	out = PlaceAt("a\nb", "tall\ntaller\ntallest", 0, 1, 3, 2)
	if len(strings.Split(out, "\n")) != 2 {
		t.Fatalf("rows beyond the canvas should be clipped: %q", out)
	}
}
