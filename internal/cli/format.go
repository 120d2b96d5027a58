// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatOnOff renders a boolean preference.
func FormatOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// FormatAge formats t relative to now, e.g. "3 minutes ago".
// A zero time renders as "never".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

// FormatCount returns "1 profile" / "3 profiles" style counts.
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), singular)
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), plural)
}

// Truncate shortens s to limit runes, ending with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// FormatStoredValue renders a stored preference value for display. JSON
// arrays are shown as a comma-separated list.
func FormatStoredValue(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			if len(items) == 0 {
				return "(none)"
			}
			return strings.Join(items, ", ")
		}
	}
	if trimmed == "" {
		return `""`
	}
	return raw
}
