package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/theirongolddev/billtrack/internal/notify"
	"github.com/theirongolddev/billtrack/internal/tui/theme"
)

func TestRenderNotifications(t *testing.T) {
	theme.SetActive("flexoki-dark")
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	if RenderNotifications(nil, 40, 0, now) != "" {
		t.Fatal("empty list should render nothing")
	}

	out := RenderNotifications([]notify.Notification{
		{ID: "1", Level: notify.LevelSuccess, Message: "Profile created", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "2", Level: notify.LevelError, Message: "Could not save", CreatedAt: now},
	}, 40, 6*time.Second, now)

	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Profile created") || !strings.Contains(plain, "Could not save") {
		t.Fatalf("toasts missing messages: %q", plain)
	}
	if !strings.Contains(plain, "2 minutes ago") {
		t.Fatalf("toast missing relative age: %q", plain)
	}
	if strings.Index(plain, "Profile created") > strings.Index(plain, "Could not save") {
		t.Fatal("oldest toast should render first")
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Fatalf("toast line width = %d, want 40: %q", w, ansi.Strip(line))
		}
	}
}

func TestRenderProfileSwitcher(t *testing.T) {
	theme.SetActive("flexoki-dark")

	v := SwitcherView{
		Rows: []ProfileRow{
			{ID: "a", Name: "Personal", Active: true},
			{ID: "b", Name: "Household", Selected: true},
		},
		Cursor: 1,
		Multi:  true,
	}
	plain := ansi.Strip(RenderProfileSwitcher(v, 60))
	if !strings.Contains(plain, "[ ] Personal ●") {
		t.Fatalf("active profile row not rendered: %q", plain)
	}
	if !strings.Contains(plain, "▸ [x] Household") {
		t.Fatalf("cursor row not rendered: %q", plain)
	}
	if !strings.Contains(plain, "1 selected") {
		t.Fatalf("title should count selections: %q", plain)
	}

	v.Multi = false
	v.EditingID = "b"
	v.Editor = "Family|"
	plain = ansi.Strip(RenderProfileSwitcher(v, 60))
	if !strings.Contains(plain, "Family|") || strings.Contains(plain, "Household") {
		t.Fatalf("editing row should show the editor instead of the name: %q", plain)
	}
	if !strings.Contains(plain, "[enter] save") {
		t.Fatalf("editing hint missing: %q", plain)
	}
}

func TestRenderMonthBarWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	bar := RenderMonthBar("October 2026", "Personal", false, 80)
	if w := lipgloss.Width(bar); w != 80 {
		t.Fatalf("month bar width = %d, want 80", w)
	}
	if !strings.Contains(ansi.Strip(bar), "◀ October 2026 ▶") {
		t.Fatalf("month bar = %q", ansi.Strip(bar))
	}
}

func TestRenderStatusBarDropsRightWhenNarrow(t *testing.T) {
	theme.SetActive("flexoki-dark")

	wide := ansi.Strip(RenderStatusBar(60, "? help", "2026-10-01"))
	if !strings.HasSuffix(wide, "2026-10-01 ") {
		t.Fatalf("right text should be flush right: %q", wide)
	}

	narrow := ansi.Strip(RenderStatusBar(12, "? help  q quit", "2026-10-01"))
	if strings.Contains(narrow, "2026") {
		t.Fatalf("right text should be dropped when narrow: %q", narrow)
	}
}
