package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings of the main view.
type keyMap struct {
	PrevMonth    key.Binding
	NextMonth    key.Binding
	ThisMonth    key.Binding
	MultiProfile key.Binding
	Profiles     key.Binding
	NewProfile   key.Binding
	CardForm     key.Binding
	Installment  key.Binding
	OneTimeBill  key.Binding
	TransferCard key.Binding
	ResetPrefs   key.Binding
	Dismiss      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next month"),
		),
		ThisMonth: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
		MultiProfile: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "multi-profile"),
		),
		Profiles: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profiles"),
		),
		NewProfile: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new profile"),
		),
		CardForm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add card"),
		),
		Installment: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "add installment"),
		),
		OneTimeBill: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "one-time bill"),
		),
		TransferCard: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "transfer card"),
		),
		ResetPrefs: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset view"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Profiles, k.MultiProfile, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.ThisMonth},
		{k.Profiles, k.MultiProfile, k.NewProfile},
		{k.CardForm, k.Installment, k.OneTimeBill, k.TransferCard},
		{k.ResetPrefs, k.Dismiss, k.Help, k.Quit},
	}
}
