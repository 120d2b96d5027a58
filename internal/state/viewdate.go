package state

import "time"

// DateLayout is the canonical string form of the view date.
const DateLayout = "2006-01-02"

// FirstOfMonth returns midnight on the first day of t's month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ViewDate returns the month currently being viewed, always the 1st.
func (s *AppState) ViewDate() time.Time {
	return s.viewDate.Get()
}

// ViewDateString returns the view date as YYYY-MM-DD.
func (s *AppState) ViewDateString() string {
	return s.viewDate.Get().Format(DateLayout)
}

// MonthLabel returns the view date as e.g. "October 2026".
func (s *AppState) MonthLabel() string {
	return s.viewDate.Get().Format("January 2006")
}

// PreviousMonth moves the view back one calendar month.
func (s *AppState) PreviousMonth() {
	s.viewDate.Update(func(d time.Time) time.Time {
		return FirstOfMonth(FirstOfMonth(d).AddDate(0, -1, 0))
	})
}

// NextMonth moves the view forward one calendar month.
func (s *AppState) NextMonth() {
	s.viewDate.Update(func(d time.Time) time.Time {
		return FirstOfMonth(FirstOfMonth(d).AddDate(0, 1, 0))
	})
}

// SetViewDate jumps to the month containing t.
func (s *AppState) SetViewDate(t time.Time) {
	s.viewDate.Set(FirstOfMonth(t))
}

// GoToCurrentMonth jumps to the month containing the clock's current time.
func (s *AppState) GoToCurrentMonth() {
	s.SetViewDate(s.now())
}

// SubscribeViewDate calls fn with every new view date.
func (s *AppState) SubscribeViewDate(fn func(time.Time)) (cancel func()) {
	return s.viewDate.Subscribe(fn)
}
