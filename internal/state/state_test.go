package state

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	data    map[string]string
	setErr    error
	getErr    error
	removeErr error
	sets      int
	removes int
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (m *memStorage) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(key string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removes++
	delete(m.data, key)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newState(t *testing.T, st Storage, now time.Time) *AppState {
	t.Helper()
	s, err := New(st, WithClock(fixedClock(now)))
	require.NoError(t, err)
	return s
}

func TestNewStartsAtCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC)
	s := newState(t, newMemStorage(), now)

	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), s.ViewDate())
	assert.Equal(t, "2026-10-01", s.ViewDateString())
	assert.Equal(t, "October 2026", s.MonthLabel())
	assert.False(t, s.MultiProfileMode())
	assert.Empty(t, s.SelectedProfileIDs())
	assert.False(t, s.Modal().Open())
}

func TestSetViewDateNormalizes(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	dates := []time.Time{
		time.Date(2024, time.February, 29, 23, 59, 59, 999, time.UTC),
		time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 15, 8, 30, 0, 0, time.FixedZone("UTC-3", -3*3600)),
	}
	for _, d := range dates {
		s.SetViewDate(d)
		got := s.ViewDate()
		assert.Equal(t, d.Year(), got.Year())
		assert.Equal(t, d.Month(), got.Month())
		assert.Equal(t, 1, got.Day())
		assert.Zero(t, got.Hour()+got.Minute()+got.Second()+got.Nanosecond())
		assert.Equal(t, FirstOfMonth(got), got)
	}
}

func TestPreviousMonthCrossesYearBoundary(t *testing.T) {
	s := newState(t, newMemStorage(), time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC))

	s.PreviousMonth()
	assert.Equal(t, "2025-12-01", s.ViewDateString())

	s.NextMonth()
	assert.Equal(t, "2026-01-01", s.ViewDateString())
}

func TestNextMonthCrossesYearBoundary(t *testing.T) {
	s := newState(t, newMemStorage(), time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))

	s.NextMonth()
	assert.Equal(t, "2026-01-01", s.ViewDateString())
}

func TestMonthRoundTrip(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 36; i++ {
		d := start.AddDate(0, i, 0)
		s.SetViewDate(d)
		s.PreviousMonth()
		s.NextMonth()
		assert.Equal(t, d, s.ViewDate(), "round trip from %s", d.Format(DateLayout))

		s.NextMonth()
		s.PreviousMonth()
		assert.Equal(t, d, s.ViewDate(), "reverse round trip from %s", d.Format(DateLayout))
	}
}

func TestGoToCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	s := newState(t, newMemStorage(), now)

	s.SetViewDate(time.Date(2019, time.March, 3, 0, 0, 0, 0, time.UTC))
	s.GoToCurrentMonth()
	assert.Equal(t, "2026-10-01", s.ViewDateString())
}

func TestSetMultiProfileModePersists(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())

	require.NoError(t, s.SetMultiProfileMode(true))
	assert.True(t, s.MultiProfileMode())
	assert.Equal(t, "true", st.data[KeyMultiProfileMode])

	require.NoError(t, s.ToggleMultiProfileMode())
	assert.False(t, s.MultiProfileMode())
	assert.Equal(t, "false", st.data[KeyMultiProfileMode])
}

func TestDisablingMultiProfileModeClearsSelection(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())

	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a", "b"}))
	require.Contains(t, st.data, KeySelectedProfileIDs)

	require.NoError(t, s.SetMultiProfileMode(false))
	assert.Empty(t, s.SelectedProfileIDs())
	assert.NotContains(t, st.data, KeySelectedProfileIDs)

	// Disabling again from an already-disabled state still removes the key.
	st.data[KeySelectedProfileIDs] = `["stale"]`
	require.NoError(t, s.SetMultiProfileMode(false))
	assert.Empty(t, s.SelectedProfileIDs())
	assert.NotContains(t, st.data, KeySelectedProfileIDs)
}

func TestSetSelectedProfileIDsPersistsJSON(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))

	require.NoError(t, s.SetSelectedProfileIDs([]string{"p1", "p2", "p1"}))
	assert.Equal(t, []string{"p1", "p2", "p1"}, s.SelectedProfileIDs())
	assert.Equal(t, `["p1","p2","p1"]`, st.data[KeySelectedProfileIDs])

	require.NoError(t, s.SetSelectedProfileIDs(nil))
	assert.Equal(t, `[]`, st.data[KeySelectedProfileIDs])
}

func TestSelectionRequiresMultiProfileMode(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())

	err := s.ToggleProfileSelection("p1")
	assert.ErrorIs(t, err, ErrMultiProfileDisabled)
	assert.Empty(t, s.SelectedProfileIDs())
	assert.NotContains(t, st.data, KeySelectedProfileIDs)
}

func TestToggleProfileSelectionDoubleToggle(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a", "b"}))

	before := s.SelectedProfileIDs()
	setsBefore := st.sets

	require.NoError(t, s.ToggleProfileSelection("c"))
	assert.True(t, s.IsProfileSelected("c"))
	require.NoError(t, s.ToggleProfileSelection("c"))
	assert.ElementsMatch(t, before, s.SelectedProfileIDs())

	require.NoError(t, s.ToggleProfileSelection("a"))
	assert.False(t, s.IsProfileSelected("a"))
	require.NoError(t, s.ToggleProfileSelection("a"))
	assert.ElementsMatch(t, before, s.SelectedProfileIDs())

	// Every toggle re-persists the full list.
	assert.Equal(t, setsBefore+4, st.sets)
}

func TestSelectedProfileIDsReturnsCopy(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a"}))

	ids := s.SelectedProfileIDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.SelectedProfileIDs())
}

func TestEffectiveProfileIDs(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	assert.Equal(t, []string{"active"}, s.EffectiveProfileIDs("active"))
	assert.Nil(t, s.EffectiveProfileIDs(""))

	require.NoError(t, s.SetMultiProfileMode(true))
	assert.Equal(t, []string{"active"}, s.EffectiveProfileIDs("active"))

	require.NoError(t, s.SetSelectedProfileIDs([]string{"x", "y"}))
	assert.Equal(t, []string{"x", "y"}, s.EffectiveProfileIDs("active"))
}

func TestWriteFailureLeavesStateUnchanged(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a"}))

	boom := errors.New("quota exceeded")
	st.setErr = boom

	err := s.SetSelectedProfileIDs([]string{"b"})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, s.SelectedProfileIDs())

	err = s.SetMultiProfileMode(false)
	require.ErrorIs(t, err, boom)
	assert.True(t, s.MultiProfileMode())
	assert.Equal(t, []string{"a"}, s.SelectedProfileIDs())
}

func TestRemoveFailureRestoresStoredFlag(t *testing.T) {
	st := newMemStorage()
	s := newState(t, st, time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a"}))

	boom := errors.New("remove failed")
	st.removeErr = boom

	err := s.SetMultiProfileMode(false)
	require.ErrorIs(t, err, boom)
	assert.True(t, s.MultiProfileMode())
	assert.Equal(t, []string{"a"}, s.SelectedProfileIDs())
	assert.Equal(t, "true", st.data[KeyMultiProfileMode], "stored flag should be rolled back")
	assert.Equal(t, `["a"]`, st.data[KeySelectedProfileIDs])
}

func TestNewRestoresPersistedPreferences(t *testing.T) {
	st := newMemStorage()
	st.data[KeyMultiProfileMode] = "true"
	st.data[KeySelectedProfileIDs] = `["p1","p2"]`

	s := newState(t, st, time.Now())
	assert.True(t, s.MultiProfileMode())
	assert.Equal(t, []string{"p1", "p2"}, s.SelectedProfileIDs())
}

func TestNewIgnoresSelectionWhenModeDisabled(t *testing.T) {
	st := newMemStorage()
	st.data[KeyMultiProfileMode] = "false"
	st.data[KeySelectedProfileIDs] = `["p1"]`

	s := newState(t, st, time.Now())
	assert.False(t, s.MultiProfileMode())
	assert.Empty(t, s.SelectedProfileIDs())
}

func TestNewDiscardsMalformedSelection(t *testing.T) {
	for _, raw := range []string{"not-json", `{"a":1}`, `"p1"`, `[1,2]`, `[`} {
		t.Run(raw, func(t *testing.T) {
			st := newMemStorage()
			st.data[KeyMultiProfileMode] = "true"
			st.data[KeySelectedProfileIDs] = raw

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			s, err := New(st, WithLogger(logger))
			require.NoError(t, err)
			assert.Empty(t, s.SelectedProfileIDs())
			assert.True(t, s.MultiProfileMode())
			assert.Contains(t, logs.String(), "discarding stored profile selection")
		})
	}
}

func TestNewReturnsReadError(t *testing.T) {
	st := newMemStorage()
	st.getErr = errors.New("disk gone")

	_, err := New(st)
	require.Error(t, err)
	assert.ErrorIs(t, err, st.getErr)
}

func TestOpenAndCloseModal(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	s.OpenModal(ModalCardForm, CardFormData{CardID: "x"})
	m := s.Modal()
	assert.Equal(t, ModalCardForm, m.Kind)
	assert.Equal(t, CardFormData{CardID: "x"}, m.Data)
	assert.Nil(t, m.Confirm)

	s.CloseModal()
	assert.Equal(t, Modal{}, s.Modal())
	assert.False(t, s.Modal().Open())
}

func TestConvenienceOpeners(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	cases := []struct {
		open func()
		kind ModalKind
		data any
	}{
		{func() { s.OpenCardForm("c1") }, ModalCardForm, CardFormData{CardID: "c1"}},
		{func() { s.OpenInstallmentForm("i1") }, ModalInstallmentForm, InstallmentFormData{InstallmentID: "i1"}},
		{func() { s.OpenOneTimeBillModal("") }, ModalOneTimeBill, OneTimeBillData{}},
		{func() { s.OpenProfileForm("p1") }, ModalProfileForm, ProfileFormData{ProfileID: "p1"}},
		{func() { s.OpenTransferCardModal("c2") }, ModalTransferCard, TransferCardData{CardID: "c2"}},
	}
	for _, tc := range cases {
		tc.open()
		m := s.Modal()
		assert.Equal(t, tc.kind, m.Kind)
		assert.Equal(t, tc.data, m.Data)
	}
}

func TestOpenModalDiscardsConfirm(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	s.Confirm(ConfirmConfig{Title: "Delete card?", Severity: SeverityDanger})
	require.NotNil(t, s.Modal().Confirm)

	s.OpenProfileForm("")
	assert.Nil(t, s.Modal().Confirm)
	assert.Equal(t, ModalProfileForm, s.Modal().Kind)
}

func TestConfirmCarriesConfigVerbatim(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	fired := false
	cfg := ConfirmConfig{
		Title:        "Remove bill",
		Message:      "This cannot be undone.",
		Severity:     SeverityWarning,
		ConfirmLabel: "Remove",
		CancelLabel:  "Keep",
		OnConfirm: func(context.Context) error {
			fired = true
			return nil
		},
	}
	s.OpenConfirmDialog(cfg)

	m := s.Modal()
	require.Equal(t, ModalConfirm, m.Kind)
	require.NotNil(t, m.Confirm)
	assert.Equal(t, cfg.Title, m.Confirm.Title)
	assert.Equal(t, cfg.Message, m.Confirm.Message)
	assert.Equal(t, cfg.Severity, m.Confirm.Severity)
	assert.Equal(t, cfg.ConfirmLabel, m.Confirm.ConfirmLabel)
	assert.Equal(t, cfg.CancelLabel, m.Confirm.CancelLabel)
	assert.Nil(t, m.Data)

	require.NoError(t, m.Confirm.OnConfirm(context.Background()))
	assert.True(t, fired)
}

func TestWatchReportsChanges(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	ch, cancel := s.Watch(8)

	s.NextMonth()
	require.NoError(t, s.SetMultiProfileMode(true))
	s.OpenCardForm("")

	var fields []Field
	for i := 0; i < 3; i++ {
		fields = append(fields, (<-ch).Field)
	}
	assert.Equal(t, []Field{FieldViewDate, FieldMultiProfileMode, FieldModal}, fields)

	cancel()
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after cancel")

	// Mutations after cancel must not panic on the closed channel.
	s.NextMonth()
}

func TestWatchDropsWhenFull(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	ch, cancel := s.Watch(1)
	defer cancel()

	s.NextMonth()
	s.NextMonth()
	s.NextMonth()

	assert.Len(t, ch, 1)
}

func TestModeSubscriberSeesClearedSelection(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))
	require.NoError(t, s.SetSelectedProfileIDs([]string{"a", "b"}))

	var modes []bool
	var selections [][]string
	cancel := s.SubscribeMultiProfileMode(func(on bool) {
		modes = append(modes, on)
		selections = append(selections, s.SelectedProfileIDs())
	})
	defer cancel()

	require.NoError(t, s.SetMultiProfileMode(false))
	require.Equal(t, []bool{false}, modes)
	assert.Empty(t, selections[0])
}

func TestSubscribeViewDate(t *testing.T) {
	s := newState(t, newMemStorage(), time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC))

	var got []string
	cancel := s.SubscribeViewDate(func(d time.Time) { got = append(got, d.Format(DateLayout)) })
	s.NextMonth()
	cancel()
	s.NextMonth()

	assert.Equal(t, []string{"2026-02-01"}, got)
}

func TestSubscribeModal(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	var kinds []ModalKind
	cancel := s.SubscribeModal(func(m Modal) { kinds = append(kinds, m.Kind) })
	defer cancel()

	s.OpenCardForm("")
	s.CloseModal()
	assert.Equal(t, []ModalKind{ModalCardForm, ModalNone}, kinds)
}

func TestOpenModalNoneDropsPayload(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())

	s.OpenCardForm("c1")
	s.OpenModal(ModalNone, CardFormData{CardID: "leftover"})
	assert.Equal(t, Modal{}, s.Modal())
}

func TestSubscribeSelectedProfileIDs(t *testing.T) {
	s := newState(t, newMemStorage(), time.Now())
	require.NoError(t, s.SetMultiProfileMode(true))

	var seen [][]string
	cancel := s.SubscribeSelectedProfileIDs(func(ids []string) { seen = append(seen, ids) })
	defer cancel()

	require.NoError(t, s.ToggleProfileSelection("a"))
	require.NoError(t, s.ToggleProfileSelection("b"))
	require.Len(t, seen, 2)
	assert.Equal(t, []string{"a", "b"}, seen[1])
}
