// Package state holds the application-wide view state of billtrack: the month
// being viewed, multi-profile selection and the active modal.
//
// AppState is the sole owner of these values. UI code reads them through the
// accessor methods or subscribes to changes with Watch.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/billtrack/internal/observe"
)

// Durable storage keys.
const (
	KeyMultiProfileMode   = "bt_multi_profile_mode"
	KeySelectedProfileIDs = "bt_selected_profile_ids"
)

// Storage is the durable key/value store preferences are mirrored to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// AppState is the observable state container shared by all UI components.
type AppState struct {
	storage Storage
	now     func() time.Time
	logger  *slog.Logger

	viewDate         *observe.Value[time.Time]
	multiProfileMode *observe.Value[bool]
	selectedIDs      *observe.Value[[]string]
	modal            *observe.Value[Modal]
}

// Option configures an AppState.
type Option func(*AppState)

// WithClock overrides the clock used for the initial view date and
// GoToCurrentMonth.
func WithClock(now func() time.Time) Option {
	return func(s *AppState) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for load-time diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *AppState) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds an AppState seeded from storage. A malformed selected-profile
// payload is logged and discarded; only a storage read failure is returned.
func New(storage Storage, opts ...Option) (*AppState, error) {
	s := &AppState{
		storage: storage,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	multi, err := s.loadMultiProfileMode()
	if err != nil {
		return nil, err
	}
	var selected []string
	if multi {
		selected, err = s.loadSelectedIDs()
		if err != nil {
			return nil, err
		}
	}

	s.viewDate = observe.NewValue(FirstOfMonth(s.now()))
	s.multiProfileMode = observe.NewValue(multi)
	s.selectedIDs = observe.NewValue(selected)
	s.modal = observe.NewValue(Modal{})
	return s, nil
}

func (s *AppState) loadMultiProfileMode() (bool, error) {
	raw, ok, err := s.storage.Get(KeyMultiProfileMode)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", KeyMultiProfileMode, err)
	}
	return ok && raw == "true", nil
}

func (s *AppState) loadSelectedIDs() ([]string, error) {
	raw, ok, err := s.storage.Get(KeySelectedProfileIDs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", KeySelectedProfileIDs, err)
	}
	if !ok {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("discarding stored profile selection",
			"key", KeySelectedProfileIDs, "err", err)
		return nil, nil
	}
	return ids, nil
}
