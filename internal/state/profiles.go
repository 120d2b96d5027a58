package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrMultiProfileDisabled is returned when the selection is changed while
// multi-profile mode is off.
var ErrMultiProfileDisabled = errors.New("multi-profile mode is disabled")

// MultiProfileMode reports whether several profiles can be viewed at once.
func (s *AppState) MultiProfileMode() bool {
	return s.multiProfileMode.Get()
}

// SelectedProfileIDs returns a copy of the selected profile ids.
func (s *AppState) SelectedProfileIDs() []string {
	return slices.Clone(s.selectedIDs.Get())
}

// IsProfileSelected reports whether id is in the selection.
func (s *AppState) IsProfileSelected(id string) bool {
	return slices.Contains(s.selectedIDs.Get(), id)
}

// EffectiveProfileIDs returns the profiles the current view covers: the
// selection in multi-profile mode, otherwise just activeID.
func (s *AppState) EffectiveProfileIDs(activeID string) []string {
	if s.MultiProfileMode() {
		if ids := s.SelectedProfileIDs(); len(ids) > 0 {
			return ids
		}
	}
	if activeID == "" {
		return nil
	}
	return []string{activeID}
}

// ToggleMultiProfileMode flips multi-profile mode.
func (s *AppState) ToggleMultiProfileMode() error {
	return s.SetMultiProfileMode(!s.MultiProfileMode())
}

// SetMultiProfileMode sets multi-profile mode and persists it. Disabling the
// mode clears the selection and removes its stored key. If the key cannot be
// removed the stored flag is put back, so storage and memory stay in step.
func (s *AppState) SetMultiProfileMode(enabled bool) error {
	prev := s.MultiProfileMode()
	if err := s.storage.Set(KeyMultiProfileMode, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("saving %s: %w", KeyMultiProfileMode, err)
	}
	if !enabled {
		if err := s.storage.Remove(KeySelectedProfileIDs); err != nil {
			err = fmt.Errorf("removing %s: %w", KeySelectedProfileIDs, err)
			if rbErr := s.storage.Set(KeyMultiProfileMode, strconv.FormatBool(prev)); rbErr != nil {
				return errors.Join(err, fmt.Errorf("restoring %s: %w", KeyMultiProfileMode, rbErr))
			}
			return err
		}
	}

	// Selection goes first so flag subscribers never see off with a selection.
	if !enabled {
		s.selectedIDs.Set(nil)
	}
	s.multiProfileMode.Set(enabled)
	return nil
}

// SetSelectedProfileIDs replaces the selection and persists it as a JSON array.
func (s *AppState) SetSelectedProfileIDs(ids []string) error {
	if !s.MultiProfileMode() {
		return ErrMultiProfileDisabled
	}

	ids = slices.Clone(ids)
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding profile selection: %w", err)
	}
	if err := s.storage.Set(KeySelectedProfileIDs, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", KeySelectedProfileIDs, err)
	}

	s.selectedIDs.Set(ids)
	return nil
}

// ToggleProfileSelection adds id to the selection, or removes it if present.
func (s *AppState) ToggleProfileSelection(id string) error {
	current := s.SelectedProfileIDs()
	if i := slices.Index(current, id); i >= 0 {
		return s.SetSelectedProfileIDs(slices.Delete(current, i, i+1))
	}
	return s.SetSelectedProfileIDs(append(current, id))
}

// SubscribeMultiProfileMode calls fn with every new multi-profile flag.
func (s *AppState) SubscribeMultiProfileMode(fn func(bool)) (cancel func()) {
	return s.multiProfileMode.Subscribe(fn)
}

// SubscribeSelectedProfileIDs calls fn with every new selection.
func (s *AppState) SubscribeSelectedProfileIDs(fn func([]string)) (cancel func()) {
	return s.selectedIDs.Subscribe(func(ids []string) { fn(slices.Clone(ids)) })
}
