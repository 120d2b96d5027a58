// Package profile implements the profile registry consumed by the TUI: the
// list of profiles, the active profile and renames.
package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/theirongolddev/billtrack/internal/model"
	"github.com/theirongolddev/billtrack/internal/store"
)

// KeyActiveProfileID is the durable key holding the active profile id.
const KeyActiveProfileID = "bt_active_profile_id"

// DefaultProfileName is seeded when no profiles exist.
const DefaultProfileName = "Personal"

var (
	ErrNotFound    = errors.New("profile not found")
	ErrEmptyName   = errors.New("profile name is empty")
	ErrNameTooLong = errors.New("profile name is too long")
)

// MaxNameLength is the longest accepted profile name, in characters.
const MaxNameLength = 64

type nameInput struct {
	Name string `validate:"required,max=64"`
}

var validate = validator.New()

// cleanName trims name and checks it against the naming rules.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := validate.Struct(nameInput{Name: name})
	if err == nil {
		return name, nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
		return "", ErrNameTooLong
	}
	return "", ErrEmptyName
}

// Registry is the read/write surface the UI needs from profiles.
type Registry interface {
	Profiles() []model.Profile
	ActiveProfile() (model.Profile, bool)
	ActiveProfileID() string
	SetActiveProfile(id string) error
	RenameProfile(id, name string) error
	CreateProfile(name string) (model.Profile, error)
}

// Backend is the persistence the Service needs; *store.Store satisfies it.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Profiles() ([]model.Profile, error)
	InsertProfile(p model.Profile) error
	RenameProfile(id, name string) error
}

// Service is a Registry backed by the billtrack database. Profiles are cached
// in memory and written through on every change.
type Service struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	profiles []model.Profile
	activeID string
}

var _ Registry = (*Service)(nil)

// NewService loads profiles from backend, seeding the default profile when
// none exist and repairing a missing or dangling active id.
func NewService(backend Backend, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{backend: backend, logger: logger, now: time.Now}

	profiles, err := backend.Profiles()
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}
	s.profiles = profiles

	if len(s.profiles) == 0 {
		if _, err := s.CreateProfile(DefaultProfileName); err != nil {
			return nil, fmt.Errorf("seeding default profile: %w", err)
		}
		logger.Info("seeded default profile", "name", DefaultProfileName)
	}

	activeID, ok, err := backend.Get(KeyActiveProfileID)
	if err != nil {
		return nil, fmt.Errorf("reading active profile: %w", err)
	}
	if ok && s.indexOf(activeID) >= 0 {
		s.activeID = activeID
		return s, nil
	}

	if ok {
		logger.Warn("active profile no longer exists, falling back", "profile_id", activeID)
	}
	if err := s.SetActiveProfile(s.profiles[0].ID); err != nil {
		return nil, err
	}
	return s, nil
}

// Profiles returns a copy of all profiles, oldest first.
func (s *Service) Profiles() []model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// ActiveProfile returns the active profile.
func (s *Service) ActiveProfile() (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(s.activeID); i >= 0 {
		return s.profiles[i], true
	}
	return model.Profile{}, false
}

// ActiveProfileID returns the active profile id, or "" if none.
func (s *Service) ActiveProfileID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Lookup returns the profile with id.
func (s *Service) Lookup(id string) (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.profiles[i], true
	}
	return model.Profile{}, false
}

// SetActiveProfile makes id the active profile and persists the choice.
func (s *Service) SetActiveProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.backend.Set(KeyActiveProfileID, id); err != nil {
		return fmt.Errorf("saving active profile: %w", err)
	}
	s.activeID = id
	return nil
}

// RenameProfile changes a profile's display name.
func (s *Service) RenameProfile(id, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.backend.RenameProfile(id, name); err != nil {
		if errors.Is(err, store.ErrNoProfile) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	s.profiles[i].Name = name
	return nil
}

// CreateProfile adds a profile. The first profile created while no profile is
// active becomes active.
func (s *Service) CreateProfile(name string) (model.Profile, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Profile{}, err
	}

	p := model.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	if err := s.backend.InsertProfile(p); err != nil {
		s.mu.Unlock()
		return model.Profile{}, err
	}
	s.profiles = append(s.profiles, p)
	needActive := s.activeID == ""
	s.mu.Unlock()

	if needActive {
		if err := s.SetActiveProfile(p.ID); err != nil {
			return p, err
		}
	}
	return p, nil
}

// indexOf must be called with s.mu held.
func (s *Service) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range s.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}
