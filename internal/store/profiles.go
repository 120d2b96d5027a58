package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/billtrack/internal/model"
)

// ErrNoProfile is returned when a profile id does not exist.
var ErrNoProfile = errors.New("profile not found")

// Profiles returns all profiles, oldest first.
func (s *Store) Profiles() ([]model.Profile, error) {
	rows, err := s.db.Query("SELECT profile_id, name, created_at FROM profiles ORDER BY created_at, profile_id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		var created string
		if err := rows.Scan(&p.ID, &p.Name, &created); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(timeLayout, created)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// InsertProfile stores a new profile.
func (s *Store) InsertProfile(p model.Profile) error {
	created := p.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.db.Exec("INSERT INTO profiles (profile_id, name, created_at) VALUES (?, ?, ?)",
		p.ID, p.Name, created.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// RenameProfile updates a profile's name.
func (s *Store) RenameProfile(id, name string) error {
	res, err := s.db.Exec("UPDATE profiles SET name = ? WHERE profile_id = ?", name, id)
	if err != nil {
		return fmt.Errorf("renaming profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoProfile
	}
	return nil
}

// ProfileCount returns the number of stored profiles.
func (s *Store) ProfileCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}
