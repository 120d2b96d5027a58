// Package model defines domain types shared across billtrack packages.
package model

import "time"

// Profile is a named ledger (e.g. "Personal", "Household") whose cards and
// bills are tracked separately.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// DisplayName returns the profile name, falling back to a short id.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}
