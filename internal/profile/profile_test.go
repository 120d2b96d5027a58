package profile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/billtrack/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "billtrack.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestNewServiceSeedsDefaultProfile(t *testing.T) {
	st, _ := openStore(t)

	svc, err := NewService(st, nil)
	require.NoError(t, err)

	profiles := svc.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, DefaultProfileName, profiles[0].Name)

	active, ok := svc.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, profiles[0].ID, active.ID)
	assert.Equal(t, active.ID, svc.ActiveProfileID())

	stored, ok, err := st.Get(KeyActiveProfileID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, active.ID, stored)
}

func TestActiveProfileSurvivesReopen(t *testing.T) {
	st, path := openStore(t)

	svc, err := NewService(st, nil)
	require.NoError(t, err)
	work, err := svc.CreateProfile("  Work  ")
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)
	require.NoError(t, svc.SetActiveProfile(work.ID))
	require.NoError(t, st.Close())

	st2, err := store.Open(path)
	require.NoError(t, err)
	defer func() { _ = st2.Close() }()

	svc2, err := NewService(st2, nil)
	require.NoError(t, err)
	assert.Len(t, svc2.Profiles(), 2)
	assert.Equal(t, work.ID, svc2.ActiveProfileID())
}

func TestDanglingActiveIDFallsBack(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)
	first := svc.Profiles()[0]

	require.NoError(t, st.Set(KeyActiveProfileID, "deleted-profile"))

	svc, err = NewService(st, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, svc.ActiveProfileID())
}

func TestSetActiveProfileUnknown(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)
	before := svc.ActiveProfileID()

	err = svc.SetActiveProfile("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, svc.ActiveProfileID())
}

func TestRenameProfile(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)
	id := svc.ActiveProfileID()

	require.NoError(t, svc.RenameProfile(id, " Me "))
	p, ok := svc.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "Me", p.Name)

	stored, err := st.Profiles()
	require.NoError(t, err)
	assert.Equal(t, "Me", stored[0].Name)

	assert.ErrorIs(t, svc.RenameProfile(id, "   "), ErrEmptyName)
	assert.ErrorIs(t, svc.RenameProfile("missing", "x"), ErrNotFound)
}

func TestCreateProfileRejectsEmptyName(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)

	_, err = svc.CreateProfile("")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Len(t, svc.Profiles(), 1)
}

func TestNameLengthLimit(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)

	_, err = svc.CreateProfile(strings.Repeat("é", MaxNameLength))
	require.NoError(t, err, "limit counts characters, not bytes")

	_, err = svc.CreateProfile(strings.Repeat("x", MaxNameLength+1))
	assert.ErrorIs(t, err, ErrNameTooLong)
	assert.ErrorIs(t, svc.RenameProfile(svc.ActiveProfileID(), strings.Repeat("x", MaxNameLength+1)), ErrNameTooLong)
}

func TestCreateProfileKeepsActive(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)
	active := svc.ActiveProfileID()

	p, err := svc.CreateProfile("Household")
	require.NoError(t, err)
	assert.NotEqual(t, active, p.ID)
	assert.Equal(t, active, svc.ActiveProfileID())
}

func TestProfilesReturnsCopy(t *testing.T) {
	st, _ := openStore(t)
	svc, err := NewService(st, nil)
	require.NoError(t, err)

	ps := svc.Profiles()
	ps[0].Name = "mutated"
	assert.Equal(t, DefaultProfileName, svc.Profiles()[0].Name)
}
