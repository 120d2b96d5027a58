package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemove(t *testing.T) {
	c := New(0, 5)

	a := c.Success("saved")
	b := c.Error("failed")
	require.NotEqual(t, a, b)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, LevelSuccess, list[0].Level)
	assert.Equal(t, "failed", list[1].Message)

	assert.True(t, c.Remove(a))
	assert.False(t, c.Remove(a))
	require.Len(t, c.List(), 1)
	assert.Equal(t, b, c.List()[0].ID)
}

func TestMaxDropsOldest(t *testing.T) {
	c := New(0, 2)
	c.Info("one")
	c.Info("two")
	c.Info("three")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Message)
	assert.Equal(t, "three", list[1].Message)

	newest, ok := c.Newest()
	require.True(t, ok)
	assert.Equal(t, "three", newest.Message)
}

func TestPruneExpired(t *testing.T) {
	c := New(5*time.Second, 10)
	base := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	clock := base
	c.now = func() time.Time { return clock }

	c.Info("old")
	clock = base.Add(3 * time.Second)
	c.Warn("new")

	assert.Equal(t, 0, c.Prune(base.Add(4*time.Second)))
	assert.Equal(t, 1, c.Prune(base.Add(6*time.Second)))

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Message)
}

func TestPruneDisabledWithoutTTL(t *testing.T) {
	c := New(0, 10)
	c.Info("sticky")
	assert.Equal(t, 0, c.Prune(time.Now().Add(24*time.Hour)))
	assert.Len(t, c.List(), 1)
}

func TestSubscribe(t *testing.T) {
	c := New(0, 10)

	var sizes []int
	cancel := c.Subscribe(func(items []Notification) { sizes = append(sizes, len(items)) })
	id := c.Info("hi")
	c.Remove(id)
	cancel()
	c.Info("ignored")

	assert.Equal(t, []int{1, 0}, sizes)
}
