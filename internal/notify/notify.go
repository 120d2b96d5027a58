// Package notify keeps the list of transient messages shown as toasts.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/billtrack/internal/observe"
)

// Level tints a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single toast.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Center owns the notification list. A zero ttl keeps notifications until
// they are removed; max caps the list, dropping the oldest first.
type Center struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	now   func() time.Time
	items *observe.Value[[]Notification]
}

// New returns an empty Center.
func New(ttl time.Duration, maxItems int) *Center {
	if maxItems < 1 {
		maxItems = 5
	}
	return &Center{
		ttl:   ttl,
		max:   maxItems,
		now:   time.Now,
		items: observe.NewValue[[]Notification](nil),
	}
}

// Add appends a notification and returns its id.
func (c *Center) Add(level Level, message string) string {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Update(func(items []Notification) []Notification {
		items = append(slices.Clone(items), n)
		if over := len(items) - c.max; over > 0 {
			items = items[over:]
		}
		return items
	})
	return n.ID
}

func (c *Center) Success(message string) string { return c.Add(LevelSuccess, message) }
func (c *Center) Info(message string) string    { return c.Add(LevelInfo, message) }
func (c *Center) Warn(message string) string    { return c.Add(LevelWarning, message) }
func (c *Center) Error(message string) string   { return c.Add(LevelError, message) }

// Remove deletes the notification with id, reporting whether it existed.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items.Get()
	i := slices.IndexFunc(items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.items.Set(slices.Delete(slices.Clone(items), i, i+1))
	return true
}

// Prune drops notifications older than the ttl and returns how many went.
func (c *Center) Prune(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items.Get()
	kept := make([]Notification, 0, len(items))
	for _, n := range items {
		if now.Sub(n.CreatedAt) < c.ttl {
			kept = append(kept, n)
		}
	}
	removed := len(items) - len(kept)
	if removed > 0 {
		c.items.Set(kept)
	}
	return removed
}

// List returns the notifications, oldest first.
func (c *Center) List() []Notification {
	return slices.Clone(c.items.Get())
}

// Newest returns the most recent notification.
func (c *Center) Newest() (Notification, bool) {
	items := c.items.Get()
	if len(items) == 0 {
		return Notification{}, false
	}
	return items[len(items)-1], true
}

// Subscribe calls fn with the list after every change.
func (c *Center) Subscribe(fn func([]Notification)) (cancel func()) {
	return c.items.Subscribe(func(items []Notification) { fn(slices.Clone(items)) })
}
