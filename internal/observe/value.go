// Package observe provides a small goroutine-safe observable value used to
// fan state changes out to the TUI.
package observe

import "sync"

// Value holds a single value and notifies subscribers whenever it is replaced.
type Value[T any] struct {
	mu        sync.RWMutex
	v         T
	nextSubID int
	subs      map[int]func(T)
	order     []int
}

// NewValue returns a Value seeded with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		v:    initial,
		subs: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Set replaces the value and notifies subscribers.
func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	o.v = v
	fns := o.snapshotSubs()
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update replaces the value with fn(current) under the lock, then notifies.
func (o *Value[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	o.v = fn(o.v)
	v := o.v
	fns := o.snapshotSubs()
	o.mu.Unlock()

	for _, sub := range fns {
		sub(v)
	}
	return v
}

// Subscribe registers fn to be called after every Set/Update. Subscribers run
// outside the lock, in subscription order. The returned func unsubscribes.
func (o *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.nextSubID
	o.nextSubID++
	o.subs[id] = fn
	o.order = append(o.order, id)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			for i, sid := range o.order {
				if sid == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (o *Value[T]) Subscribers() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs)
}

// snapshotSubs must be called with o.mu held.
func (o *Value[T]) snapshotSubs() []func(T) {
	if len(o.order) == 0 {
		return nil
	}
	fns := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.subs[id])
	}
	return fns
}
