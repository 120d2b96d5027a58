package state

import (
	"sync"
	"time"
)

// Field names a piece of AppState.
type Field int

const (
	FieldViewDate Field = iota
	FieldMultiProfileMode
	FieldSelectedProfileIDs
	FieldModal
)

func (f Field) String() string {
	switch f {
	case FieldViewDate:
		return "view_date"
	case FieldMultiProfileMode:
		return "multi_profile_mode"
	case FieldSelectedProfileIDs:
		return "selected_profile_ids"
	case FieldModal:
		return "modal"
	}
	return "unknown"
}

// Change reports that Field was replaced.
type Change struct {
	Field Field
}

// Watch returns a channel receiving a Change for every mutation. Sends never
// block: if the buffer is full the change is dropped, so readers should
// re-read state rather than count events. cancel unsubscribes and closes the
// channel.
func (s *AppState) Watch(buf int) (<-chan Change, func()) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Change, buf)

	var mu sync.Mutex
	closed := false
	send := func(f Field) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- Change{Field: f}:
		default:
		}
	}

	cancels := []func(){
		s.viewDate.Subscribe(func(time.Time) { send(FieldViewDate) }),
		s.multiProfileMode.Subscribe(func(bool) { send(FieldMultiProfileMode) }),
		s.selectedIDs.Subscribe(func([]string) { send(FieldSelectedProfileIDs) }),
		s.modal.Subscribe(func(Modal) { send(FieldModal) }),
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			for _, c := range cancels {
				c()
			}
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
}
