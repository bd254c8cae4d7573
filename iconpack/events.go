package iconpack

import "time"

// PackEventKind identifies what changed in the registry.
type PackEventKind string

const (
	PackCreated PackEventKind = "pack_created"
	PackDeleted PackEventKind = "pack_deleted"
	IconAdded   PackEventKind = "icon_added"
	IconRemoved PackEventKind = "icon_removed"
)

// PackEvent describes a single registry change.
type PackEvent struct {
	Kind PackEventKind `json:"kind"`
	Pack string        `json:"pack"`
	Icon string        `json:"icon,omitempty"`
	// Icons is the pack's icon count after the change, where applicable.
	Icons int       `json:"icons,omitempty"`
	At    time.Time `json:"at"`
}

// SetPackChangeCallback installs a callback invoked for every registry
// change. The GUI uses this to know when the panel must be rebuilt.
func (m *Manager) SetPackChangeCallback(callback func(PackEvent)) {
	m.mu.Lock()
	m.onChange = callback
	m.mu.Unlock()
}

// Subscribe returns a channel receiving registry change events. Slow
// consumers lose events rather than blocking registry mutations.
func (m *Manager) Subscribe() <-chan PackEvent {
	ch := make(chan PackEvent, 64)
	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel previously returned by Subscribe.
func (m *Manager) Unsubscribe(ch <-chan PackEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (m *Manager) emit(event PackEvent) {
	event.At = time.Now()

	m.mu.RLock()
	callback := m.onChange
	subs := make([]chan PackEvent, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()

	if callback != nil {
		callback(event)
	}
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
		}
	}
}
