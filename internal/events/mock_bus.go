package events

import (
	"sync"
)

// MockEventBus records published events for tests.
type MockEventBus struct {
	mu        sync.RWMutex
	published map[string][]interface{}
	closed    bool
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		published: make(map[string][]interface{}),
	}
}

func (m *MockEventBus) Publish(topic string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.published[topic] = append(m.published[topic], data)
	return nil
}

func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	return nil
}

func (m *MockEventBus) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Published returns the events recorded for a topic.
func (m *MockEventBus) Published(topic string) []interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]interface{}, len(m.published[topic]))
	copy(out, m.published[topic])
	return out
}
