package mocks

import (
	"context"
	"sync"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// EventPublisher is a mock implementation of ports.EventPublisher that
// records published events. Publish and flush failures can be injected via
// PublishErr and FlushErr.
type EventPublisher struct {
	mu      sync.Mutex
	events  []pipeline.SceneEvent
	flushes int

	PublishErr error
	FlushErr   error
}

// NewEventPublisher creates a new recording publisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (m *EventPublisher) Publish(ctx context.Context, event pipeline.SceneEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *EventPublisher) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FlushErr != nil {
		return m.FlushErr
	}
	m.flushes++
	return nil
}

func (m *EventPublisher) Close() error { return nil }

// Events returns a copy of all published events in order.
func (m *EventPublisher) Events() []pipeline.SceneEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pipeline.SceneEvent(nil), m.events...)
}

// Flushes returns the number of successful flush calls.
func (m *EventPublisher) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

var _ ports.EventPublisher = (*EventPublisher)(nil)
