package mocks

import (
	"fmt"
	"sync"

	"github.com/user/sceneshot/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records messages.
type Logger struct {
	mu       sync.Mutex
	messages []string
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (m *Logger) record(level, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+": "+fmt.Sprintf(msg, args...))
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record("debug", msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record("info", msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record("warn", msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record("error", msg, args...) }

func (m *Logger) WithComponent(component string) ports.Logger { return m }

// Messages returns all recorded messages in order.
func (m *Logger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

var _ ports.Logger = (*Logger)(nil)
