// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/sceneshot/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveProbeJSON does nothing.
func (s *Sink) SaveProbeJSON(video string, data []byte) error {
	return nil
}

// SavePredictionsJSON does nothing.
func (s *Sink) SavePredictionsJSON(video string, data []byte) error {
	return nil
}

// SaveVisualization does nothing.
func (s *Sink) SaveVisualization(video string, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
