package mocks

import (
	"image"

	"github.com/user/sceneshot/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledValue bool

	ProbeJSON       map[string][]byte
	PredictionsJSON map[string][]byte
	Visualizations  map[string]image.Image
}

// NewDebugSink creates a mock sink; enabled controls Enabled().
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		EnabledValue:    enabled,
		ProbeJSON:       make(map[string][]byte),
		PredictionsJSON: make(map[string][]byte),
		Visualizations:  make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool { return m.EnabledValue }

func (m *DebugSink) SaveProbeJSON(video string, data []byte) error {
	m.ProbeJSON[video] = append([]byte(nil), data...)
	return nil
}

func (m *DebugSink) SavePredictionsJSON(video string, data []byte) error {
	m.PredictionsJSON[video] = append([]byte(nil), data...)
	return nil
}

func (m *DebugSink) SaveVisualization(video string, img image.Image) error {
	m.Visualizations[video] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
