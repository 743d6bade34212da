// Package mocks provides mock implementations of the ports interfaces for
// testing.
package mocks

import (
	"context"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// FrameScorer is a mock implementation of ports.FrameScorer.
type FrameScorer struct {
	ScoreFunc func(ctx context.Context, window []pipeline.Frame) ([]float32, []float32, error)
	CloseFunc func() error

	Calls int
}

func (m *FrameScorer) Score(ctx context.Context, window []pipeline.Frame) ([]float32, []float32, error) {
	m.Calls++
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, window)
	}
	return make([]float32, len(window)), make([]float32, len(window)), nil
}

func (m *FrameScorer) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.FrameScorer = (*FrameScorer)(nil)

// ScriptedScorer scores windows from a per-frame score map keyed by absolute
// frame index over the padded sequence's core positions. It tracks window
// order so orchestrator tests can express "frame 60 scores 0.9" directly.
type ScriptedScorer struct {
	// Scores maps absolute frame index to the single-frame score. Frames
	// not present score zero.
	Scores map[int]float32

	// ManyHot enables the secondary output (a copy of the single scores).
	ManyHot bool

	geo    pipeline.Geometry
	window int
}

// NewScriptedScorer creates a ScriptedScorer for the default geometry.
func NewScriptedScorer(scores map[int]float32, manyHot bool) *ScriptedScorer {
	return &ScriptedScorer{
		Scores:  scores,
		ManyHot: manyHot,
		geo:     pipeline.DefaultGeometry(),
	}
}

func (m *ScriptedScorer) Score(ctx context.Context, window []pipeline.Frame) ([]float32, []float32, error) {
	single := make([]float32, len(window))
	// The core slice of window k covers absolute frames [k*Stride, k*Stride+Stride).
	base := m.window*m.geo.Stride - m.geo.CoreStart()
	for i := range single {
		if s, ok := m.Scores[base+i]; ok {
			single[i] = s
		}
	}
	m.window++

	var manyHot []float32
	if m.ManyHot {
		manyHot = append([]float32(nil), single...)
	}
	return single, manyHot, nil
}

func (m *ScriptedScorer) Close() error { return nil }

var _ ports.FrameScorer = (*ScriptedScorer)(nil)
