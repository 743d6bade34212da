// Package score implements the scoring adapter stage.
package score

import (
	"context"
	"fmt"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Stage invokes the external scoring model on one window and extracts the
// core (non-overlap) slice of its output. Only the core slice is trusted
// downstream; the window edges lack temporal context.
type Stage struct {
	scorer ports.FrameScorer
	geo    pipeline.Geometry
	logger ports.Logger
}

// NewStage creates a new scoring stage.
func NewStage(scorer ports.FrameScorer, geo pipeline.Geometry, logger ports.Logger) *Stage {
	return &Stage{
		scorer: scorer,
		geo:    geo,
		logger: logger.WithComponent("score"),
	}
}

// Execute scores one window and returns its core prediction slice.
// A model output whose length differs from the window size is a fatal
// contract violation and is never retried.
func (s *Stage) Execute(ctx context.Context, window []pipeline.Frame) (pipeline.PredictionRecord, error) {
	if len(window) != s.geo.Window {
		return pipeline.PredictionRecord{}, fmt.Errorf(
			"%w: window has %d frames, model expects %d",
			pipeline.ErrModelContract, len(window), s.geo.Window)
	}

	single, manyHot, err := s.scorer.Score(ctx, window)
	if err != nil {
		return pipeline.PredictionRecord{}, fmt.Errorf("score window: %w", err)
	}

	if len(single) != s.geo.Window {
		return pipeline.PredictionRecord{}, fmt.Errorf(
			"%w: model returned %d single-frame scores for a %d-frame window",
			pipeline.ErrModelContract, len(single), s.geo.Window)
	}
	if manyHot != nil && len(manyHot) != s.geo.Window {
		return pipeline.PredictionRecord{}, fmt.Errorf(
			"%w: model returned %d many-hot scores for a %d-frame window",
			pipeline.ErrModelContract, len(manyHot), s.geo.Window)
	}

	record := pipeline.PredictionRecord{
		Single: single[s.geo.CoreStart():s.geo.CoreEnd()],
	}
	if manyHot != nil {
		record.ManyHot = manyHot[s.geo.CoreStart():s.geo.CoreEnd()]
	}

	s.logger.Debug("Scored window, kept core [%d:%d)", s.geo.CoreStart(), s.geo.CoreEnd())
	return record, nil
}

var _ pipeline.Stage[[]pipeline.Frame, pipeline.PredictionRecord] = (*Stage)(nil)
