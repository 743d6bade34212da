package ports

import (
	"context"

	"github.com/user/sceneshot/pkg/pipeline"
)

// FrameScorer abstracts the external shot-boundary scoring model. The model
// accepts one fixed-length window of frames and returns one probability per
// frame: the single-frame boundary score, and optionally a secondary
// "many-hot" score. Both slices are sigmoid-activated values in [0, 1] and
// must have exactly one entry per input frame.
//
// Implementations must be deterministic for fixed weights. The scorer may
// parallelize internally but is called synchronously, one window at a time,
// in window order.
type FrameScorer interface {
	// Score runs the model on one window. ManyHot is nil when the model
	// has no secondary output.
	Score(ctx context.Context, window []pipeline.Frame) (single, manyHot []float32, err error)

	// Close releases model resources.
	Close() error
}

// BatchFrameScorer is an optional extension for models that accept several
// windows per call. Callers that hold a BatchFrameScorer may submit batches;
// results are returned per window in submission order.
type BatchFrameScorer interface {
	FrameScorer

	// ScoreBatch runs the model on a batch of windows.
	ScoreBatch(ctx context.Context, windows [][]pipeline.Frame) (single, manyHot [][]float32, err error)
}
