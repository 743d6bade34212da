package ports

import (
	"image"

	"github.com/user/sceneshot/pkg/pipeline"
)

// PredictionRenderer renders a video's frames and prediction sequences into
// a single inspection image: a strip of frame thumbnails with per-frame
// score bars.
type PredictionRenderer interface {
	// Render draws frames with their prediction curves. manyHot may be nil.
	Render(frames []pipeline.Frame, single, manyHot []float32) (image.Image, error)
}
