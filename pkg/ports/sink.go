package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveProbeJSON saves the container probe result as JSON.
	SaveProbeJSON(video string, data []byte) error

	// SavePredictionsJSON saves the stitched prediction sequences as JSON.
	SavePredictionsJSON(video string, data []byte) error

	// SaveVisualization saves the rendered prediction strip.
	SaveVisualization(video string, img image.Image) error
}
