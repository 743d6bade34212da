// Package stitch reassembles per-window core slices into full-length
// prediction sequences.
package stitch

import (
	"fmt"

	"github.com/user/sceneshot/pkg/pipeline"
)

// Stitcher accumulates the core slices of consecutive windows, in window
// order, and concatenates them into one frame-indexed sequence trimmed to
// the true frame count. Overlap regions are never reprocessed: only the
// core slice of each window is ever kept, so no averaging or smoothing is
// needed.
//
// A Stitcher belongs to exactly one video. It is not safe for concurrent
// use.
type Stitcher struct {
	records []pipeline.PredictionRecord
	entries int
}

// New creates an empty Stitcher.
func New() *Stitcher {
	return &Stitcher{}
}

// Append adds the core slice of the next window in order.
func (s *Stitcher) Append(record pipeline.PredictionRecord) {
	s.records = append(s.records, record)
	s.entries += len(record.Single)
}

// Entries returns the number of core entries accumulated so far.
func (s *Stitcher) Entries() int {
	return s.entries
}

// Finish concatenates all accumulated core slices and truncates both
// sequences to frameCount entries, discarding trailing padding-derived
// predictions. The many-hot sequence is nil when the model had no secondary
// output.
func (s *Stitcher) Finish(frameCount int) (single, manyHot []float32, err error) {
	if s.entries < frameCount {
		return nil, nil, fmt.Errorf(
			"%w: %d core entries accumulated for %d frames",
			pipeline.ErrInvalidInput, s.entries, frameCount)
	}

	single = make([]float32, 0, s.entries)
	hasManyHot := len(s.records) > 0 && s.records[0].ManyHot != nil
	if hasManyHot {
		manyHot = make([]float32, 0, s.entries)
	}

	for _, rec := range s.records {
		single = append(single, rec.Single...)
		if hasManyHot {
			manyHot = append(manyHot, rec.ManyHot...)
		}
	}

	single = single[:frameCount]
	if hasManyHot {
		manyHot = manyHot[:frameCount]
	}
	return single, manyHot, nil
}
