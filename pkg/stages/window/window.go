// Package window implements the sliding-window generation stage.
package window

import (
	"fmt"

	"github.com/user/sceneshot/pkg/pipeline"
)

// Generator produces the finite, ordered sequence of fixed-length windows
// covering one video. Padding replicates the first and last true frames so
// that every window is full and the last true frame always falls inside a
// core slice. The generator is restartable via Reset.
type Generator struct {
	geo    pipeline.Geometry
	padded []pipeline.Frame
	ptr    int
}

// NewGenerator creates a Generator over frames. An empty frame sequence is
// rejected with pipeline.ErrInvalidInput.
func NewGenerator(frames []pipeline.Frame, geo pipeline.Geometry) (*Generator, error) {
	if len(frames) < 1 {
		return nil, fmt.Errorf("%w: empty frame sequence", pipeline.ErrInvalidInput)
	}

	head := geo.HeadPad()
	tail := geo.TailPad(len(frames))

	// First and last frames are replicated, never interpolated. Frames are
	// immutable so the padding shares the underlying byte slices.
	padded := make([]pipeline.Frame, 0, head+len(frames)+tail)
	for i := 0; i < head; i++ {
		padded = append(padded, frames[0])
	}
	padded = append(padded, frames...)
	last := frames[len(frames)-1]
	for i := 0; i < tail; i++ {
		padded = append(padded, last)
	}

	return &Generator{geo: geo, padded: padded}, nil
}

// Count returns the total number of windows the generator yields.
func (g *Generator) Count() int {
	return (len(g.padded)-g.geo.Window)/g.geo.Stride + 1
}

// Next returns the next window, or false when the padded sequence is
// exhausted. The returned slice aliases the padded sequence and must not be
// mutated.
func (g *Generator) Next() ([]pipeline.Frame, bool) {
	if g.ptr+g.geo.Window > len(g.padded) {
		return nil, false
	}
	win := g.padded[g.ptr : g.ptr+g.geo.Window]
	g.ptr += g.geo.Stride
	return win, true
}

// Reset rewinds the generator to the first window.
func (g *Generator) Reset() {
	g.ptr = 0
}

// PaddedLen returns the length of the padded frame sequence.
func (g *Generator) PaddedLen() int {
	return len(g.padded)
}
