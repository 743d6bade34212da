package pipeline

// =============================================================================
// Frame Types
// =============================================================================

// Frame dimensions of the proxy resolution the scoring model expects.
const (
	FrameHeight   = 27
	FrameWidth    = 48
	FrameChannels = 3

	// FrameBytes is the byte length of one raw RGB24 frame.
	FrameBytes = FrameHeight * FrameWidth * FrameChannels
)

// Frame is one decoded video frame: FrameHeight x FrameWidth x FrameChannels
// unsigned bytes in row-major RGB order. Frames are immutable once decoded;
// the pipeline only reads them.
type Frame []byte

// =============================================================================
// Window Geometry
// =============================================================================

// Geometry describes the sliding-window shape used for inference.
// The scoring model accepts exactly Window frames per call; consecutive
// windows advance by Stride and the Context frames at each edge are
// discarded as unreliable.
type Geometry struct {
	Window  int // frames per scoring call
	Stride  int // frames advanced between windows
	Context int // unreliable margin at each window edge
}

// DefaultGeometry returns the supported production geometry.
func DefaultGeometry() Geometry {
	return Geometry{Window: 100, Stride: 50, Context: 25}
}

// HeadPad returns the number of first-frame copies prepended before windowing.
func (g Geometry) HeadPad() int {
	return g.Context
}

// TailPad returns the number of last-frame copies appended after a video of
// frameCount frames. The padded length is arranged so every window is full
// and the last true frame falls inside a core slice.
func (g Geometry) TailPad(frameCount int) int {
	rem := frameCount % g.Stride
	if rem == 0 {
		rem = g.Stride
	}
	return g.Context + g.Stride - rem
}

// CoreStart and CoreEnd bound the trusted slice of a window's output,
// [CoreStart, CoreEnd).
func (g Geometry) CoreStart() int { return g.Context }
func (g Geometry) CoreEnd() int   { return g.Context + g.Stride }

// CoreLen returns the number of trusted entries per window.
func (g Geometry) CoreLen() int { return g.Stride }

// =============================================================================
// Prediction Types
// =============================================================================

// DefaultThreshold is the single-frame score above which a frame counts as a
// shot boundary.
const DefaultThreshold float32 = 0.75

// PredictionRecord holds the core slice of one window's model output.
// ManyHot is nil when the model has no secondary output.
type PredictionRecord struct {
	Single  []float32
	ManyHot []float32
}

// =============================================================================
// Event Types
// =============================================================================

// SceneEvent describes one detected boundary crossing. Index increments
// monotonically per video starting at 1. Start is the previous cursor
// position; End is the frame where the threshold was exceeded.
type SceneEvent struct {
	Video string
	Start int
	End   int
	Score float32
	Index int
}

// SceneInterval is one closed scene [Start, End], inclusive at both ends.
// The intervals of a finished video partition [0, frameCount-1] in order.
type SceneInterval struct {
	Start int
	End   int
}
