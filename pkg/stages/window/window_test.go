package window

import (
	"errors"
	"testing"

	"github.com/user/sceneshot/pkg/pipeline"
)

// makeFrames builds n distinct frames whose first byte encodes the frame
// index, so tests can tell padding copies from true frames.
func makeFrames(n int) []pipeline.Frame {
	frames := make([]pipeline.Frame, n)
	for i := range frames {
		f := make(pipeline.Frame, pipeline.FrameBytes)
		f[0] = byte(i % 251)
		frames[i] = f
	}
	return frames
}

func TestNewGenerator_EmptyInput(t *testing.T) {
	_, err := NewGenerator(nil, pipeline.DefaultGeometry())
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerator_Padding(t *testing.T) {
	geo := pipeline.DefaultGeometry()

	tests := []struct {
		name        string
		frameCount  int
		wantTailPad int
	}{
		{name: "single frame", frameCount: 1, wantTailPad: 25 + 49},
		{name: "one short of stride", frameCount: 49, wantTailPad: 25 + 1},
		{name: "exact stride multiple", frameCount: 50, wantTailPad: 25},
		{name: "stride plus one", frameCount: 51, wantTailPad: 25 + 49},
		{name: "two strides", frameCount: 100, wantTailPad: 25},
		{name: "concrete scenario length", frameCount: 120, wantTailPad: 25 + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geo.TailPad(tt.frameCount); got != tt.wantTailPad {
				t.Errorf("TailPad(%d): expected %d, got %d", tt.frameCount, tt.wantTailPad, got)
			}
			if got := geo.HeadPad(); got != 25 {
				t.Errorf("HeadPad: expected 25, got %d", got)
			}

			gen, err := NewGenerator(makeFrames(tt.frameCount), geo)
			if err != nil {
				t.Fatalf("NewGenerator: %v", err)
			}
			wantPadded := 25 + tt.frameCount + tt.wantTailPad
			if gen.PaddedLen() != wantPadded {
				t.Errorf("padded length: expected %d, got %d", wantPadded, gen.PaddedLen())
			}
		})
	}
}

func TestGenerator_ReplicatesEdgeFrames(t *testing.T) {
	frames := makeFrames(60)
	gen, err := NewGenerator(frames, pipeline.DefaultGeometry())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	first, ok := gen.Next()
	if !ok {
		t.Fatal("expected at least one window")
	}
	for i := 0; i < 25; i++ {
		if first[i][0] != frames[0][0] {
			t.Fatalf("head padding at %d is not a copy of the first frame", i)
		}
	}
	if first[25][0] != frames[0][0] || first[26][0] != frames[1][0] {
		t.Fatal("true frames do not start at the core offset")
	}

	var last []pipeline.Frame
	gen.Reset()
	for {
		win, ok := gen.Next()
		if !ok {
			break
		}
		last = win
	}
	tail := last[len(last)-1]
	if tail[0] != frames[len(frames)-1][0] {
		t.Fatal("tail padding is not a copy of the last frame")
	}
}

func TestGenerator_WindowsAreFullAndStrided(t *testing.T) {
	geo := pipeline.DefaultGeometry()

	for _, n := range []int{1, 49, 50, 51, 100, 120, 250} {
		gen, err := NewGenerator(makeFrames(n), geo)
		if err != nil {
			t.Fatalf("NewGenerator(%d): %v", n, err)
		}

		count := 0
		for {
			win, ok := gen.Next()
			if !ok {
				break
			}
			if len(win) != geo.Window {
				t.Fatalf("N=%d window %d: expected %d frames, got %d", n, count, geo.Window, len(win))
			}
			count++
		}
		if count != gen.Count() {
			t.Errorf("N=%d: Count()=%d but yielded %d windows", n, gen.Count(), count)
		}

		// Core coverage: the cores of all windows must cover every true frame.
		if covered := count * geo.CoreLen(); covered < n {
			t.Errorf("N=%d: %d windows cover only %d core frames", n, count, covered)
		}
	}
}

func TestGenerator_Restartable(t *testing.T) {
	gen, err := NewGenerator(makeFrames(120), pipeline.DefaultGeometry())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	var firstPass []byte
	for {
		win, ok := gen.Next()
		if !ok {
			break
		}
		firstPass = append(firstPass, win[0][0])
	}

	gen.Reset()
	var secondPass []byte
	for {
		win, ok := gen.Next()
		if !ok {
			break
		}
		secondPass = append(secondPass, win[0][0])
	}

	if len(firstPass) != len(secondPass) {
		t.Fatalf("pass lengths differ: %d vs %d", len(firstPass), len(secondPass))
	}
	for i := range firstPass {
		if firstPass[i] != secondPass[i] {
			t.Fatalf("window %d differs between passes", i)
		}
	}
}
