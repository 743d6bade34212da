package mocks

import (
	"context"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
type FrameDecoder struct {
	DecodeFunc func(ctx context.Context, path string) ([]pipeline.Frame, error)
	ProbeFunc  func(path string) (ports.VideoInfo, error)
}

// NewFrameDecoder creates a decoder that yields frameCount blank frames for
// any path.
func NewFrameDecoder(frameCount int) *FrameDecoder {
	return &FrameDecoder{
		DecodeFunc: func(ctx context.Context, path string) ([]pipeline.Frame, error) {
			frames := make([]pipeline.Frame, frameCount)
			for i := range frames {
				frames[i] = make(pipeline.Frame, pipeline.FrameBytes)
			}
			return frames, nil
		},
	}
}

func (m *FrameDecoder) Decode(ctx context.Context, path string) ([]pipeline.Frame, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(ctx, path)
	}
	return nil, pipeline.ErrDecode
}

func (m *FrameDecoder) Probe(path string) (ports.VideoInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.VideoInfo{}, nil
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)
