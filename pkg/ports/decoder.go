package ports

import (
	"context"

	"github.com/user/sceneshot/pkg/pipeline"
)

// VideoInfo holds container metadata probed before decoding.
type VideoInfo struct {
	FrameCount int // sample count of the video track, 0 if unknown
	DurationMs int
}

// FrameDecoder abstracts extraction of raw proxy-resolution frames from a
// video file. Decoded frames are pipeline.FrameHeight x pipeline.FrameWidth
// RGB24, one pipeline.Frame per video frame, in presentation order.
type FrameDecoder interface {
	// Decode extracts all frames from the video at path. Failures wrap
	// pipeline.ErrDecode.
	Decode(ctx context.Context, path string) ([]pipeline.Frame, error)

	// Probe reads container metadata without decoding frames. Probing is
	// best-effort; an unparseable container yields a zero VideoInfo.
	Probe(path string) (VideoInfo, error)
}
