// Package ffmpegdecoder extracts proxy-resolution RGB frames from video
// files using the ffmpeg external process.
package ffmpegdecoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Decoder implements ports.FrameDecoder by piping raw RGB24 video out of
// ffmpeg at the model's proxy resolution.
type Decoder struct {
	ffmpegPath string
	logger     ports.Logger
}

// New creates a Decoder. ffmpegPath may be empty, in which case ffmpeg is
// located on first use.
func New(ffmpegPath string, logger ports.Logger) *Decoder {
	return &Decoder{
		ffmpegPath: ffmpegPath,
		logger:     logger.WithComponent("decode"),
	}
}

// findFFmpeg searches for ffmpeg in PATH and common locations.
func findFFmpeg() (string, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	commonPaths := []string{
		"/usr/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/opt/homebrew/bin/ffmpeg",
		"/snap/bin/ffmpeg",
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("ffmpeg not found in PATH")
}

// Decode extracts every frame of the video at path as raw RGB24 at the
// proxy resolution, in presentation order.
func (d *Decoder) Decode(ctx context.Context, path string) ([]pipeline.Frame, error) {
	if d.ffmpegPath == "" {
		p, err := findFFmpeg()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", pipeline.ErrDecode, err)
		}
		d.ffmpegPath = p
	}

	args := buildArgs(path)
	d.logger.Debug("Running %s %s", d.ffmpegPath, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: ffmpeg on %s: %s (%s)",
			pipeline.ErrDecode, path, err, lastLine(stderr.String()))
	}

	frames, err := splitFrames(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", pipeline.ErrDecode, path, err)
	}

	d.logger.Debug("Decoded %d frames from %s", len(frames), path)
	return frames, nil
}

// buildArgs returns the ffmpeg arguments extracting raw RGB24 frames at the
// proxy resolution to stdout.
func buildArgs(path string) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", pipeline.FrameWidth, pipeline.FrameHeight),
		"pipe:1",
	}
}

// splitFrames slices the raw pipe output into frames. A trailing partial
// frame means the stream was truncated.
func splitFrames(raw []byte) ([]pipeline.Frame, error) {
	if len(raw)%pipeline.FrameBytes != 0 {
		return nil, fmt.Errorf("truncated frame stream: %d bytes is not a multiple of %d",
			len(raw), pipeline.FrameBytes)
	}

	frames := make([]pipeline.Frame, 0, len(raw)/pipeline.FrameBytes)
	for off := 0; off < len(raw); off += pipeline.FrameBytes {
		frames = append(frames, pipeline.Frame(raw[off:off+pipeline.FrameBytes]))
	}
	return frames, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

var _ ports.FrameDecoder = (*Decoder)(nil)
