// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/sceneshot/pkg/ports"
)

// Sink saves debug output to files under a base directory, one file set per
// video keyed by the video's base name.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveProbeJSON saves the container probe result as JSON.
func (s *Sink) SaveProbeJSON(video string, data []byte) error {
	return s.fs.WriteFile(s.path(video, "probe.json"), data)
}

// SavePredictionsJSON saves the stitched prediction sequences as JSON.
func (s *Sink) SavePredictionsJSON(video string, data []byte) error {
	return s.fs.WriteFile(s.path(video, "predictions.json"), data)
}

// SaveVisualization saves the rendered prediction strip as PNG.
func (s *Sink) SaveVisualization(video string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode visualization: %w", err)
	}
	return s.fs.WriteFile(s.path(video, "visualization.png"), buf.Bytes())
}

func (s *Sink) path(video, name string) string {
	return filepath.Join(s.baseDir, filepath.Base(video)+"."+name)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
