// Package report exports detection results in the columnar text layout
// downstream consumers expect.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// FormatPredictions renders one row per frame: the single-frame score and,
// when present, the many-hot score, both with six decimal places. Column
// order and precision are fixed for compatibility.
func FormatPredictions(single, manyHot []float32) string {
	var b strings.Builder
	for i, s := range single {
		if manyHot != nil {
			fmt.Fprintf(&b, "%.6f %.6f\n", s, manyHot[i])
		} else {
			fmt.Fprintf(&b, "%.6f\n", s)
		}
	}
	return b.String()
}

// FormatScenes renders one row per scene interval: start and end frame as
// integers.
func FormatScenes(scenes []pipeline.SceneInterval) string {
	var b strings.Builder
	for _, s := range scenes {
		fmt.Fprintf(&b, "%d %d\n", s.Start, s.End)
	}
	return b.String()
}

// Writer writes formatted results next to the processed video.
type Writer struct {
	fs ports.FileSystem
}

// NewWriter creates a new Writer on the given file system.
func NewWriter(fs ports.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// WritePredictions writes the per-frame prediction rows to path.
func (w *Writer) WritePredictions(path string, single, manyHot []float32) error {
	return w.write(path, FormatPredictions(single, manyHot))
}

// WriteScenes writes the per-scene rows to path.
func (w *Writer) WriteScenes(path string, scenes []pipeline.SceneInterval) error {
	return w.write(path, FormatScenes(scenes))
}

func (w *Writer) write(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
