// Package summarizer provides summary generation for detection runs.
package summarizer

import (
	"time"

	"github.com/user/sceneshot/pkg/pipeline"
)

// Summary contains all data collected during a detection run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Run settings
	Settings Settings

	// Per-video results, in processing order
	Videos []VideoSummary
}

// Settings contains the detection configuration.
type Settings struct {
	ModelPath string
	Threshold float32

	// Sliding window geometry
	WindowLen int
	Stride    int
	Context   int

	// Event transport ("" = stdout)
	Broker string
	Topic  string
}

// VideoSummary contains the results for one processed video.
type VideoSummary struct {
	Path       string
	FrameCount int
	Windows    int
	Events     int
	Scenes     []pipeline.SceneInterval
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the detection settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddVideo appends one video's results.
func (b *Builder) AddVideo(video VideoSummary) *Builder {
	b.summary.Videos = append(b.summary.Videos, video)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
