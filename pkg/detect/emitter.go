// Package detect implements the streaming boundary emitter.
package detect

import (
	"context"
	"fmt"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Emitter turns per-window core scores into scene boundary events as they
// arrive. It owns the per-video cursor state: the start of the scene
// currently open and the next scene index. One Emitter serves exactly one
// video; create a fresh one per video and discard it after Finalize.
//
// State advances only after a successful publish, so a transport failure
// leaves the emitter consistent and the failed window retryable.
type Emitter struct {
	video     string
	threshold float32
	publisher ports.EventPublisher
	logger    ports.Logger

	prevSceneStart int
	sceneCounter   int
	maxFrame       int
	finalized      bool
}

// NewEmitter creates an Emitter for one video of frameCount frames.
func NewEmitter(video string, frameCount int, threshold float32, publisher ports.EventPublisher, logger ports.Logger) *Emitter {
	return &Emitter{
		video:          video,
		threshold:      threshold,
		publisher:      publisher,
		logger:         logger.WithComponent("detect"),
		prevSceneStart: 0,
		sceneCounter:   1,
		maxFrame:       frameCount,
	}
}

// ProcessWindow scans the core scores of one window for threshold crossings
// and emits one event per crossing frame, in ascending frame order. gap is
// the number of core frames already processed before this window. The
// transport is flushed after the window so its events become visible
// together.
//
// Returns the number of events emitted for this window.
func (e *Emitter) ProcessWindow(ctx context.Context, gap int, coreScores []float32) (int, error) {
	emitted := 0
	for i, score := range coreScores {
		if score <= e.threshold {
			continue
		}
		if err := e.emit(ctx, gap+i, score); err != nil {
			return emitted, err
		}
		emitted++
	}

	if err := e.publisher.Flush(ctx); err != nil {
		return emitted, fmt.Errorf("flush window events for %s: %w", e.video, err)
	}
	if emitted > 0 {
		e.logger.Debug("Emitted %d boundary events up to frame %d", emitted, gap+len(coreScores)-1)
	}
	return emitted, nil
}

// Finalize emits the unconditional closing event of the video, with an end
// frame one past the last frame and a score of 1.0, then flushes. It must
// be called exactly once, after every window has been processed. A video
// aborted mid-processing must never be finalized.
func (e *Emitter) Finalize(ctx context.Context) error {
	if e.finalized {
		return fmt.Errorf("%w: video %s already finalized", pipeline.ErrInvalidInput, e.video)
	}
	if err := e.emit(ctx, e.maxFrame+1, 1.0); err != nil {
		return err
	}
	if err := e.publisher.Flush(ctx); err != nil {
		return fmt.Errorf("flush final event for %s: %w", e.video, err)
	}
	e.finalized = true
	return nil
}

// emit publishes one boundary event and, on success, advances the cursor
// and scene counter.
func (e *Emitter) emit(ctx context.Context, endFrame int, score float32) error {
	event := pipeline.SceneEvent{
		Video: e.video,
		Start: e.prevSceneStart,
		End:   endFrame,
		Score: score,
		Index: e.sceneCounter,
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish scene %d of %s (frames %d-%d): %w",
			event.Index, e.video, event.Start, event.End, err)
	}
	e.sceneCounter++
	e.prevSceneStart = endFrame + 1
	return nil
}

// SceneStart returns the current scene start cursor. Exposed for tests and
// progress reporting.
func (e *Emitter) SceneStart() int {
	return e.prevSceneStart
}
