// Package orchestrator coordinates the per-video detection pipeline.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"
	"github.com/user/sceneshot/pkg/detect"
	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
	"github.com/user/sceneshot/pkg/report"
	"github.com/user/sceneshot/pkg/stages/extract"
	"github.com/user/sceneshot/pkg/stages/stitch"
	"github.com/user/sceneshot/pkg/stages/window"
)

// Config contains all configuration for a detection run.
type Config struct {
	// Videos to process, in order.
	Videos []string

	// Threshold above which a single-frame score marks a boundary.
	Threshold float32

	// Geometry of the sliding window.
	Geometry pipeline.Geometry

	// OutputDir receives the export files. Empty writes them next to each
	// video, original-style (<video>.predictions.txt, <video>.scenes.txt).
	OutputDir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Threshold: pipeline.DefaultThreshold,
		Geometry:  pipeline.DefaultGeometry(),
	}
}

// VideoResult summarizes one successfully processed video.
type VideoResult struct {
	Video      string
	FrameCount int
	Windows    int
	Events     int
	Scenes     []pipeline.SceneInterval
}

// Orchestrator drives decode, windowing, scoring, streaming emission,
// stitching, extraction and export for each video. Each video gets fresh
// emitter and stitcher state; only the transport connection is shared.
type Orchestrator struct {
	decoder    ports.FrameDecoder
	scoreStage pipeline.Stage[[]pipeline.Frame, pipeline.PredictionRecord]
	publisher  ports.EventPublisher
	reporter   *report.Writer
	renderer   ports.PredictionRenderer
	sink       ports.DebugSink
	logger     ports.Logger
}

// New creates a new Orchestrator. renderer may be nil when no visualization
// is wanted.
func New(
	decoder ports.FrameDecoder,
	scoreStage pipeline.Stage[[]pipeline.Frame, pipeline.PredictionRecord],
	publisher ports.EventPublisher,
	reporter *report.Writer,
	renderer ports.PredictionRenderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		decoder:    decoder,
		scoreStage: scoreStage,
		publisher:  publisher,
		reporter:   reporter,
		renderer:   renderer,
		sink:       sink,
		logger:     logger,
	}
}

// Run processes every configured video in order. A video's failure aborts
// that video only: its state is discarded and processing continues with the
// next one. The returned error joins all per-video failures.
func (o *Orchestrator) Run(ctx context.Context, config Config) ([]VideoResult, error) {
	var results []VideoResult
	var errs []error

	for _, video := range config.Videos {
		result, err := o.ProcessVideo(ctx, config, video)
		if err != nil {
			if ctx.Err() != nil {
				// Cancellation ends the whole run, not just one video.
				errs = append(errs, err)
				break
			}
			o.logger.Error(l10n.F("Failed to process %s: %s", video, err))
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

// ProcessVideo runs the full pipeline for one video: decode, window, score,
// emit, stitch, extract, export. Window order is strict; the emitter and
// stitcher are never fed concurrently. Cancellation mid-video discards the
// in-progress state without emitting the final synthetic event.
func (o *Orchestrator) ProcessVideo(ctx context.Context, config Config, video string) (VideoResult, error) {
	o.logger.Info(l10n.F("Extracting frames from %s", video))

	if info, err := o.decoder.Probe(video); err == nil && info.FrameCount > 0 {
		o.logger.Debug("Container reports %d frames, %d ms", info.FrameCount, info.DurationMs)
		if o.sink.Enabled() {
			if data, err := json.MarshalIndent(info, "", "  "); err == nil {
				o.sink.SaveProbeJSON(video, data)
			}
		}
	}

	frames, err := o.decoder.Decode(ctx, video)
	if err != nil {
		return VideoResult{}, fmt.Errorf("decode %s: %w", video, err)
	}
	frameCount := len(frames)

	gen, err := window.NewGenerator(frames, config.Geometry)
	if err != nil {
		return VideoResult{}, fmt.Errorf("window %s: %w", video, err)
	}

	emitter := detect.NewEmitter(video, frameCount, config.Threshold, o.publisher, o.logger)
	stitcher := stitch.New()

	events := 0
	windows := 0
	for {
		select {
		case <-ctx.Done():
			return VideoResult{}, fmt.Errorf("process %s: %w", video, ctx.Err())
		default:
		}

		win, ok := gen.Next()
		if !ok {
			break
		}

		record, err := o.scoreStage.Execute(ctx, win)
		if err != nil {
			return VideoResult{}, fmt.Errorf("window %d of %s: %w", windows, video, err)
		}

		emitted, err := emitter.ProcessWindow(ctx, stitcher.Entries(), record.Single)
		if err != nil {
			return VideoResult{}, err
		}
		events += emitted
		stitcher.Append(record)
		windows++

		processed := stitcher.Entries()
		if processed > frameCount {
			processed = frameCount
		}
		o.logger.Debug("Processing video frames %d/%d", processed, frameCount)
	}

	if err := emitter.Finalize(ctx); err != nil {
		return VideoResult{}, err
	}
	events++

	single, manyHot, err := stitcher.Finish(frameCount)
	if err != nil {
		return VideoResult{}, fmt.Errorf("stitch %s: %w", video, err)
	}

	scenes := extract.Scenes(single, config.Threshold)
	o.logger.Info(l10n.F("Detected %d scenes in %d frames of %s", len(scenes), frameCount, video))

	if err := o.export(config, video, single, manyHot, scenes); err != nil {
		return VideoResult{}, err
	}

	o.saveDebug(video, frames, single, manyHot)

	return VideoResult{
		Video:      video,
		FrameCount: frameCount,
		Windows:    windows,
		Events:     events,
		Scenes:     scenes,
	}, nil
}

func (o *Orchestrator) export(config Config, video string, single, manyHot []float32, scenes []pipeline.SceneInterval) error {
	predictionsPath := video + ".predictions.txt"
	scenesPath := video + ".scenes.txt"
	if config.OutputDir != "" {
		base := filepath.Base(video)
		predictionsPath = filepath.Join(config.OutputDir, base+".predictions.txt")
		scenesPath = filepath.Join(config.OutputDir, base+".scenes.txt")
	}

	if err := o.reporter.WritePredictions(predictionsPath, single, manyHot); err != nil {
		return fmt.Errorf("export predictions for %s: %w", video, err)
	}
	if err := o.reporter.WriteScenes(scenesPath, scenes); err != nil {
		return fmt.Errorf("export scenes for %s: %w", video, err)
	}
	o.logger.Info(l10n.F("Results written to %s and %s", predictionsPath, scenesPath))
	return nil
}

func (o *Orchestrator) saveDebug(video string, frames []pipeline.Frame, single, manyHot []float32) {
	if !o.sink.Enabled() {
		return
	}

	payload := struct {
		Single  []float32 `json:"single"`
		ManyHot []float32 `json:"many_hot,omitempty"`
	}{Single: single, ManyHot: manyHot}
	if data, err := json.MarshalIndent(payload, "", "  "); err == nil {
		o.sink.SavePredictionsJSON(video, data)
	}

	if o.renderer != nil {
		img, err := o.renderer.Render(frames, single, manyHot)
		if err != nil {
			o.logger.Warn(l10n.F("Failed to render predictions for %s: %s", video, err))
			return
		}
		if err := o.sink.SaveVisualization(video, img); err != nil {
			o.logger.Warn(l10n.F("Failed to save visualization for %s: %s", video, err))
		}
	}
}
