// Package integration contains integration tests for the sceneshot pipeline.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/sceneshot/pkg/adapters/filesink"
	"github.com/user/sceneshot/pkg/adapters/logger"
	"github.com/user/sceneshot/pkg/adapters/nullsink"
	"github.com/user/sceneshot/pkg/adapters/osfilesystem"
	"github.com/user/sceneshot/pkg/adapters/streamemitter"
	"github.com/user/sceneshot/pkg/adapters/visualizer"
	"github.com/user/sceneshot/pkg/mocks"
	"github.com/user/sceneshot/pkg/orchestrator"
	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
	"github.com/user/sceneshot/pkg/report"
	"github.com/user/sceneshot/pkg/stages/score"
)

// TestFullPipelineWithStreamTransport runs decode, window, score, emit,
// stitch, extract and export with real adapters everywhere except the
// decoder and the model.
func TestFullPipelineWithStreamTransport(t *testing.T) {
	tmpDir := t.TempDir()

	// 120 frames with a hard cut at frame 60.
	decoder := mocks.NewFrameDecoder(120)
	scorer := mocks.NewScriptedScorer(map[int]float32{60: 0.9}, false)

	var events bytes.Buffer
	publisher := streamemitter.New(&events)

	fs := osfilesystem.New()
	orch := orchestrator.New(
		decoder,
		score.NewStage(scorer, pipeline.DefaultGeometry(), logger.NewNoop()),
		publisher,
		report.NewWriter(fs),
		nil,
		nullsink.New(),
		logger.NewNoop(),
	)

	config := orchestrator.DefaultConfig()
	config.Videos = []string{"clip.mp4"}
	config.OutputDir = tmpDir

	results, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	result := results[0]
	if result.FrameCount != 120 || result.Windows != 3 || result.Events != 2 {
		t.Errorf("result = %+v", result)
	}

	// Emitted events: the detected boundary plus the synthetic final one.
	lines := strings.Split(strings.TrimRight(events.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 event lines, got %d: %q", len(lines), events.String())
	}

	var first, last map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &last); err != nil {
		t.Fatal(err)
	}
	if first["start"] != "0" || first["end"] != "60" || first["index"] != "1" {
		t.Errorf("first event = %v", first)
	}
	if last["start"] != "61" || last["end"] != "121" || last["score"] != "1" || last["index"] != "2" {
		t.Errorf("last event = %v", last)
	}

	// Exported files.
	predictions, err := os.ReadFile(filepath.Join(tmpDir, "clip.mp4.predictions.txt"))
	if err != nil {
		t.Fatalf("predictions file: %v", err)
	}
	rows := strings.Split(strings.TrimRight(string(predictions), "\n"), "\n")
	if len(rows) != 120 {
		t.Errorf("expected 120 prediction rows, got %d", len(rows))
	}

	scenes, err := os.ReadFile(filepath.Join(tmpDir, "clip.mp4.scenes.txt"))
	if err != nil {
		t.Fatalf("scenes file: %v", err)
	}
	if string(scenes) != "0 60\n61 119\n" {
		t.Errorf("scenes file = %q", string(scenes))
	}
}

// TestDebugArtifacts verifies the debug sink receives probe, prediction and
// visualization output.
func TestDebugArtifacts(t *testing.T) {
	tmpDir := t.TempDir()

	decoder := mocks.NewFrameDecoder(73)
	decoder.ProbeFunc = func(path string) (ports.VideoInfo, error) {
		return ports.VideoInfo{FrameCount: 73, DurationMs: 2920}, nil
	}
	scorer := mocks.NewScriptedScorer(map[int]float32{30: 0.8}, true)

	fs := osfilesystem.New()
	sink := filesink.New(tmpDir, fs)

	orch := orchestrator.New(
		decoder,
		score.NewStage(scorer, pipeline.DefaultGeometry(), logger.NewNoop()),
		streamemitter.New(&bytes.Buffer{}),
		report.NewWriter(fs),
		visualizer.New(),
		sink,
		logger.NewNoop(),
	)

	config := orchestrator.DefaultConfig()
	config.Videos = []string{"clip.mp4"}
	config.OutputDir = tmpDir

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{
		"clip.mp4.probe.json",
		"clip.mp4.predictions.json",
		"clip.mp4.visualization.png",
	} {
		path := filepath.Join(tmpDir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected debug artifact %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("debug artifact %s is empty", name)
		}
	}

	// The predictions JSON carries both heads.
	data, err := os.ReadFile(filepath.Join(tmpDir, "clip.mp4.predictions.json"))
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Single  []float32 `json:"single"`
		ManyHot []float32 `json:"many_hot"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Single) != 73 || len(payload.ManyHot) != 73 {
		t.Errorf("predictions JSON lengths: single %d, many_hot %d", len(payload.Single), len(payload.ManyHot))
	}
	if payload.Single[30] != 0.8 {
		t.Errorf("single[30] = %v, want 0.8", payload.Single[30])
	}
}
