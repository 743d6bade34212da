package onnxscorer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/user/sceneshot/pkg/pipeline"
)

func TestSigmoidAll(t *testing.T) {
	logits := []float32{0, 4, -4}
	probs := sigmoidAll(logits)

	if probs[0] != 0.5 {
		t.Errorf("sigmoid(0) = %v, want 0.5", probs[0])
	}
	if probs[1] < 0.98 || probs[1] > 1 {
		t.Errorf("sigmoid(4) = %v, want near 1", probs[1])
	}
	if probs[2] > 0.02 || probs[2] < 0 {
		t.Errorf("sigmoid(-4) = %v, want near 0", probs[2])
	}
	if math.Abs(float64(probs[1]+probs[2])-1) > 1e-6 {
		t.Errorf("sigmoid(4) + sigmoid(-4) = %v, want 1", probs[1]+probs[2])
	}
}

func TestScoreRejectsWrongWindowLength(t *testing.T) {
	s := &Scorer{geo: pipeline.DefaultGeometry()}

	window := make([]pipeline.Frame, 99)
	for i := range window {
		window[i] = make(pipeline.Frame, pipeline.FrameBytes)
	}

	_, _, err := s.Score(context.Background(), window)
	if !errors.Is(err, pipeline.ErrModelContract) {
		t.Fatalf("expected ErrModelContract for short window, got %v", err)
	}
}

func TestSplitBatch(t *testing.T) {
	logits := []float32{0, 0, 4, 4, -4, -4}
	batches := splitBatch(logits, 2)

	if len(batches) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(batches))
	}
	if batches[0][0] != 0.5 || batches[0][1] != 0.5 {
		t.Errorf("window 0 = %v, want [0.5 0.5]", batches[0])
	}
	if batches[1][0] < 0.98 || batches[2][0] > 0.02 {
		t.Errorf("windows = %v", batches[1:])
	}
}

func TestScoreBatchRejectsBadWindows(t *testing.T) {
	s := &Scorer{geo: pipeline.DefaultGeometry()}

	if _, _, err := s.ScoreBatch(context.Background(), nil); !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("empty batch: got %v, want ErrInvalidInput", err)
	}

	short := [][]pipeline.Frame{make([]pipeline.Frame, 99)}
	if _, _, err := s.ScoreBatch(context.Background(), short); !errors.Is(err, pipeline.ErrModelContract) {
		t.Errorf("short window: got %v, want ErrModelContract", err)
	}
}

func TestNewRejectsMissingModel(t *testing.T) {
	_, err := New("/nonexistent/model.onnx", pipeline.DefaultGeometry(), nil)
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
}
