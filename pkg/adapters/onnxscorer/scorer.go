// Package onnxscorer runs an exported shot-boundary model with ONNX Runtime.
package onnxscorer

import (
	"context"
	"fmt"
	"math"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Model graph names of the ONNX export. The model takes one batch of
// windowed frames and returns per-frame logits for both heads.
const (
	inputName      = "frames"
	singleOutName  = "single_frame_pred"
	manyHotOutName = "many_hot"
)

// Scorer implements ports.FrameScorer on an ONNX Runtime session. The
// exported model emits logits; the scorer applies the sigmoid so callers
// see probabilities in [0, 1].
type Scorer struct {
	session *ort.DynamicAdvancedSession
	geo     pipeline.Geometry
	logger  ports.Logger
}

// New loads the model at modelPath and prepares a session for windows of
// the given geometry.
func New(modelPath string, geo pipeline.Geometry, logger ports.Logger) (*Scorer, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize ONNX runtime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{singleOutName, manyHotOutName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create session for %s: %w", modelPath, err)
	}

	log := logger.WithComponent("onnx")
	log.Debug("Model loaded from %s", modelPath)

	return &Scorer{
		session: session,
		geo:     geo,
		logger:  log,
	}, nil
}

// Score runs the model on one window and returns per-frame probabilities
// for both heads.
func (s *Scorer) Score(ctx context.Context, window []pipeline.Frame) ([]float32, []float32, error) {
	if len(window) != s.geo.Window {
		return nil, nil, fmt.Errorf("%w: got %d frames, model expects %d",
			pipeline.ErrModelContract, len(window), s.geo.Window)
	}

	input, err := windowTensor(window, s.geo.Window)
	if err != nil {
		return nil, nil, err
	}
	defer input.Destroy()

	outShape := ort.NewShape(1, int64(s.geo.Window), 1)
	singleOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate single output: %w", err)
	}
	defer singleOut.Destroy()

	manyHotOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate many-hot output: %w", err)
	}
	defer manyHotOut.Destroy()

	if err := s.session.Run([]ort.Value{input}, []ort.Value{singleOut, manyHotOut}); err != nil {
		return nil, nil, fmt.Errorf("run model: %w", err)
	}

	single := sigmoidAll(singleOut.GetData())
	manyHot := sigmoidAll(manyHotOut.GetData())
	return single, manyHot, nil
}

// ScoreBatch runs the model on several windows in one call. The batch is
// packed along the first tensor dimension; results come back per window in
// submission order.
func (s *Scorer) ScoreBatch(ctx context.Context, windows [][]pipeline.Frame) ([][]float32, [][]float32, error) {
	if len(windows) == 0 {
		return nil, nil, fmt.Errorf("%w: empty batch", pipeline.ErrInvalidInput)
	}

	data := make([]float32, 0, len(windows)*s.geo.Window*pipeline.FrameBytes)
	for i, window := range windows {
		if len(window) != s.geo.Window {
			return nil, nil, fmt.Errorf("%w: window %d has %d frames, model expects %d",
				pipeline.ErrModelContract, i, len(window), s.geo.Window)
		}
		for _, frame := range window {
			for _, b := range frame {
				data = append(data, float32(b))
			}
		}
	}

	shape := ort.NewShape(int64(len(windows)), int64(s.geo.Window),
		pipeline.FrameHeight, pipeline.FrameWidth, pipeline.FrameChannels)
	input, err := ort.NewTensor(shape, data)
	if err != nil {
		return nil, nil, fmt.Errorf("create batch tensor: %w", err)
	}
	defer input.Destroy()

	outShape := ort.NewShape(int64(len(windows)), int64(s.geo.Window), 1)
	singleOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate single output: %w", err)
	}
	defer singleOut.Destroy()

	manyHotOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate many-hot output: %w", err)
	}
	defer manyHotOut.Destroy()

	if err := s.session.Run([]ort.Value{input}, []ort.Value{singleOut, manyHotOut}); err != nil {
		return nil, nil, fmt.Errorf("run model: %w", err)
	}

	return splitBatch(singleOut.GetData(), s.geo.Window), splitBatch(manyHotOut.GetData(), s.geo.Window), nil
}

// Close releases the session. The runtime environment stays initialized for
// other sessions in the process.
func (s *Scorer) Close() error {
	return s.session.Destroy()
}

// windowTensor casts the window's bytes to a [1, W, H, W, C] float32 tensor.
func windowTensor(window []pipeline.Frame, windowLen int) (*ort.Tensor[float32], error) {
	data := make([]float32, 0, windowLen*pipeline.FrameBytes)
	for _, frame := range window {
		for _, b := range frame {
			data = append(data, float32(b))
		}
	}

	shape := ort.NewShape(1, int64(windowLen),
		pipeline.FrameHeight, pipeline.FrameWidth, pipeline.FrameChannels)
	tensor, err := ort.NewTensor(shape, data)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	return tensor, nil
}

func sigmoidAll(logits []float32) []float32 {
	out := make([]float32, len(logits))
	for i, x := range logits {
		out[i] = float32(1 / (1 + math.Exp(-float64(x))))
	}
	return out
}

// splitBatch cuts a flat [batch * windowLen] output into per-window
// probability slices.
func splitBatch(logits []float32, windowLen int) [][]float32 {
	out := make([][]float32, 0, len(logits)/windowLen)
	for start := 0; start+windowLen <= len(logits); start += windowLen {
		out = append(out, sigmoidAll(logits[start:start+windowLen]))
	}
	return out
}

var (
	_ ports.FrameScorer      = (*Scorer)(nil)
	_ ports.BatchFrameScorer = (*Scorer)(nil)
)
