package detect

import (
	"context"
	"errors"
	"testing"

	"github.com/user/sceneshot/pkg/mocks"
	"github.com/user/sceneshot/pkg/pipeline"
)

func zeros(n int) []float32 {
	return make([]float32, n)
}

func TestEmitter_ConcreteScenario(t *testing.T) {
	// 120 frames, all scores zero except frame 60 at 0.9. Frame 60 lands in
	// the second window's core at offset 10 (gap 50).
	pub := mocks.NewEventPublisher()
	e := NewEmitter("video.mp4", 120, pipeline.DefaultThreshold, pub, mocks.NewLogger())

	ctx := context.Background()
	first := zeros(50)
	if _, err := e.ProcessWindow(ctx, 0, first); err != nil {
		t.Fatalf("window 0: %v", err)
	}

	second := zeros(50)
	second[10] = 0.9
	if _, err := e.ProcessWindow(ctx, 50, second); err != nil {
		t.Fatalf("window 1: %v", err)
	}

	if _, err := e.ProcessWindow(ctx, 100, zeros(50)); err != nil {
		t.Fatalf("window 2: %v", err)
	}
	if err := e.Finalize(ctx); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	events := pub.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}

	boundary := events[0]
	if boundary.Start != 0 || boundary.End != 60 || boundary.Index != 1 {
		t.Errorf("boundary event: got %+v", boundary)
	}
	if boundary.Score != 0.9 {
		t.Errorf("boundary score: expected 0.9, got %v", boundary.Score)
	}

	final := events[1]
	if final.Start != 61 || final.End != 121 || final.Index != 2 {
		t.Errorf("final event: got %+v", final)
	}
	if final.Score != 1.0 {
		t.Errorf("final score: expected 1.0, got %v", final.Score)
	}
}

func TestEmitter_FinalEventIsUnconditional(t *testing.T) {
	// All scores below threshold: exactly one event, the synthetic closer.
	pub := mocks.NewEventPublisher()
	e := NewEmitter("quiet.mp4", 100, pipeline.DefaultThreshold, pub, mocks.NewLogger())

	ctx := context.Background()
	for gap := 0; gap < 100; gap += 50 {
		if _, err := e.ProcessWindow(ctx, gap, zeros(50)); err != nil {
			t.Fatalf("window at gap %d: %v", gap, err)
		}
	}
	if err := e.Finalize(ctx); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	events := pub.Events()
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(events))
	}
	if events[0].End != 101 || events[0].Score != 1.0 || events[0].Index != 1 {
		t.Errorf("final event: got %+v", events[0])
	}

	if err := e.Finalize(ctx); err == nil {
		t.Error("second Finalize should fail")
	}
}

func TestEmitter_MonotonicCursor(t *testing.T) {
	pub := mocks.NewEventPublisher()
	e := NewEmitter("busy.mp4", 150, 0.5, pub, mocks.NewLogger())

	ctx := context.Background()
	scores := zeros(50)
	scores[3] = 0.9
	scores[7] = 0.8
	scores[40] = 0.99
	for gap := 0; gap < 150; gap += 50 {
		if _, err := e.ProcessWindow(ctx, gap, scores); err != nil {
			t.Fatalf("window at gap %d: %v", gap, err)
		}
	}
	if err := e.Finalize(ctx); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	events := pub.Events()
	if len(events) != 10 {
		t.Fatalf("expected 10 events, got %d", len(events))
	}
	for k, ev := range events {
		if ev.Index != k+1 {
			t.Errorf("event %d: index %d, expected %d", k, ev.Index, k+1)
		}
		if k == 0 {
			continue
		}
		prev := events[k-1]
		if ev.Start != prev.End+1 {
			t.Errorf("event %d: start %d does not continue from previous end %d", k, ev.Start, prev.End)
		}
		if ev.End <= prev.End {
			t.Errorf("event %d: end %d not increasing past %d", k, ev.End, prev.End)
		}
	}
}

func TestEmitter_OrderedByIndexNotScore(t *testing.T) {
	// A higher score later in the window must not be emitted first.
	pub := mocks.NewEventPublisher()
	e := NewEmitter("order.mp4", 50, 0.5, pub, mocks.NewLogger())

	scores := zeros(50)
	scores[10] = 0.6
	scores[20] = 0.99
	if _, err := e.ProcessWindow(context.Background(), 0, scores); err != nil {
		t.Fatalf("ProcessWindow: %v", err)
	}

	events := pub.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].End != 10 || events[1].End != 20 {
		t.Errorf("events out of frame order: %+v", events)
	}
}

func TestEmitter_FlushPerWindow(t *testing.T) {
	pub := mocks.NewEventPublisher()
	e := NewEmitter("flush.mp4", 100, 0.5, pub, mocks.NewLogger())

	ctx := context.Background()
	if _, err := e.ProcessWindow(ctx, 0, zeros(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ProcessWindow(ctx, 50, zeros(50)); err != nil {
		t.Fatal(err)
	}
	if pub.Flushes() != 2 {
		t.Errorf("expected 2 flushes, got %d", pub.Flushes())
	}
}

func TestEmitter_TransportErrorKeepsStateRetryable(t *testing.T) {
	pub := mocks.NewEventPublisher()
	pub.PublishErr = pipeline.ErrTransport

	e := NewEmitter("broken.mp4", 50, 0.5, pub, mocks.NewLogger())
	scores := zeros(50)
	scores[5] = 0.9

	_, err := e.ProcessWindow(context.Background(), 0, scores)
	if !errors.Is(err, pipeline.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}

	// The failed publish must not have advanced the cursor or counter: a
	// full retry of the window produces the same event.
	pub.PublishErr = nil
	if _, err := e.ProcessWindow(context.Background(), 0, scores); err != nil {
		t.Fatalf("retry: %v", err)
	}
	events := pub.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event after retry, got %d", len(events))
	}
	if events[0].Start != 0 || events[0].End != 5 || events[0].Index != 1 {
		t.Errorf("retried event corrupted: %+v", events[0])
	}
}

// TestEmitter_CrossVideoIsolation processes two videos with fresh emitters
// and checks the second video's events are unaffected by the first video's
// score distribution.
func TestEmitter_CrossVideoIsolation(t *testing.T) {
	ctx := context.Background()

	runB := func(pub *mocks.EventPublisher) []pipeline.SceneEvent {
		e := NewEmitter("b.mp4", 50, 0.5, pub, mocks.NewLogger())
		scores := zeros(50)
		scores[20] = 0.8
		if _, err := e.ProcessWindow(ctx, 0, scores); err != nil {
			t.Fatalf("video B window: %v", err)
		}
		if err := e.Finalize(ctx); err != nil {
			t.Fatalf("video B finalize: %v", err)
		}
		return pub.Events()
	}

	// Run B alone.
	baseline := runB(mocks.NewEventPublisher())

	// Run a noisy A first, then B on the same transport.
	pub := mocks.NewEventPublisher()
	a := NewEmitter("a.mp4", 50, 0.5, pub, mocks.NewLogger())
	noisy := make([]float32, 50)
	for i := range noisy {
		noisy[i] = 0.95
	}
	if _, err := a.ProcessWindow(ctx, 0, noisy); err != nil {
		t.Fatalf("video A window: %v", err)
	}
	if err := a.Finalize(ctx); err != nil {
		t.Fatalf("video A finalize: %v", err)
	}
	aCount := len(pub.Events())

	after := runB(pub)[aCount:]

	if len(after) != len(baseline) {
		t.Fatalf("video B emitted %d events after A, %d alone", len(after), len(baseline))
	}
	for i := range baseline {
		if after[i] != baseline[i] {
			t.Errorf("event %d differs: alone %+v, after A %+v", i, baseline[i], after[i])
		}
	}
}
