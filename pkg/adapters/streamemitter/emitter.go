// Package streamemitter writes scene events as JSON lines to a stream.
// It is the broker-less stand-in for the MQTT transport: one event per
// line, same wire format, typically to stdout.
package streamemitter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/user/sceneshot/pkg/detect"
	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Emitter implements ports.EventPublisher on an io.Writer.
type Emitter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// New creates an Emitter writing to w.
func New(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Publish writes one event as a JSON line.
func (e *Emitter) Publish(ctx context.Context, event pipeline.SceneEvent) error {
	payload, err := detect.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("%w: encode event: %s", pipeline.ErrTransport, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(payload); err != nil {
		return fmt.Errorf("%w: write event: %s", pipeline.ErrTransport, err)
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: write event: %s", pipeline.ErrTransport, err)
	}
	return nil
}

// Flush forwards buffered lines to the underlying writer.
func (e *Emitter) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %s", pipeline.ErrTransport, err)
	}
	return nil
}

// Close flushes any remaining buffered events.
func (e *Emitter) Close() error {
	return e.Flush(context.Background())
}

var _ ports.EventPublisher = (*Emitter)(nil)
