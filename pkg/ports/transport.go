package ports

import (
	"context"

	"github.com/user/sceneshot/pkg/pipeline"
)

// EventPublisher abstracts the transport that carries scene events to an
// external broker. Publish may buffer; Flush blocks until every buffered
// event is durably sent. Both wrap pipeline.ErrTransport on failure.
//
// Implementations must be safe for concurrent use when multiple videos are
// processed at once; within one video the emitter calls them sequentially.
type EventPublisher interface {
	// Publish enqueues one scene event.
	Publish(ctx context.Context, event pipeline.SceneEvent) error

	// Flush blocks until all published events have been sent.
	Flush(ctx context.Context) error

	// Close disconnects from the broker.
	Close() error
}
