// Package mqttemitter publishes scene events to an MQTT broker.
package mqttemitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/user/sceneshot/pkg/detect"
	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// DefaultTopic is the topic scene events are published to.
const DefaultTopic = "video-scenes"

// Emitter implements ports.EventPublisher over MQTT with QoS 1. Publish
// buffers: delivery tokens are collected and awaited in Flush, so one flush
// makes a whole window's events visible together.
type Emitter struct {
	client mqtt.Client
	topic  string
	logger ports.Logger

	mu      sync.Mutex
	pending []mqtt.Token
}

// New creates an Emitter for the given broker address (host:port) and
// topic. An empty topic selects DefaultTopic.
func New(broker, topic string, logger ports.Logger) *Emitter {
	if topic == "" {
		topic = DefaultTopic
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", broker))
	opts.SetClientID("sceneshot-" + uuid.NewString()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetOrderMatters(true)

	return &Emitter{
		client: mqtt.NewClient(opts),
		topic:  topic,
		logger: logger.WithComponent("mqtt"),
	}
}

// Connect establishes the broker connection.
func (e *Emitter) Connect(ctx context.Context) error {
	token := e.client.Connect()
	if err := wait(ctx, token); err != nil {
		return fmt.Errorf("%w: connect: %s", pipeline.ErrTransport, err)
	}
	e.logger.Debug("Connected, publishing to topic %s", e.topic)
	return nil
}

// Publish enqueues one scene event. The event is complete in itself; Flush
// only synchronizes delivery.
func (e *Emitter) Publish(ctx context.Context, event pipeline.SceneEvent) error {
	payload, err := detect.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("%w: encode event: %s", pipeline.ErrTransport, err)
	}

	token := e.client.Publish(e.topic, 1, false, payload)

	e.mu.Lock()
	e.pending = append(e.pending, token)
	e.mu.Unlock()
	return nil
}

// Flush blocks until every buffered event has been acknowledged by the
// broker.
func (e *Emitter) Flush(ctx context.Context) error {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, token := range pending {
		if err := wait(ctx, token); err != nil {
			return fmt.Errorf("%w: flush: %s", pipeline.ErrTransport, err)
		}
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages a short
// grace period.
func (e *Emitter) Close() error {
	e.client.Disconnect(250)
	return nil
}

func wait(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ports.EventPublisher = (*Emitter)(nil)
