package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/events"
)

const streamName = "KULINER_EVENTS"

// Publisher handles sending events to the NATS bus.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger logger.ILogger
}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// NewPublisher connects to NATS and makes sure the events stream exists.
func NewPublisher(url string, log logger.ILogger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("kuliner-chatbot-be"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"events.>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		// The stream may already exist with another config, or NATS is still starting.
		log.Warn("NATS", "Failed to ensure events stream", map[string]interface{}{
			"stream": streamName,
			"error":  err.Error(),
		})
	}

	return &Publisher{nc: nc, js: js, logger: log}, nil
}

func Subject(event events.Event) string {
	return fmt.Sprintf("events.%s", event.EventType())
}

// Publish sends an event to NATS.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(envelope{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Payload:    event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	subject := Subject(event)
	if _, err = p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
