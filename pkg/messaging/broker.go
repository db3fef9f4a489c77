package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Broker publishes and subscribes to JSON messages on named channels.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope every published event uses.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// LogBroker writes published messages to the log. Used when no Redis URL is configured.
type LogBroker struct{}

func NewLogBroker() *LogBroker {
	return &LogBroker{}
}

func (b *LogBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	log.Info().Str("channel", channel).RawJSON("message", payload).Msg("event published")
	return nil
}

// Subscribe returns a channel that is closed when ctx ends; nothing is ever delivered.
func (b *LogBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (b *LogBroker) Close() error {
	return nil
}
