package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/pkg/messaging"
)

// Handler processes one raw message. Returning ErrSkip drops the message without retrying.
type Handler interface {
	Handle(ctx context.Context, raw []byte) error
}

type HandlerFunc func(ctx context.Context, raw []byte) error

func (f HandlerFunc) Handle(ctx context.Context, raw []byte) error {
	return f(ctx, raw)
}

var ErrSkip = errors.New("message skipped")

type ConsumerConfig struct {
	Channel       string
	RetryAttempts int
	RetryDelay    time.Duration
}

// Consumer feeds every message of a broker channel to a Handler.
type Consumer struct {
	broker  messaging.Broker
	handler Handler
	config  ConsumerConfig
}

func NewConsumer(broker messaging.Broker, handler Handler, config ConsumerConfig) (*Consumer, error) {
	if config.Channel == "" {
		return nil, errors.New("channel must be set")
	}
	if config.RetryAttempts <= 0 {
		return nil, errors.New("retry attempts must be greater than 0")
	}
	if config.RetryDelay < 0 {
		return nil, errors.New("retry delay must not be negative")
	}

	return &Consumer{
		broker:  broker,
		handler: handler,
		config:  config,
	}, nil
}

// Start blocks until ctx is done or the subscription ends.
func (c *Consumer) Start(ctx context.Context) error {
	messages, err := c.broker.Subscribe(ctx, c.config.Channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.config.Channel, err)
	}

	log.Info().Str("channel", c.config.Channel).Msg("consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("channel", c.config.Channel).Msg("consumer shutting down")
			return nil
		case raw, ok := <-messages:
			if !ok {
				log.Info().Str("channel", c.config.Channel).Msg("subscription closed")
				return nil
			}
			if err := c.process(ctx, raw); err != nil {
				log.Error().Err(err).Str("channel", c.config.Channel).Msg("failed to process message")
			}
		}
	}
}

func (c *Consumer) process(ctx context.Context, raw []byte) error {
	err := retry(ctx, c.config.RetryAttempts, c.config.RetryDelay, func() error {
		return c.handler.Handle(ctx, raw)
	})
	if errors.Is(err, ErrSkip) {
		log.Debug().Err(err).Msg("message skipped")
		return nil
	}
	return err
}

func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || errors.Is(err, ErrSkip) {
			return err
		}
		if i < attempts-1 {
			log.Warn().Err(err).Int("attempt", i+1).Msg("retrying message")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay * time.Duration(i+1)):
			}
		}
	}
	return err
}
