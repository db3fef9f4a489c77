package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanBroker struct {
	ch chan []byte
}

func (b *chanBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.ch <- message.([]byte)
	return nil
}

func (b *chanBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return b.ch, nil
}

func (b *chanBroker) Close() error {
	close(b.ch)
	return nil
}

func TestNewConsumer_Validation(t *testing.T) {
	h := HandlerFunc(func(context.Context, []byte) error { return nil })

	_, err := NewConsumer(&chanBroker{}, h, ConsumerConfig{RetryAttempts: 1})
	assert.Error(t, err)
	_, err = NewConsumer(&chanBroker{}, h, ConsumerConfig{Channel: "appointments"})
	assert.Error(t, err)
	_, err = NewConsumer(&chanBroker{}, h, ConsumerConfig{Channel: "appointments", RetryAttempts: 1, RetryDelay: -time.Second})
	assert.Error(t, err)
}

func TestConsumer_RetriesUntilSuccess(t *testing.T) {
	broker := &chanBroker{ch: make(chan []byte, 4)}

	var (
		mu       sync.Mutex
		attempts = map[string]int{}
		handled  []string
	)
	h := HandlerFunc(func(_ context.Context, raw []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[string(raw)]++
		switch {
		case string(raw) == "flaky" && attempts["flaky"] < 2:
			return errors.New("temporary")
		case string(raw) == "junk":
			return ErrSkip
		}
		handled = append(handled, string(raw))
		return nil
	})

	c, err := NewConsumer(broker, h, ConsumerConfig{Channel: "appointments", RetryAttempts: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), "appointments", []byte("flaky")))
	require.NoError(t, broker.Publish(context.Background(), "appointments", []byte("junk")))
	require.NoError(t, broker.Publish(context.Background(), "appointments", []byte("ok")))
	require.NoError(t, broker.Close())

	require.NoError(t, c.Start(context.Background()))

	assert.Equal(t, []string{"flaky", "ok"}, handled)
	assert.Equal(t, 2, attempts["flaky"])
	assert.Equal(t, 1, attempts["junk"])
}

func TestConsumer_GivesUp(t *testing.T) {
	broker := &chanBroker{ch: make(chan []byte, 1)}

	calls := 0
	h := HandlerFunc(func(context.Context, []byte) error {
		calls++
		return errors.New("permanent")
	})

	c, err := NewConsumer(broker, h, ConsumerConfig{Channel: "appointments", RetryAttempts: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), "appointments", []byte("x")))
	require.NoError(t, broker.Close())

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, 3, calls)
}

func TestConsumer_StopsOnContext(t *testing.T) {
	broker := &chanBroker{ch: make(chan []byte)}
	c, err := NewConsumer(broker, HandlerFunc(func(context.Context, []byte) error { return nil }),
		ConsumerConfig{Channel: "appointments", RetryAttempts: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}
