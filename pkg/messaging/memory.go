package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var ErrClosed = errors.New("broker closed")

// MemoryBroker delivers messages to in-process subscribers. It backs the API
// when Redis is disabled and is used in tests.
type MemoryBroker struct {
	mu     sync.RWMutex
	subs   map[string][]chan []byte
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string][]chan []byte)}
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	for _, ch := range b.subs[channel] {
		select {
		case ch <- payload:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// slow subscriber, drop
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	ch := make(chan []byte, 100)
	b.subs[channel] = append(b.subs[channel], ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(channel, ch)
	}()
	return ch, nil
}

func (b *MemoryBroker) unsubscribe(channel string, ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[channel]
	for i, s := range subs {
		if s == ch {
			b.subs[channel] = append(subs[:i], subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subs := range b.subs {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subs, channel)
	}
	return nil
}
