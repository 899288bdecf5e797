package realtime

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("bus closed")

type subscription struct {
	ctx     context.Context
	handler Handler
}

// MemoryBus delivers events in-process, synchronously on the publishing
// goroutine. Handlers must not block.
type MemoryBus struct {
	mu     sync.Mutex
	subs   []*subscription
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	live := b.subs[:0]
	for _, s := range b.subs {
		if s.ctx.Err() == nil {
			live = append(live, s)
		}
	}
	b.subs = live
	targets := make([]*subscription, len(live))
	copy(targets, live)
	b.mu.Unlock()

	for _, s := range targets {
		s.handler(s.ctx, e)
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, h Handler) error {
	if h == nil {
		return errors.New("handler required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.subs = append(b.subs, &subscription{ctx: ctx, handler: h})
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
	return nil
}
