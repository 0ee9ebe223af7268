package broker

import (
	"context"
	"errors"
	"sync"
)

// MemoryBroker is a channel-backed broker for tests and single-process mode.
type MemoryBroker struct {
	mu     sync.Mutex
	queues map[string]chan []byte
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		queues: make(map[string]chan []byte),
	}
}

func (b *MemoryBroker) queue(name string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.queues[name]
	if !ok {
		q = make(chan []byte, 1000)
		b.queues[name] = q
	}
	return q
}

func (b *MemoryBroker) Publish(queue string, message []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return errors.New("broker closed")
	}
	b.mu.Unlock()

	select {
	case b.queue(queue) <- message:
		return nil
	default:
		return errors.New("queue full")
	}
}

func (b *MemoryBroker) Consume(ctx context.Context, queue string) (<-chan []byte, error) {
	q := b.queue(queue)
	out := make(chan []byte, 1000)

	go func() {
		defer close(out)
		for {
			select {
			case msg, ok := <-q:
				if !ok {
					return
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, q := range b.queues {
		close(q)
	}
	return nil
}
