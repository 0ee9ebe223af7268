package broker

import "context"

// MessageBroker moves invocation envelopes between the scheduling process
// and worker processes with at-least-once delivery.
type MessageBroker interface {
	Publish(queue string, message []byte) error
	Consume(ctx context.Context, queue string) (<-chan []byte, error)
	Close() error
}
