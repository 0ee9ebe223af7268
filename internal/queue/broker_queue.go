package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"jobfire/internal/broker"
	"jobfire/internal/parser"
)

// envelope is the wire form of a scheduled delivery.
type envelope struct {
	Invocation Invocation `json:"invocation"`
	RunAt      time.Time  `json:"run_at"`
}

// BrokerQueue publishes invocation envelopes through a message broker so
// worker processes pick them up with at-least-once delivery. Recurring
// triggers still tick in process and publish an immediate envelope per fire.
type BrokerQueue struct {
	mu        sync.Mutex
	broker    broker.MessageBroker
	queueName string
	c         *cron.Cron
	entries   map[string]cron.EntryID
}

func NewBrokerQueue(mBroker broker.MessageBroker, queueName string) *BrokerQueue {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))
	return &BrokerQueue{
		broker:    mBroker,
		queueName: queueName,
		c:         c,
		entries:   make(map[string]cron.EntryID),
	}
}

func (q *BrokerQueue) Start() {
	q.c.Start()
}

func (q *BrokerQueue) Stop() {
	<-q.c.Stop().Done()
}

func (q *BrokerQueue) ScheduleAt(ctx context.Context, inv Invocation, at time.Time) error {
	return q.publish(inv, at)
}

func (q *BrokerQueue) ScheduleRecurring(ctx context.Context, name string, inv Invocation, expression string) error {
	schedule, err := parser.Parse(expression)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if old, ok := q.entries[name]; ok {
		q.c.Remove(old)
	}
	q.entries[name] = q.c.Schedule(schedule, cron.FuncJob(func() {
		if err := q.publish(inv, time.Now()); err != nil {
			log.Printf("broker queue: publish for job %d failed: %v", inv.JobID, err)
		}
	}))
	return nil
}

func (q *BrokerQueue) CancelRecurring(ctx context.Context, name string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if id, ok := q.entries[name]; ok {
		q.c.Remove(id)
		delete(q.entries, name)
	}
	return nil
}

func (q *BrokerQueue) publish(inv Invocation, at time.Time) error {
	payload, err := json.Marshal(envelope{Invocation: inv, RunAt: at})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := q.broker.Publish(q.queueName, payload); err != nil {
		return fmt.Errorf("publish envelope: %w", err)
	}
	return nil
}

// Worker consumes envelopes on the worker side and hands invocations to the
// execution target, honoring each envelope's run-at instant.
type Worker struct {
	broker    broker.MessageBroker
	queueName string
	dispatch  Dispatch
}

func NewWorker(mBroker broker.MessageBroker, queueName string, dispatch Dispatch) *Worker {
	return &Worker{
		broker:    mBroker,
		queueName: queueName,
		dispatch:  dispatch,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.broker.Consume(ctx, w.queueName)
	if err != nil {
		return fmt.Errorf("consume %s: %w", w.queueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal(msg, &env); err != nil {
				log.Printf("worker: dropping malformed envelope: %v", err)
				continue
			}
			if delay := time.Until(env.RunAt); delay > 0 {
				inv := env.Invocation
				time.AfterFunc(delay, func() {
					w.dispatch(context.Background(), inv)
				})
				continue
			}
			go w.dispatch(ctx, env.Invocation)
		}
	}
}
