package queue

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"jobfire/internal/parser"
)

// MemoryTaskQueue keeps triggers in process memory: timers for one-shots and
// a cron runtime for recurring registrations. Everything here vanishes on
// restart; active jobs are replayed through the job service to rebuild it.
type MemoryTaskQueue struct {
	mu       sync.Mutex
	c        *cron.Cron
	entries  map[string]cron.EntryID
	timers   map[int64]*time.Timer
	nextID   int64
	dispatch Dispatch
}

func NewMemoryTaskQueue() *MemoryTaskQueue {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))
	return &MemoryTaskQueue{
		c:       c,
		entries: make(map[string]cron.EntryID),
		timers:  make(map[int64]*time.Timer),
	}
}

// Bind wires the execution target. Must be called before any trigger fires.
func (q *MemoryTaskQueue) Bind(d Dispatch) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dispatch = d
}

func (q *MemoryTaskQueue) Start() {
	q.c.Start()
}

func (q *MemoryTaskQueue) Stop() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()
	<-q.c.Stop().Done()
}

func (q *MemoryTaskQueue) ScheduleAt(ctx context.Context, inv Invocation, at time.Time) error {
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := q.nextID
	q.timers[id] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, id)
		d := q.dispatch
		q.mu.Unlock()
		if d != nil {
			d(context.Background(), inv)
		}
	})
	return nil
}

func (q *MemoryTaskQueue) ScheduleRecurring(ctx context.Context, name string, inv Invocation, expression string) error {
	schedule, err := parser.Parse(expression)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	// Replace, never duplicate: the name is the idempotency key.
	if old, ok := q.entries[name]; ok {
		q.c.Remove(old)
	}
	q.entries[name] = q.c.Schedule(schedule, cron.FuncJob(func() {
		q.mu.Lock()
		d := q.dispatch
		q.mu.Unlock()
		if d != nil {
			d(context.Background(), inv)
		}
	}))
	return nil
}

func (q *MemoryTaskQueue) CancelRecurring(ctx context.Context, name string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if id, ok := q.entries[name]; ok {
		q.c.Remove(id)
		delete(q.entries, name)
	}
	return nil
}

// HasRecurring reports whether a named recurring trigger is registered.
func (q *MemoryTaskQueue) HasRecurring(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.entries[name]
	return ok
}

// RecurringCount returns the number of live recurring registrations.
func (q *MemoryTaskQueue) RecurringCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// PendingOneOffs returns the number of armed one-shot timers.
func (q *MemoryTaskQueue) PendingOneOffs() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}
