package scheduler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"jobfire/internal/constants"
	"jobfire/internal/lock"
	"jobfire/internal/models"
	"jobfire/internal/parser"
	"jobfire/internal/queue"
	"jobfire/internal/store"

	"golang.org/x/sync/semaphore"
)

// Dispatcher polls the trigger table and delivers due invocations. Running
// it is only meaningful with the persistent backend; the ephemeral backend
// fires from the task queue's own timers.
type Dispatcher struct {
	triggers store.TriggerStore
	lock     lock.DistributedLockManager
	dispatch queue.Dispatch
	started  bool
	mutex    sync.Mutex
}

func NewDispatcher(triggers store.TriggerStore, lockManager lock.DistributedLockManager, dispatch queue.Dispatch) *Dispatcher {
	return &Dispatcher{
		triggers: triggers,
		lock:     lockManager,
		dispatch: dispatch,
	}
}

func (d *Dispatcher) Start(ctx context.Context, intervalSeconds, workerCount, batchSize int) {
	d.mutex.Lock()
	if d.started {
		d.mutex.Unlock()
		log.Println("Dispatcher already started")
		return
	}
	d.started = true
	d.mutex.Unlock()

	ticker := time.NewTicker(time.Duration(intervalSeconds) * time.Second)
	defer ticker.Stop()

	sem := semaphore.NewWeighted(int64(workerCount))
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			log.Println("Dispatcher stopped")
			wg.Wait()
			return
		case <-ticker.C:
			d.processDueTriggers(ctx, sem, &wg, batchSize)
		}
	}
}

func (d *Dispatcher) processDueTriggers(ctx context.Context, sem *semaphore.Weighted, wg *sync.WaitGroup, batchSize int) {
	if err := d.lock.Acquire(constants.DispatchLock); err != nil {
		log.Println("Dispatcher: lock acquire failed:", err)
		return
	}
	defer d.lock.Release(constants.DispatchLock)

	now := time.Now()
	page := 1
	for {
		result, err := d.triggers.FetchDue(ctx, now, page, batchSize)
		if err != nil {
			log.Printf("Dispatcher: failed to fetch triggers: %v", err)
			return
		}

		for _, trigger := range result.Items {
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Println("Dispatcher: semaphore error:", err)
				continue
			}
			wg.Add(1)

			go func(trigger models.PeriodicTrigger) {
				defer sem.Release(1)
				defer wg.Done()
				d.fire(ctx, &trigger, now)
			}(trigger)
		}

		if !result.HasNextPage {
			break
		}
		page++
	}
}

func (d *Dispatcher) fire(ctx context.Context, trigger *models.PeriodicTrigger, now time.Time) {
	if trigger.Expired(now) {
		log.Printf("Dispatcher: trigger %s expired, disabling", trigger.Name)
		if err := d.triggers.SetEnabled(ctx, trigger.Name, false); err != nil {
			log.Printf("Dispatcher: failed to disable trigger %s: %v", trigger.Name, err)
		}
		return
	}

	var args []int64
	if err := json.Unmarshal(trigger.Payload, &args); err != nil || len(args) == 0 {
		log.Printf("Dispatcher: invalid payload for trigger %s: %v", trigger.Name, err)
		return
	}

	d.dispatch(ctx, queue.Invocation{JobID: args[0]})

	next, err := parser.NextRun(trigger.Expression(), now)
	if err != nil {
		log.Printf("Dispatcher: invalid cron expression %q for trigger %s: %v", trigger.Expression(), trigger.Name, err)
		next = now.Add(1 * time.Hour)
	}
	if err := d.triggers.MarkFired(ctx, trigger.Name, now, next); err != nil {
		log.Printf("Dispatcher: failed to mark trigger %s fired: %v", trigger.Name, err)
	}
}
