package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"jobfire/internal/broker"
	"jobfire/internal/config"
	"jobfire/internal/constants"
	"jobfire/internal/db"
	"jobfire/internal/handler"
	"jobfire/internal/lock"
	"jobfire/internal/queue"
	"jobfire/internal/runner"
	"jobfire/internal/scheduler"
	"jobfire/internal/service"
	"jobfire/internal/store"
	"jobfire/internal/store/postgres"
)

// Container holds all application dependencies. It is the single source of
// truth for dependency injection and ensures connections and services are
// created once.
type Container struct {
	Config *config.Config

	// Storage connections (created once, shared by all stores)
	DB    *sql.DB
	Redis *redis.Client

	// Stores (implement interfaces for testability)
	JobStore     store.JobStore
	LogStore     store.ExecutionLogStore
	TriggerStore store.TriggerStore

	// Infrastructure
	LockManager   lock.DistributedLockManager
	MessageBroker broker.MessageBroker

	// Scheduling and execution
	Registry   *handler.Registry
	TaskQueue  queue.TaskQueue
	Backend    scheduler.Backend
	JobService *service.JobService
	Runner     *runner.Runner
	Invoker    *runner.Invoker
	Dispatcher *scheduler.Dispatcher

	memQueue    *queue.MemoryTaskQueue
	brokerQueue *queue.BrokerQueue

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewContainer creates and wires all dependencies. Single entry point for DI.
// Call this once per application lifecycle.
// Pass optional WithDB, WithRedis to inject connections for testing.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	opt := &containerConfig{}
	for _, o := range opts {
		o(opt)
	}

	sqlDB := opt.db
	redisClient := opt.redis
	var err error
	if sqlDB == nil {
		sqlDB, err = openPostgresDB(cfg.PostgresConfig.ConnectionUrl)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
	}
	if redisClient == nil && cfg.UseRedisLock {
		redisClient, err = openRedis(ctx, cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
	}

	var lockMgr lock.DistributedLockManager
	if cfg.UseRedisLock && redisClient != nil {
		lockMgr = lock.NewRedisLockManager(redisClient, cfg.Instance)
	} else {
		lockMgr = lock.NewPostgresLockManager(sqlDB)
	}

	if !opt.skipMigrations {
		if err := db.Init(cfg.PostgresConfig.ConnectionUrl, lockMgr); err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}

	registry := handler.NewRegistry()
	for _, h := range cfg.Handlers {
		if err := registry.Register(h.TaskPath, h.Func); err != nil {
			return nil, fmt.Errorf("register handler: %w", err)
		}
	}

	c := &Container{
		Config:       cfg,
		DB:           sqlDB,
		Redis:        redisClient,
		JobStore:     postgres.NewPostgresJobStore(sqlDB),
		LogStore:     postgres.NewPostgresExecutionLogStore(sqlDB),
		TriggerStore: postgres.NewPostgresTriggerStore(sqlDB),
		LockManager:  lockMgr,
		Registry:     registry,
	}

	if cfg.UseQueueWriter {
		mBroker, err := broker.NewRabbitMQ(
			cfg.RabbitMQConfig.URL,
			cfg.RabbitMQConfig.Exchange,
			cfg.RabbitMQConfig.Queue,
			"",
		)
		if err != nil {
			return nil, fmt.Errorf("init rabbitmq: %w", err)
		}
		c.MessageBroker = mBroker
		c.brokerQueue = queue.NewBrokerQueue(mBroker, cfg.RabbitMQConfig.Queue)
		c.TaskQueue = c.brokerQueue
	} else {
		c.memQueue = queue.NewMemoryTaskQueue()
		c.TaskQueue = c.memQueue
	}

	switch cfg.BackendDriver {
	case config.Persistent:
		c.Backend = scheduler.NewPersistentBackend(c.TriggerStore, c.TaskQueue)
	default:
		c.Backend = scheduler.NewEphemeralBackend(c.TaskQueue)
	}

	c.JobService = service.NewJobService(c.JobStore, c.Backend)
	c.Runner = runner.NewRunner(c.JobStore, c.LogStore, c.Registry, c.JobService, cfg.RetryBackoff)
	c.Invoker = runner.NewInvoker(c.Runner, c.TaskQueue)

	if cfg.BackendDriver == config.Persistent {
		c.Dispatcher = scheduler.NewDispatcher(c.TriggerStore, c.LockManager, c.Invoker.Dispatch)
	}

	return c, nil
}

// Start launches the trigger machinery and replays active jobs so every
// registration matches the current job table.
func (c *Container) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	if c.memQueue != nil {
		c.memQueue.Bind(c.Invoker.Dispatch)
		c.memQueue.Start()
	}
	if c.brokerQueue != nil {
		c.brokerQueue.Start()
		worker := queue.NewWorker(c.MessageBroker, c.Config.RabbitMQConfig.Queue, c.Invoker.Dispatch)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Container: worker stopped: %v", err)
			}
		}()
	}

	if err := c.replayActiveJobs(ctx); err != nil {
		return err
	}

	if c.Dispatcher != nil {
		c.startDispatcher(ctx)
	}
	return nil
}

// replayActiveJobs reconciles trigger registrations with the job table. The
// ephemeral backend needs this on every start; the persistent one only needs
// one instance to do it, so the replay is guarded by a lock there.
func (c *Container) replayActiveJobs(ctx context.Context) error {
	if c.Config.BackendDriver == config.Persistent {
		if err := c.LockManager.Acquire(constants.RehydrateLock); err != nil {
			log.Println("Container: replay lock held elsewhere, skipping:", err)
			return nil
		}
		defer c.LockManager.Release(constants.RehydrateLock)
	}

	_, err := c.JobService.ScheduleActiveJobs(ctx)
	return err
}

// startDispatcher runs the dispatch loop if no other instance holds it. The
// lock is kept for the container's lifetime so exactly one dispatcher polls
// the trigger table at a time.
func (c *Container) startDispatcher(ctx context.Context) {
	if err := c.LockManager.Acquire(constants.StartDispatcherLock); err != nil {
		log.Println("Container: dispatcher running elsewhere, not starting:", err)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.LockManager.Release(constants.StartDispatcherLock)
		c.Dispatcher.Start(ctx, c.Config.DispatchInterval, c.Config.WorkerCount, c.Config.BatchSize)
	}()
}

// GracefulExit listens for system interrupt or termination signals (SIGINT,
// SIGTERM) and shuts the container down, waiting for in-flight work and
// closing storage resources. It blocks until a signal is received.
func (c *Container) GracefulExit() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("jobfire shutting down gracefully...")

	if c.cancel != nil {
		c.cancel()
	}

	if c.memQueue != nil {
		c.memQueue.Stop()
	}
	if c.brokerQueue != nil {
		c.brokerQueue.Stop()
	}

	c.wg.Wait()

	if c.MessageBroker != nil {
		if err := c.MessageBroker.Close(); err != nil {
			log.Println(err.Error())
		}
	}

	if err := c.JobStore.Close(); err != nil {
		log.Println(err.Error())
	}
	if err := c.LogStore.Close(); err != nil {
		log.Println(err.Error())
	}
	if err := c.TriggerStore.Close(); err != nil {
		log.Println(err.Error())
	}

	for _, lockID := range constants.Locks {
		c.LockManager.Release(lockID)
	}

	log.Println("jobfire shutdown complete.")
}

func openPostgresDB(connectionURL string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", connectionURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return sqlDB, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
