package app

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfire/internal/config"
	"jobfire/internal/scheduler"
)

func TestNewContainer_EphemeralWiring(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg, err := config.NewConfig("test-instance")
	require.NoError(t, err)
	require.NoError(t, cfg.RegisterHandler(config.TaskHandler{
		TaskPath: "math.add",
		Func:     func(args []any, kwargs map[string]any) (any, error) { return nil, nil },
	}))

	c, err := NewContainer(context.Background(), cfg, WithDB(db), WithoutMigrations())
	require.NoError(t, err)

	assert.NotNil(t, c.JobStore)
	assert.NotNil(t, c.LogStore)
	assert.NotNil(t, c.TriggerStore)
	assert.NotNil(t, c.LockManager)
	assert.NotNil(t, c.TaskQueue)
	assert.NotNil(t, c.JobService)
	assert.NotNil(t, c.Runner)
	assert.NotNil(t, c.Invoker)
	assert.Nil(t, c.Dispatcher)
	assert.Nil(t, c.MessageBroker)

	_, ok := c.Backend.(*scheduler.EphemeralBackend)
	assert.True(t, ok)
	assert.True(t, c.Registry.Exists("math.add"))
}

func TestNewContainer_PersistentWiring(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg, err := config.NewConfig("test-instance", config.WithBackendDriver(config.Persistent))
	require.NoError(t, err)

	c, err := NewContainer(context.Background(), cfg, WithDB(db), WithoutMigrations())
	require.NoError(t, err)

	_, ok := c.Backend.(*scheduler.PersistentBackend)
	assert.True(t, ok)
	assert.NotNil(t, c.Dispatcher)
}

func TestNewContainer_BadHandlerRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg, err := config.NewConfig("test-instance")
	require.NoError(t, err)
	cfg.Handlers = append(cfg.Handlers, config.TaskHandler{
		TaskPath: "noperiod",
		Func:     func(args []any, kwargs map[string]any) (any, error) { return nil, nil },
	})

	_, err = NewContainer(context.Background(), cfg, WithDB(db), WithoutMigrations())
	assert.Error(t, err)
}
