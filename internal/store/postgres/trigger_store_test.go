package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfire/internal/models"
)

func TestPostgresTriggerStore_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresTriggerStore(db)
	next := time.Now().Add(time.Hour)

	mock.ExpectExec("INSERT INTO jobfire_schema.periodic_triggers").
		WithArgs("scheduler.job.11", "30", "8", "*", "*", "1-5",
			"scheduler.run_job", []byte(`[11]`), true, nil, next).
		WillReturnResult(sqlmock.NewResult(0, 1))

	trigger := &models.PeriodicTrigger{
		Name:       "scheduler.job.11",
		Minute:     "30",
		Hour:       "8",
		DayOfMonth: "*",
		Month:      "*",
		DayOfWeek:  "1-5",
		Target:     "scheduler.run_job",
		Payload:    json.RawMessage(`[11]`),
		Enabled:    true,
		NextFireAt: next,
	}

	require.NoError(t, store.Upsert(context.Background(), trigger))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTriggerStore_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresTriggerStore(db)

	mock.ExpectExec("DELETE FROM jobfire_schema.periodic_triggers").
		WithArgs("scheduler.job.11").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Remove(context.Background(), "scheduler.job.11"))

	// Removing an absent name is still a successful no-op.
	mock.ExpectExec("DELETE FROM jobfire_schema.periodic_triggers").
		WithArgs("scheduler.job.404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Remove(context.Background(), "scheduler.job.404"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTriggerStore_FetchDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresTriggerStore(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM jobfire_schema.periodic_triggers").
		WithArgs(now, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "minute", "hour", "day_of_month", "month", "day_of_week",
			"target", "payload", "enabled", "expires", "last_fired_at", "next_fire_at",
			"created_at", "updated_at",
		}).AddRow("scheduler.job.11", "*", "*", "*", "*", "*",
			"scheduler.run_job", []byte(`[11]`), true, nil, nil, now.Add(-time.Minute),
			now, now))

	result, err := store.FetchDue(context.Background(), now, 1, 50)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	trigger := result.Items[0]
	assert.Equal(t, "scheduler.job.11", trigger.Name)
	assert.Equal(t, "* * * * *", trigger.Expression())
	assert.True(t, trigger.Enabled)
	assert.False(t, result.HasNextPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTriggerStore_MarkFired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresTriggerStore(db)
	firedAt := time.Now()
	next := firedAt.Add(time.Hour)

	mock.ExpectExec("UPDATE jobfire_schema.periodic_triggers").
		WithArgs(firedAt, next, "scheduler.job.11").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.MarkFired(context.Background(), "scheduler.job.11", firedAt, next))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTriggerStore_SetEnabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresTriggerStore(db)

	mock.ExpectExec("UPDATE jobfire_schema.periodic_triggers").
		WithArgs(false, "scheduler.job.11").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SetEnabled(context.Background(), "scheduler.job.11", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
