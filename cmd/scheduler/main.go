package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"jobfire/internal/app"
	"jobfire/internal/config"
	"jobfire/internal/models"
)

func main() {
	const postgresURL = "host=localhost port=5432 user=postgres password=postgres dbname=jobfire sslmode=disable"

	cfg, err := config.NewConfig("west-1",
		config.WithPostgresConfig(config.PostgresConfig{ConnectionUrl: postgresURL}),
		config.WithWorkerCount(10),
		config.WithDispatchInterval(5),
		config.WithBatchSize(100),
	)
	if err != nil {
		log.Fatal(err)
	}

	cfg.RegisterHandler(config.TaskHandler{
		TaskPath: "math.add",
		Func: func(args []any, kwargs map[string]any) (any, error) {
			sum := 0.0
			for _, a := range args {
				n, ok := a.(float64)
				if !ok {
					return nil, fmt.Errorf("non-numeric argument: %v", a)
				}
				sum += n
			}
			return sum, nil
		},
	})

	cfg.RegisterHandler(config.TaskHandler{
		TaskPath: "notify.send_email",
		Func: func(args []any, kwargs map[string]any) (any, error) {
			to, _ := kwargs["to"].(string)
			subject, _ := kwargs["subject"].(string)
			log.Printf("sending email to %s: %s", to, subject)
			return "sent to " + to, nil
		},
	})

	ctx := context.Background()
	container, err := app.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	seedJobs(ctx, container)

	if err := container.Start(ctx); err != nil {
		log.Fatal(err)
	}

	container.GracefulExit()
}

func seedJobs(ctx context.Context, container *app.Container) {
	nightly := &models.ScheduledJob{
		Name:           "nightly-report",
		TaskPath:       "notify.send_email",
		Kwargs:         json.RawMessage(`{"to": "ops@example.com", "subject": "nightly report"}`),
		CronExpression: "0 2 * * *",
		MaxRetries:     3,
		IsActive:       true,
	}
	if _, err := container.JobStore.Create(ctx, nightly); err != nil {
		log.Println("seed nightly-report:", err)
	}

	runAt := time.Now().Add(1 * time.Minute)
	oneOff := &models.ScheduledJob{
		Name:          "warmup-sum",
		TaskPath:      "math.add",
		Args:          json.RawMessage(`[4, 6]`),
		OneOffRunTime: &runAt,
		MaxRetries:    1,
		IsActive:      true,
	}
	if _, err := container.JobStore.Create(ctx, oneOff); err != nil {
		log.Println("seed warmup-sum:", err)
	}
}
