//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/erphive/attendance-planner/internal/config"
	"github.com/erphive/attendance-planner/internal/infra/taskqueue"
	"github.com/erphive/attendance-planner/internal/observability"
	"github.com/erphive/attendance-planner/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if cfg.Alerts.AlertTasksURL == "" {
		slog.Warn("ALERT_TASKS_URL not set, alert dispatch disabled")

		return nil, nil, nil
	}

	tq := taskqueue.NewAlertTasksClient(
		cfg.Alerts.AlertTasksURL,
		cfg.Alerts.QueueName,
		cfg.Alerts.MaxRetries,
	)

	slog.Info("task queue initialized",
		slog.String("type", "alert_tasks"),
		slog.String("url", cfg.Alerts.AlertTasksURL),
		slog.String("queue", cfg.Alerts.QueueName),
	)

	return tq, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "attendance-planner"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("attendance-planner"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
