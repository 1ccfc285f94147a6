package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port    string
	Alerts  AlertQueueConfig
	Redis   *RedisConfig
	Planner *PlannerConfig
	Payment *PaymentConfig
	Auth    *AuthConfig
}

type AlertQueueConfig struct {
	AlertTasksURL string
	QueueName     string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port: port,
		Alerts: AlertQueueConfig{
			AlertTasksURL: os.Getenv("ALERT_TASKS_URL"),
			QueueName:     queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
		Redis:   redisConfig,
		Planner: LoadPlannerConfig(),
		Payment: LoadPaymentConfig(),
		Auth:    LoadAuthConfig(),
	}, nil
}
