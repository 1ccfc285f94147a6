package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

const checkTimeout = 5 * time.Second

type DependencyCheck struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report is the readiness payload: overall status plus one entry per
// probed dependency.
type Report struct {
	Status  Status                     `json:"status"`
	Version string                     `json:"version,omitempty"`
	Checks  map[string]DependencyCheck `json:"checks,omitempty"`
}

// Checker probes the dependencies the planner cannot serve without.
type Checker struct {
	redisClient *redis.Client
	version     string
}

func NewChecker(redisClient *redis.Client, version string) *Checker {
	return &Checker{
		redisClient: redisClient,
		version:     version,
	}
}

func (c *Checker) Check(ctx context.Context) *Report {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := &Report{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]DependencyCheck),
	}

	if c.redisClient != nil {
		check := c.checkRedis(checkCtx)
		report.Checks["redis"] = check
		if check.Status != StatusHealthy {
			report.Status = StatusUnhealthy
		}
	}

	return report
}

func (c *Checker) checkRedis(ctx context.Context) DependencyCheck {
	start := time.Now()
	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		return DependencyCheck{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}

	return DependencyCheck{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

// LiveHandler answers liveness probes without touching dependencies.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler runs the dependency checks and reports 503 until all pass.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		report := c.Check(ctx.Request.Context())

		status := http.StatusOK
		if report.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, report)
	}
}
