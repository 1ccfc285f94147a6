package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/loadtest/internal/stub"
)

// Stand-in for the self-hosted alert tasks service plus a snapshot seeder,
// so load runs against the planner need no real queue or scraper.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	storage := stub.NewStorage()
	handler := stub.NewHandler(storage)

	r := gin.Default()
	r.POST("/reset", handler.HandleReset)
	r.POST("/seed", handler.HandleSeed)
	r.GET("/students/:student_id/snapshot", handler.HandleGetSnapshot)
	r.POST("/tasks", handler.HandleRegisterTask)
	r.POST("/tasks/:queue", handler.HandleRegisterTask)
	r.GET("/stats", handler.HandleStats)

	slog.Info("starting alert stub", slog.String("port", port))

	if err := r.Run(":" + port); err != nil {
		slog.Error("stub exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
