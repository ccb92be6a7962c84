package health

import (
	"context"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// Handlers serves the health snapshot.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

type depStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// JSON GET /health/json — dependency status plus runtime info.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := map[string]depStatus{
		"database": {Status: "disconnected", PingMs: nil},
		"redis":    {Status: "disconnected", PingMs: nil},
	}

	if h.DB != nil {
		start := time.Now()
		if err := h.DB.Ping(); err == nil {
			deps["database"] = depStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
		}
	}
	if h.Rdb != nil {
		start := time.Now()
		if err := h.Rdb.Ping(context.Background()).Err(); err == nil {
			deps["redis"] = depStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
		}
	}

	status := "ok"
	for _, d := range deps {
		if d.Status != "connected" {
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status": status,
		"runtime": fiber.Map{
			"goVersion":  runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
		"dependencies": deps,
	})
}
