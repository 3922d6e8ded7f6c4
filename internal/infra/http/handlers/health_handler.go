package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type QueueState interface {
	Healthy() bool
}

type HealthHandler struct {
	Store       Pinger
	StoreDriver string
	Queue       QueueState
	Version     string
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// queue may be nil when no broker is configured.
func NewHealthHandler(store Pinger, driver string, queue QueueState, version string) *HealthHandler {
	return &HealthHandler{
		Store:       store,
		StoreDriver: driver,
		Queue:       queue,
		Version:     version,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeKey := "store:" + h.StoreDriver
	if err := h.Store.Ping(ctx); err != nil {
		deps[storeKey] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		deps[storeKey] = "healthy"
	}

	if h.Queue != nil {
		if h.Queue.Healthy() {
			deps["rabbitmq"] = "healthy"
		} else {
			deps["rabbitmq"] = "unhealthy: connection closed"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
