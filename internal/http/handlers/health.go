package handlers

import (
	"context"
	"net/http"
	"time"

	"rapv/site/internal/metrics"
)

type HealthHandler struct {
	// Ping is nil when no database is configured.
	Ping func(ctx context.Context) error
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "unconfigured"}
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		start := time.Now()
		err := h.Ping(ctx)
		metrics.ObserveDBPing(time.Since(start))
		if err != nil {
			status["status"] = "degraded"
			status["database"] = "error"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}
