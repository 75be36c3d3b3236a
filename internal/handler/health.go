package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/docpay/settlement-engine/pkg/response"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const readyCheckTimeout = 5 * time.Second

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHealthHandler(db *sqlx.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

type livenessStatus struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type readinessStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health reports process liveness. It deliberately touches no dependency:
// a reachable process with an unreachable database is still alive, just
// not ready.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, livenessStatus{
		Service:   "settlement-engine",
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// Ready reports whether the engine can settle. The ledger database is
// required; the report cache is required because report reads go through it.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	status := readinessStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "error"
		status.Checks["ledger_database"] = "failed: " + err.Error()
	} else {
		status.Checks["ledger_database"] = "ok"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		status.Status = "error"
		status.Checks["report_cache"] = "failed: " + err.Error()
	} else {
		status.Checks["report_cache"] = "ok"
	}

	if status.Status == "error" {
		response.Error(w, http.StatusServiceUnavailable, "Service not ready")
		return
	}

	response.Success(w, status)
}
