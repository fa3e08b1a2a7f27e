package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

// Pinger is the part of the store the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, timeout: 2 * time.Second}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// Readiness reports 503 while the store cannot be reached.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeUnavailable, "store unavailable"), "Store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ready"})
}
