package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/middleware"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err with the status its code maps to. Server-side
// failures are logged with their cause and answered with fallback.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := types.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Named(logger.HTTP).Error(fallback,
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.FromAppError(err, fallback))
}
