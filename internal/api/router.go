package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/handlers"
	mw "github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/middleware"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/observability"
)

type Dependencies struct {
	GraphHandler  *handlers.GraphHandler
	NodesHandler  *handlers.NodesHandler
	EdgesHandler  *handlers.EdgesHandler
	HealthHandler *handlers.HealthHandler

	// Metrics may be nil, which disables /metrics.
	Metrics        *observability.Collector
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that sets those headers.
	TrustProxy bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	if dep.TrustProxy {
		r.Use(chimid.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.Metrics(dep.Metrics))
	r.Use(mw.CORS(dep.AllowedOrigins))
	r.Use(chimid.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, "Route not found", "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, "Method not allowed", "method_not_allowed")
	})

	// Health endpoints
	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)
	if dep.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", dep.Metrics.Handler())
	}

	r.Group(func(g chi.Router) {
		g.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))

		g.Get("/graph", dep.GraphHandler.Get)
		g.Get("/search", dep.GraphHandler.Search)

		g.Route("/nodes", func(nr chi.Router) {
			nr.Post("/", dep.NodesHandler.Create)
			nr.Get("/{id}", dep.NodesHandler.Get)
			nr.Put("/{id}", dep.NodesHandler.Update)
			nr.Delete("/{id}", dep.NodesHandler.Delete)
		})

		g.Route("/edges", func(er chi.Router) {
			er.Post("/", dep.EdgesHandler.Create)
			er.Get("/{id}", dep.EdgesHandler.Get)
			er.Put("/{id}", dep.EdgesHandler.Update)
			er.Delete("/{id}", dep.EdgesHandler.Delete)
		})
	})

	return r
}

func writeStatus(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: code})
}
