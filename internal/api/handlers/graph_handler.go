package handlers

import (
	"net/http"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/services"
)

// GraphHandler serves whole-graph reads and node search.
type GraphHandler struct {
	query services.QueryService
}

func NewGraphHandler(query services.QueryService) *GraphHandler {
	return &GraphHandler{query: query}
}

func (h *GraphHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.query.GetGraph(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch graph data")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GraphHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := types.SearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err, "Failed to search nodes")
		return
	}
	nodes, err := h.query.SearchNodes(r.Context(), q)
	if err != nil {
		writeError(w, r, err, "Failed to search nodes")
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}
