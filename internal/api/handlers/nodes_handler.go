package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/services"
)

type NodesHandler struct {
	query  services.QueryService
	mutate services.MutationService
}

func NewNodesHandler(query services.QueryService, mutate services.MutationService) *NodesHandler {
	return &NodesHandler{query: query, mutate: mutate}
}

func (h *NodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.query.GetNode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch node")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NodeInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to create node")
		return
	}
	n, err := h.mutate.CreateNode(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to create node")
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// Update applies the allow-listed fields of the body; anything else in it
// is dropped by decoding into models.NodePatch.
func (h *NodesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.NodePatch
	if err := types.DecodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err, "Failed to update node")
		return
	}
	n, err := h.mutate.UpdateNode(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err, "Failed to update node")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.mutate.DeleteNode(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Failed to delete node")
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Node and connected edges deleted successfully"})
}
