package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/types"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/services"
)

type EdgesHandler struct {
	query  services.QueryService
	mutate services.MutationService
}

func NewEdgesHandler(query services.QueryService, mutate services.MutationService) *EdgesHandler {
	return &EdgesHandler{query: query, mutate: mutate}
}

func (h *EdgesHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.query.GetEdge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch edge")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EdgesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EdgeInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to create edge")
		return
	}
	e, err := h.mutate.CreateEdge(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to create edge")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EdgesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.EdgePatch
	if err := types.DecodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err, "Failed to update edge")
		return
	}
	e, err := h.mutate.UpdateEdge(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err, "Failed to update edge")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EdgesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.mutate.DeleteEdge(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Failed to delete edge")
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Edge deleted successfully"})
}
