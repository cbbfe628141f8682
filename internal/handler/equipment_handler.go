package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/despachos/equipcheck/internal/checklist"
)

// EquipmentHandler exposes the checklist definitions so clients can
// render the form for each equipment unit.
type EquipmentHandler struct {
	defs *checklist.Definitions
}

func NewEquipmentHandler(defs *checklist.Definitions) *EquipmentHandler {
	return &EquipmentHandler{defs: defs}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"equipment": h.defs.Names()})
}

func (h *EquipmentHandler) Items(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	items := h.defs.ItemsFor(name)
	if items == nil {
		writeError(w, http.StatusNotFound, "unknown equipment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"equipment": name, "items": items})
}
