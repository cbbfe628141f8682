package handler

import (
	"net/http"

	"gorm.io/gorm"
)

// AdminHandler exposes database maintenance for supervisors: size stats
// and VACUUM, which matters because photo and PDF blobs live in SQLite.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var pageCount, pageSize, freePages int64
	if err := h.db.WithContext(r.Context()).Raw("PRAGMA page_count").Scan(&pageCount).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.db.WithContext(r.Context()).Raw("PRAGMA page_size").Scan(&pageSize).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.db.WithContext(r.Context()).Raw("PRAGMA freelist_count").Scan(&freePages).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sizeBytes": pageCount * pageSize,
		"freeBytes": freePages * pageSize,
	})
}

func (h *AdminHandler) Vacuum(w http.ResponseWriter, r *http.Request) {
	if err := h.db.WithContext(r.Context()).Exec("VACUUM").Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
