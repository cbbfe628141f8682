package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/despachos/equipcheck/internal/auth"
	"github.com/despachos/equipcheck/internal/repository"
	"github.com/despachos/equipcheck/internal/service"
)

type ApprovalHandler struct {
	svc   *service.ApprovalService
	users *repository.UserRepo
}

func NewApprovalHandler(svc *service.ApprovalService, users *repository.UserRepo) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, users: users}
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims := auth.GetUser(r.Context())

	var req service.ApproveInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := claims.Username
	if user, err := h.users.FindByID(r.Context(), claims.UserID); err == nil && user != nil && user.FullName != "" {
		name = user.FullName
	}

	appr, err := h.svc.Approve(r.Context(), id, claims.Username, name, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotPending):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// The response carries the review outcome, not the blobs.
	appr.SupervisorSignature = nil
	writeJSON(w, http.StatusOK, appr)
}
