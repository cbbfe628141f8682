package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/despachos/equipcheck/internal/auth"
	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/repository"
	"github.com/despachos/equipcheck/internal/service"
	"github.com/despachos/equipcheck/internal/signature"
)

type SubmissionHandler struct {
	subSvc    *service.SubmissionService
	apprSvc   *service.ApprovalService
	photos    *repository.PhotoRepo
	users     *repository.UserRepo
	maxUpload int64
}

func NewSubmissionHandler(subSvc *service.SubmissionService, apprSvc *service.ApprovalService, photos *repository.PhotoRepo, users *repository.UserRepo, maxUploadMB int64) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc, apprSvc: apprSvc, photos: photos, users: users, maxUpload: maxUploadMB << 20}
}

// photoFieldPrefix keys multipart photo files to checklist items:
// a file uploaded as "photo_I3" is evidence for item I3.
const photoFieldPrefix = "photo_"

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())

	var in service.CreateSubmissionInput

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		// Not multipart — accept a plain JSON body. Fault items cannot
		// carry photos this way and will be rejected by the service.
		if err := readJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		dataStr := r.FormValue("data")
		if dataStr == "" {
			writeError(w, http.StatusBadRequest, "data field is required")
			return
		}
		if err := json.Unmarshal([]byte(dataStr), &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid data JSON")
			return
		}

		if r.MultipartForm != nil && r.MultipartForm.File != nil {
			for field, fileHeaders := range r.MultipartForm.File {
				if !strings.HasPrefix(field, photoFieldPrefix) {
					continue
				}
				itemID := strings.TrimPrefix(field, photoFieldPrefix)
				for _, fh := range fileHeaders {
					f, err := fh.Open()
					if err != nil {
						continue
					}
					content, err := io.ReadAll(f)
					f.Close()
					if err != nil {
						continue
					}
					in.Photos = append(in.Photos, service.PhotoUpload{
						ItemID:      itemID,
						Filename:    fh.Filename,
						ContentType: fh.Header.Get("Content-Type"),
						Content:     content,
					})
				}
			}
		}
	}

	sub, err := h.subSvc.Create(r.Context(), claims.Username, h.fullName(r), in)
	if err != nil {
		writeError(w, createErrStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// createErrStatus separates bad input from storage failures.
func createErrStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownEquipment),
		errors.Is(err, service.ErrBadCondition),
		errors.Is(err, service.ErrBadDate),
		errors.Is(err, service.ErrItemsMismatch),
		errors.Is(err, service.ErrPhotoRequired),
		errors.Is(err, signature.ErrEmpty),
		errors.Is(err, signature.ErrNotImage),
		errors.Is(err, signature.ErrBlank),
		errors.Is(err, signature.ErrTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fullName resolves the display name for the authenticated user; the JWT
// only carries the username.
func (h *SubmissionHandler) fullName(r *http.Request) string {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		return ""
	}
	user, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil || user == nil || user.FullName == "" {
		return claims.Username
	}
	return user.FullName
}

func (h *SubmissionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	subs, err := h.subSvc.ListMine(r.Context(), claims.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stripSignatures(subs))
}

func (h *SubmissionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subSvc.ListPending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stripSignatures(subs))
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	equipment := r.URL.Query().Get("equipment")
	subs, err := h.subSvc.ListAll(r.Context(), status, equipment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stripSignatures(subs))
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.subSvc.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !h.mayAccess(r, detail.Submission) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *SubmissionHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.subSvc.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !h.mayAccess(r, detail.Submission) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	data, err := h.apprSvc.PDF(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotApproved):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNoPDF):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="checklist_%s.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (h *SubmissionHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	detail, err := h.subSvc.Detail(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	if !h.mayAccess(r, detail.Submission) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	photo, err := h.photos.FindByID(r.Context(), photoID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if photo == nil || photo.SubmissionID != id {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	ct := photo.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, photo.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Content)))
	w.Write(photo.Content)
}

// mayAccess allows supervisors everywhere and operators on their own
// submissions only.
func (h *SubmissionHandler) mayAccess(r *http.Request, sub *models.Submission) bool {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		return false
	}
	if claims.Role == models.RoleSupervisor {
		return true
	}
	return sub.OperatorUsername == claims.Username
}

func stripSignatures(subs []models.Submission) []models.Submission {
	for i := range subs {
		subs[i].OperatorSignature = nil
	}
	return subs
}
