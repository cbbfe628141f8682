package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/despachos/equipcheck/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Weekly streams the XLSX export. start/end are ISO dates; both empty
// selects the Monday–Saturday window of the current week.
func (h *ExportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
		return
	}

	data, err := h.svc.Weekly(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, service.ErrBadDateRange) || errors.Is(err, service.ErrHalfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := fmt.Sprintf("report_%s.xlsx", time.Now().Format("2006-01-02"))
	if !start.IsZero() && !end.IsZero() {
		name = fmt.Sprintf("report_%s_to_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
