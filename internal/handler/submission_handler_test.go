package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/despachos/equipcheck/internal/service"
	"github.com/despachos/equipcheck/internal/signature"
)

func TestCreateErrStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown equipment", service.ErrUnknownEquipment, http.StatusBadRequest},
		{"bad condition", fmt.Errorf("%w: item I1", service.ErrBadCondition), http.StatusBadRequest},
		{"bad date", service.ErrBadDate, http.StatusBadRequest},
		{"items mismatch", service.ErrItemsMismatch, http.StatusBadRequest},
		{"photo required", service.ErrPhotoRequired, http.StatusBadRequest},
		{"wrapped blank signature", fmt.Errorf("operator signature: %w", signature.ErrBlank), http.StatusBadRequest},
		{"storage failure", errors.New("database is locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := createErrStatus(tc.err); got != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, got, tc.want)
		}
	}
}
