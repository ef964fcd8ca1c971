package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing tournament", services.ErrTournamentNotFound, http.StatusNotFound},
		{"missing match", services.ErrMatchNotFound, http.StatusNotFound},
		{"schedule already generated", services.ErrMatchesAlreadyExist, http.StatusConflict},
		{"duplicate enrollment", services.ErrFighterAlreadyEnrolled, http.StatusConflict},
		{"result entered twice", brackets.ErrMatchAlreadyDecided, http.StatusConflict},
		{"winner outside match", brackets.ErrWinnerNotParticipant, http.StatusBadRequest},
		{"mismatched weight categories", services.ErrMatchWeightCategoryMismatch, http.StatusBadRequest},
		{"logo storage not configured", services.ErrLogoStorageUnavailable, http.StatusServiceUnavailable},
		{"unexpected failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			mapServiceErrorToHTTP(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", nil)
	r.Body = http.NoBody

	var dst struct{}
	err := readJSON(w, r, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body must not be empty")
}
