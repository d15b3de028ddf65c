package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbastos/worklane/internal/http/httperr"
	"github.com/lbastos/worklane/internal/workflow"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "NotFound",
			err:        workflow.NotFound("milestone xyz not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   "milestone xyz not found",
		},
		{
			name:       "Validation",
			err:        workflow.Validation("title is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "title is required",
		},
		{
			name:       "Precondition",
			err:        workflow.Precondition("phase has incomplete deliverables"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "phase has incomplete deliverables",
		},
		{
			name:       "State",
			err:        workflow.State("delivery is approved"),
			wantStatus: http.StatusConflict,
			wantBody:   "delivery is approved",
		},
		{
			name:       "WrappedDomainError",
			err:        fmt.Errorf("saving: %w", workflow.State("milestone is paid")),
			wantStatus: http.StatusConflict,
			wantBody:   "milestone is paid",
		},
		{
			name:       "OpaqueError",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httperr.Write(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
