// Package httperr maps workflow errors onto HTTP responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lbastos/worklane/internal/workflow"
)

// Write sends the appropriate status code and message for err.
//
// not_found -> 404, validation -> 400, precondition -> 422, state -> 409.
// Anything else is an internal error: logged, never echoed to the client.
func Write(w http.ResponseWriter, err error) {
	var werr *workflow.Error
	if errors.As(err, &werr) {
		http.Error(w, werr.Message, status(werr.Kind))
		return
	}

	slog.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func status(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindValidation:
		return http.StatusBadRequest
	case workflow.KindPrecondition:
		return http.StatusUnprocessableEntity
	case workflow.KindState:
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
