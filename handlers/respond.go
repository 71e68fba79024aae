// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chasingcats/api/challenge"
	"github.com/chasingcats/api/middleware"
)

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Conflict (409) and invalid state (422) stay distinct so clients can render
// "already voted/entered" versus "this isn't open right now".
func writeEngineError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, challenge.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, challenge.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, challenge.ErrInvalidState):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, challenge.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	default:
		if ve, ok := challenge.AsValidation(err); ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
