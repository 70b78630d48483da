package httpx

import (
	"errors"
	"net/http"

	"github.com/vantage-intel/vantage/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Validation and transition rejections are surfaced verbatim; anything
// unrecognised collapses to a bare 500 so internals do not leak.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsValidation(err):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case shared.IsInvalidTransition(err):
		Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
