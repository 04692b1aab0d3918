package errors

import "net/http"

// Remote is the uniform error shape sent over the messaging boundary.
type Remote struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Translate maps any error to its remote representation. Typed errors keep
// their own message; anything else is treated as an unexpected internal fault
// and sanitized. The caller is expected to log the original before replying.
func Translate(err error) Remote {
	if ve, ok := IsValidationError(err); ok {
		return Remote{Status: http.StatusBadRequest, Message: ve.Message}
	}
	if nfe, ok := IsNotFoundError(err); ok {
		return Remote{Status: http.StatusNotFound, Message: nfe.Message}
	}
	if te, ok := IsTransitionError(err); ok {
		return Remote{Status: http.StatusUnprocessableEntity, Message: te.Message}
	}
	if ue, ok := IsUnavailableError(err); ok {
		return Remote{Status: http.StatusServiceUnavailable, Message: ue.Message}
	}
	return Remote{Status: http.StatusInternalServerError, Message: "internal server error"}
}
