// Package httputil centralizes JSON rendering and domain error translation so
// every handler returns the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"geocatalog/pkg/domainerrors"
)

// WriteJSON renders v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP response. The body always
// carries the error code; the caller-facing message is included for every
// category except internal failures, which must not leak details.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	var de *domainerrors.Error
	if code != domainerrors.CodeInternal && errors.As(err, &de) {
		body["error_description"] = de.Message
	}
	WriteJSON(w, statusFor(code), body)
}

// statusFor maps error codes to HTTP statuses. Validation, reference,
// conflict, and upstream failures are all caller-resolvable 400s; absent
// targets are 404s.
func statusFor(code domainerrors.Code) int {
	switch code {
	case domainerrors.CodeValidation, domainerrors.CodeReference,
		domainerrors.CodeConflict, domainerrors.CodeUpstream:
		return http.StatusBadRequest
	case domainerrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
