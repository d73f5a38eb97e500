package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the use-case error taxonomy to HTTP statuses. Anything
// that isn't a domain error is an internal failure.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch usecase.DomainErrorCode(err) {
	case usecase.CodeValidation:
		status = http.StatusBadRequest
	case usecase.CodeRateLimited:
		status = http.StatusTooManyRequests
	case usecase.CodeAuth:
		status = http.StatusForbidden
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeUpload:
		status = http.StatusInternalServerError
	}

	resp := errorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError && !usecase.IsDomainError(err) {
		resp.Error = "Internal server error"
		resp.Details = err.Error()
	}

	respondJSON(w, status, resp)
}

// getClientIP prefers the proxy-set headers over the socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
