package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// errorBody is the canonical error payload for every 4xx/5xx response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Warn("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, map[string]any{
		"error": errorBody{Code: code, Message: message},
	})
}

func respondValidationError(w http.ResponseWriter, r *http.Request, details any) {
	respondJSON(w, r, http.StatusBadRequest, map[string]any{
		"error": errorBody{
			Code:    "validation_failed",
			Message: "request validation failed",
			Details: details,
		},
	})
}

// decodeBody parses a JSON request body into dst, rejecting unknown junk
// softly (extra fields are ignored, malformed JSON is not).
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, "bad_request", "malformed request body")
		return false
	}
	return true
}
