// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handler groups for the formpress
// JSON API: form CRUD and the per-form styling endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"formpress/internal/styling"
)

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError writes the JSON error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeSuccess writes the JSON success envelope.
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeStylingError maps styling service errors to HTTP responses.
// Validation failures keep their message; anything else is a store or
// generator failure and degrades to a generic 500 so no partial state
// leaks to the caller.
func writeStylingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, styling.ErrFormNotFound):
		writeError(w, http.StatusNotFound, "form not found")
	case errors.Is(err, styling.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, "invalid styling payload")
	default:
		slog.Error("styling operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
