package util

import (
	"encoding/json"
	"net/http"

	"realgo/internal/shared/apperrors"
)

func WriteJSON(w http.ResponseWriter, statusCode int, object interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(object)
}

// WriteError maps a taxonomy error to its HTTP status and writes it as JSON.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperrors.Status(err), map[string]string{"error": err.Error()})
}

func WriteErrorMessage(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}
