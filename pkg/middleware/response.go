package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeDetail writes the {"detail": message} error body used across the API.
func writeDetail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
