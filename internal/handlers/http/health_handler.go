// internal/handlers/http/health_handler.go
// Handler sederhana untuk health/ready check

package http

import (
	"encoding/json"
	"net/http"

	"well-dashboard/internal/config"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
		"build":  config.BuildVersion,
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewReadyHandler siap jika daftar sumur sudah dimuat (wells >= 0 selalu benar
// setelah boot; jumlahnya dilaporkan untuk diagnosa).
func NewReadyHandler(wells func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ready",
			"wells":  wells(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
