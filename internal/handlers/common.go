package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MaxRequestBytes bounds the size of a render request body.
const MaxRequestBytes = 10 << 20

type Handler struct {
	maxRequestBytes int64
}

func New() *Handler {
	return &Handler{
		maxRequestBytes: MaxRequestBytes,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	h.writeJSONStatus(w, data, http.StatusOK)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
