package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint. It also reports the most
// recent background-sync failure so clients can surface divergence.
type HealthHandler struct {
	Sync interface{ SyncStatus() error }
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	if h.Sync != nil {
		if err := h.Sync.SyncStatus(); err != nil {
			res["last_sync_error"] = err.Error()
		}
	}
	writeJSON(w, r, http.StatusOK, res)
}
