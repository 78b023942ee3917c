package handlers

import (
	"errors"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"net/http"
	"time"
)

// ImportHandler drives the content-ingestion poll loop for a submitted task
// and returns the extracted content with its suggested places.
type ImportHandler struct {
	Client       ports.IngestClient
	PollInterval time.Duration
	MaxRetries   int
}

func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	if taskID == "" {
		writeError(w, r, http.StatusBadRequest, "task id is required")
		return
	}

	payload, err := services.PollTask(r.Context(), h.Client, taskID, h.PollInterval, h.MaxRetries)
	if err != nil {
		if errors.Is(err, services.ErrPollTimeout) {
			writeError(w, r, http.StatusGatewayTimeout, "import did not complete in time")
			return
		}
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewImportResponse(payload))
}
