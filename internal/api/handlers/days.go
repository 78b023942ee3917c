package handlers

import (
	"itinerary-service/internal/store"
	"net/http"
	"strconv"
)

// DayHandler exposes per-day route optimization and restore.
type DayHandler struct {
	Store *store.ItineraryStore
}

func (h *DayHandler) locate(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	dayID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "day id must be an integer")
		return "", 0, false
	}

	tripID, dayIndex, err := h.Store.LocateDay(dayID)
	if err != nil {
		writeStoreError(w, r, err)
		return "", 0, false
	}
	return tripID, dayIndex, true
}

func (h *DayHandler) Sort(w http.ResponseWriter, r *http.Request) {
	tripID, dayIndex, ok := h.locate(w, r)
	if !ok {
		return
	}

	if err := h.Store.SmartSort(r.Context(), tripID, dayIndex); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"optimized": h.Store.IsOptimized(tripID, dayIndex),
	})
}

func (h *DayHandler) Restore(w http.ResponseWriter, r *http.Request) {
	tripID, dayIndex, ok := h.locate(w, r)
	if !ok {
		return
	}

	if err := h.Store.RestoreOrder(r.Context(), tripID, dayIndex); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"optimized": false,
	})
}
