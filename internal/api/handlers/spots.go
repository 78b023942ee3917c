package handlers

import (
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/store"
	"net/http"
	"strconv"
	"strings"
)

// SpotHandler exposes spot editing on top of the itinerary store. Handlers
// respond as soon as local state is applied; remote sync runs in the
// background.
type SpotHandler struct {
	Store *store.ItineraryStore
}

func (h *SpotHandler) Add(w http.ResponseWriter, r *http.Request) {
	dayID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "day id must be an integer")
		return
	}

	var req dto.SpotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	tripID, dayIndex, err := h.Store.LocateDay(dayID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	spot, err := h.Store.AddSpot(r.Context(), tripID, dayIndex, req.ToDomain())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewSpotResponse(spot))
}

func (h *SpotHandler) Update(w http.ResponseWriter, r *http.Request) {
	spotID := r.PathValue("id")

	var req dto.SpotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tripID, dayIndex, err := h.Store.LocateSpot(spotID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	spot := req.ToDomain()
	spot.ID = spotID
	if err := h.Store.UpdateSpot(r.Context(), tripID, dayIndex, spot); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSpotResponse(spot))
}

func (h *SpotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	spotID := r.PathValue("id")

	tripID, dayIndex, err := h.Store.LocateSpot(spotID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if err := h.Store.DeleteSpot(r.Context(), tripID, dayIndex, spotID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder moves a spot inside its day, or into another day when to_day_id is
// set.
func (h *SpotHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ToDayID != nil && *req.ToDayID != req.DayID {
		h.moveAcrossDays(w, r, req)
		return
	}

	tripID, dayIndex, err := h.Store.LocateDay(req.DayID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if err := h.Store.ReorderWithinDay(r.Context(), tripID, dayIndex, req.From, req.To); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SpotHandler) moveAcrossDays(w http.ResponseWriter, r *http.Request, req dto.ReorderRequest) {
	if req.SpotID == "" {
		writeError(w, r, http.StatusBadRequest, "spot_id is required to move across days")
		return
	}

	tripID, fromDayIndex, err := h.Store.LocateSpot(req.SpotID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	toTripID, toDayIndex, err := h.Store.LocateDay(*req.ToDayID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if toTripID != tripID {
		writeError(w, r, http.StatusBadRequest, "cannot move a spot between trips")
		return
	}

	if err := h.Store.MoveAcrossDays(r.Context(), tripID, fromDayIndex, req.SpotID, toDayIndex); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Transport changes the leg mode for one spot and kicks off the background
// travel re-estimate.
func (h *SpotHandler) Transport(w http.ResponseWriter, r *http.Request) {
	spotID := r.PathValue("id")

	var req dto.TransportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Mode) == "" {
		writeError(w, r, http.StatusBadRequest, "mode is required")
		return
	}

	tripID, dayIndex, err := h.Store.LocateSpot(spotID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	mode := domain.ParseTransportMode(req.Mode)
	if err := h.Store.UpdateSpotTransport(r.Context(), tripID, dayIndex, spotID, mode); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "mode": string(mode)})
}
