package handlers

import (
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/store"
	"net/http"
	"strings"
)

// TripHandler exposes trip CRUD on top of the itinerary store.
type TripHandler struct {
	Store *store.ItineraryStore
}

// List returns the local trip snapshot. Pass ?refresh=true to re-fetch from
// the backend first.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := h.Store.FetchTrips(r.Context()); err != nil {
			writeStoreError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.NewListTripsResponse(h.Store.Trips()))
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Destination) == "" {
		writeError(w, r, http.StatusBadRequest, "title or destination is required")
		return
	}

	trip, err := h.Store.CreateTrip(r.Context(), req.Title, req.Destination, req.StartDate, req.EndDate, req.TransportMode)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewTripResponse(trip))
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Store.Trip(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tripID := r.PathValue("id")
	update := ports.TripUpdate{
		Title:         req.Title,
		Destination:   req.Destination,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TransportMode: req.TransportMode,
	}

	if err := h.Store.UpdateTrip(r.Context(), tripID, update); err != nil {
		writeStoreError(w, r, err)
		return
	}

	trip, err := h.Store.Trip(tripID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTrip(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
