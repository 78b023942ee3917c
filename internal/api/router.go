package api

import (
	"itinerary-service/internal/api/handlers"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/store"
	"net/http"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(st *store.ItineraryStore, ingest ports.IngestClient, places ports.PlaceInfoProvider, pollInterval time.Duration, pollRetries int) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Sync: st}
	tripHandler := &handlers.TripHandler{Store: st}
	spotHandler := &handlers.SpotHandler{Store: st}
	dayHandler := &handlers.DayHandler{Store: st}
	placeHandler := &handlers.PlaceHandler{Provider: places}
	importHandler := &handlers.ImportHandler{
		Client:       ingest,
		PollInterval: pollInterval,
		MaxRetries:   pollRetries,
	}

	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("POST /trips", tripHandler.Create)
	mux.HandleFunc("GET /trips/{id}", tripHandler.Get)
	mux.HandleFunc("PUT /trips/{id}", tripHandler.Update)
	mux.HandleFunc("DELETE /trips/{id}", tripHandler.Delete)

	mux.HandleFunc("POST /days/{id}/spots", spotHandler.Add)
	mux.HandleFunc("POST /days/{id}/sort", dayHandler.Sort)
	mux.HandleFunc("POST /days/{id}/restore", dayHandler.Restore)

	mux.HandleFunc("PUT /spots/{id}", spotHandler.Update)
	mux.HandleFunc("DELETE /spots/{id}", spotHandler.Delete)
	mux.HandleFunc("POST /spots/reorder", spotHandler.Reorder)
	mux.HandleFunc("POST /spots/{id}/transport", spotHandler.Transport)

	mux.HandleFunc("GET /places/lookup", placeHandler.Lookup)

	mux.HandleFunc("POST /import/{task_id}", importHandler.Run)

	return loggingMiddleware(mux)
}
