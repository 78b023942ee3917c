package handlers

import (
	"itinerary-service/internal/ports"
	"net/http"
	"strconv"
)

// PlaceHandler proxies coordinate-to-place lookups through the caching
// resolver.
type PlaceHandler struct {
	Provider ports.PlaceInfoProvider
}

func (h *PlaceHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		writeError(w, r, http.StatusServiceUnavailable, "place lookup is not configured")
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lon must be a number")
		return
	}

	summary, err := h.Provider.Lookup(r.Context(), lat, lon)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"name":      summary.Name,
		"image_url": summary.ImageURL,
	})
}
