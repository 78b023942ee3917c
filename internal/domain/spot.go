package domain

import "strings"

type SpotCategory string

const (
	CategorySpot          SpotCategory = "spot"
	CategoryFood          SpotCategory = "food"
	CategoryTransport     SpotCategory = "transport"
	CategoryAccommodation SpotCategory = "accommodation"
	CategoryShopping      SpotCategory = "shopping"
	CategoryAttraction    SpotCategory = "attraction"
)

// ParseSpotCategory maps an arbitrary wire value onto a known category,
// defaulting to CategorySpot for unknown input.
func ParseSpotCategory(s string) SpotCategory {
	switch c := SpotCategory(strings.ToLower(s)); c {
	case CategoryFood, CategoryTransport, CategoryAccommodation, CategoryShopping, CategoryAttraction:
		return c
	default:
		return CategorySpot
	}
}

type TransportMode string

const (
	ModeWalk  TransportMode = "walk"
	ModeBus   TransportMode = "bus"
	ModeCar   TransportMode = "car"
	ModeTrain TransportMode = "train"
)

// ParseTransportMode maps an arbitrary wire value onto a known mode,
// defaulting to ModeTrain for unknown input.
func ParseTransportMode(s string) TransportMode {
	switch m := TransportMode(strings.ToLower(s)); m {
	case ModeWalk, ModeBus, ModeCar:
		return m
	default:
		return ModeTrain
	}
}

// One open/close window for a given weekday.
// Day follows the Google Places convention: 0 = Sunday ... 6 = Saturday.
// Open and Close are 4-digit HHMM strings ("0900", "2130"); a window whose
// close time sorts before its open time crosses midnight into the next day.
type OpeningPeriod struct {
	Day   int
	Open  string
	Close string
}

// Optional resolved-place metadata attached to a spot.
type Place struct {
	PlaceID  string
	Name     string
	Address  string
	Category string
	Rating   float64
	Periods  []OpeningPeriod
}

// A single place/activity entry within a day.
type Spot struct {
	ID           string
	DayID        int
	Name         string
	Category     SpotCategory
	StartTime    string
	StayDuration string
	Notes        []string
	ImageURL     string
	Latitude     *float64
	Longitude    *float64
	SortOrder    int

	// Leg to the next spot in the day's order.
	TravelMode     TransportMode
	TravelTime     string
	TravelDistance string

	Place *Place
}

// Coordinate returns the spot's resolved location, or false when the spot has
// no location.
func (s Spot) Coordinate() (Coordinate, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *s.Latitude, Lon: *s.Longitude}, true
}

// OpeningPeriods returns the spot's opening windows, empty when the spot has
// no place metadata.
func (s Spot) OpeningPeriods() []OpeningPeriod {
	if s.Place == nil {
		return nil
	}
	return s.Place.Periods
}
