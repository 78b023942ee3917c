package domain

import "time"

// Represents a planned journey owned by the itinerary store.
// A Trip holds an ordered list of days; day order and spot order within a day
// are significant (position equals visit order).
type Trip struct {
	ID            string
	Title         string
	Destination   string
	StartDate     *time.Time
	EndDate       *time.Time
	CoverImage    string
	TransportMode string
	Days          []Day
}

// A single calendar day inside a trip with its ordered spots.
type Day struct {
	ID       int
	DayOrder int
	Date     *time.Time
	Spots    []Spot
}

// TravelInfo describes the precomputed leg from one spot to the next one in
// the day's order. It is undefined for the last spot of a day.
type TravelInfo struct {
	Mode     TransportMode
	Time     string
	Distance string
}
