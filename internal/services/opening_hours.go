package services

import (
	"fmt"
	"itinerary-service/internal/domain"
	"strconv"
	"time"
)

// EvaluateBusinessStatus decides whether a place is open at the given moment.
//
// Weekday indexing follows the wire format of the opening periods
// (0 = Sunday ... 6 = Saturday). Times compare as HHMM integers, so 14:30
// becomes 1430. A window whose close sorts before its open crosses midnight
// and is filed under the day it *starts* on, which is why the previous day's
// periods are inspected before anything else: at Tuesday 01:00 a bar that
// opened Monday 22:00-02:00 is still open, even if Tuesday itself has no
// periods at all.
//
// The function is pure; the optimizer calls it once per candidate spot on
// every greedy step.
func EvaluateBusinessStatus(periods []domain.OpeningPeriod, at time.Time) domain.BusinessStatus {
	weekday := int(at.Weekday())
	now := at.Hour()*100 + at.Minute()

	// Previous-day spillover.
	prevDay := (weekday - 1 + 7) % 7
	for _, p := range periods {
		if p.Day != prevDay {
			continue
		}
		open, close, ok := parsePeriodTimes(p)
		if !ok {
			continue
		}
		if close < open && now < close {
			return domain.BusinessStatus{
				IsOpen: true,
				Text:   fmt.Sprintf("Open until %s", formatHHMM(p.Close)),
			}
		}
	}

	today := make([]domain.OpeningPeriod, 0, len(periods))
	for _, p := range periods {
		if p.Day == weekday {
			today = append(today, p)
		}
	}
	if len(today) == 0 {
		return domain.BusinessStatus{IsOpen: false, Text: "Closed today"}
	}

	for _, p := range today {
		open, close, ok := parsePeriodTimes(p)
		if !ok {
			continue
		}
		switch {
		case close > open:
			if now >= open && now < close {
				return domain.BusinessStatus{
					IsOpen: true,
					Text:   fmt.Sprintf("Open · %s - %s", formatHHMM(p.Open), formatHHMM(p.Close)),
				}
			}
		case close < open:
			// Overnight window starting today.
			if now >= open {
				return domain.BusinessStatus{
					IsOpen: true,
					Text:   fmt.Sprintf("Open · %s - %s (next day)", formatHHMM(p.Open), formatHHMM(p.Close)),
				}
			}
		default:
			// close == open is degenerate, never a 24h window.
		}
	}

	first := today[0]
	return domain.BusinessStatus{
		IsOpen: false,
		Text:   fmt.Sprintf("Closed · %s - %s", formatHHMM(first.Open), formatHHMM(first.Close)),
	}
}

// parsePeriodTimes converts the HHMM strings of a period to comparable ints.
// Malformed times are skipped rather than treated as fatal.
func parsePeriodTimes(p domain.OpeningPeriod) (open, close int, ok bool) {
	open, err := strconv.Atoi(p.Open)
	if err != nil {
		return 0, 0, false
	}
	close, err = strconv.Atoi(p.Close)
	if err != nil {
		return 0, 0, false
	}
	return open, close, true
}

// formatHHMM renders "2130" as "21:30"; anything not 4 digits passes through.
func formatHHMM(hhmm string) string {
	if len(hhmm) != 4 {
		return hhmm
	}
	return hhmm[:2] + ":" + hhmm[2:]
}
