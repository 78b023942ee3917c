package domain

// Outcome of evaluating a spot's opening periods at a point in time.
// Text is a short human-readable status such as "Open · 09:00 - 21:00".
type BusinessStatus struct {
	IsOpen bool
	Text   string
}
