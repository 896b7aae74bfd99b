package tti

// TimePeriod is one contiguous interval on the page-load timeline,
// expressed in milliseconds relative to navigation start. End is always
// greater than or equal to Start. Periods are values; once built they
// are never mutated.
type TimePeriod struct {
	Start float64
	End   float64
}

// Duration returns the length of the period in milliseconds.
func (p TimePeriod) Duration() float64 {
	return p.End - p.Start
}
