package tti

// FilterForRequiredWindow keeps only periods long enough to hold a
// window of the given length and ending strictly after fmp+window. A
// period may be exactly window long (the length test is inclusive) but
// must end after the paint cutoff (that test is exclusive); both bounds
// are load-bearing and must not be unified.
func FilterForRequiredWindow(periods []TimePeriod, fmp, window float64) []TimePeriod {
	filtered := make([]TimePeriod, 0, len(periods))
	for _, p := range periods {
		if p.End-p.Start >= window && p.End > fmp+window {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
