package tti

import "sort"

type requestBoundary struct {
	time    float64
	isStart bool
}

// NetworkQuietPeriods sweeps the request boundaries left to right,
// tracking the in-flight count, and emits the intervals during which at
// most allowed requests were concurrently in flight. A quiet period
// closes the moment the count crosses above allowed and reopens when it
// drops back down; a period still open at traceEnd closes there.
// Requests without a recorded end stay in flight until traceEnd.
func NetworkQuietPeriods(requests []Request, allowed int, traceEnd float64) []TimePeriod {
	boundaries := make([]requestBoundary, 0, len(requests)*2)
	for _, r := range requests {
		boundaries = append(boundaries, requestBoundary{time: r.Start, isStart: true})
		if r.Finished {
			boundaries = append(boundaries, requestBoundary{time: r.End, isStart: false})
		}
	}
	sort.Slice(boundaries, func(i, j int) bool {
		if boundaries[i].time != boundaries[j].time {
			return boundaries[i].time < boundaries[j].time
		}
		// intervals are half-open [start, end): a request ending at T
		// is already gone when another starts at T, so ends must be
		// swept first
		return !boundaries[i].isStart && boundaries[j].isStart
	})

	var periods []TimePeriod
	inFlight := 0
	quietStart := 0.0
	quietOpen := true

	for _, b := range boundaries {
		// nothing at or past traceEnd can change the in-flight count
		// within the trace
		if b.time >= traceEnd {
			break
		}
		if b.isStart {
			inFlight++
			if inFlight == allowed+1 {
				periods = append(periods, TimePeriod{Start: quietStart, End: b.time})
				quietOpen = false
			}
		} else {
			inFlight--
			if inFlight == allowed {
				quietStart = b.time
				quietOpen = true
			}
		}
	}

	if quietOpen {
		periods = append(periods, TimePeriod{Start: quietStart, End: traceEnd})
	}

	return periods
}
