// Package tti computes the Consistently Interactive page-load metric:
// the earliest moment after first meaningful paint at which the page
// sustains a window of at least five seconds that is simultaneously
// quiet on the main thread and on the network.
//
// The computation is pure and synchronous. It consumes one immutable
// snapshot of trace data (named timestamps, long tasks, network request
// intervals) and either produces an exact Metric or fails with one of
// the closed error kinds in this package. There are no partial results.
package tti

import "math"

const (
	// RequiredQuietWindow is the minimum mutually-quiet window, in
	// milliseconds, needed for the page to count as settled.
	RequiredQuietWindow = 5000.0

	// AllowedConcurrentRequests is the number of in-flight requests the
	// network may carry and still count as quiet.
	AllowedConcurrentRequests = 2

	// MinLongTaskDuration is the shortest main-thread task treated as
	// disruptive, in milliseconds.
	MinLongTaskDuration = 50.0

	microsPerMilli = 1000.0
)

// Compute derives the Consistently Interactive metric from one trace
// snapshot. Timestamps arrive on the trace clock (microseconds); all
// internal comparisons happen in navigation-relative milliseconds. The
// returned QuietPeriodInfo explains the match and is valid only when
// err is nil.
func Compute(in Input) (Metric, *QuietPeriodInfo, error) {
	ts := in.Timestamps
	if ts.FirstMeaningfulPaint == 0 {
		return Metric{}, nil, ErrMissingFirstMeaningfulPaint
	}
	if ts.DOMContentLoaded == 0 {
		return Metric{}, nil, ErrMissingDomContentLoaded
	}

	fmp := (ts.FirstMeaningfulPaint - ts.NavigationStart) / microsPerMilli
	dcl := (ts.DOMContentLoaded - ts.NavigationStart) / microsPerMilli
	traceEnd := (ts.TraceEnd - ts.NavigationStart) / microsPerMilli

	info, err := FindOverlappingQuietPeriods(in.LongTasks, in.Requests, fmp, traceEnd)
	if err != nil {
		return Metric{}, nil, err
	}

	// the metric can never land before the page painted or parsed,
	// whichever came last
	timing := math.Max(info.CPUQuietPeriod.Start, math.Max(fmp, dcl))

	return Metric{
		Timing:    timing,
		Timestamp: timing + ts.NavigationStart/microsPerMilli,
	}, info, nil
}
