package tti

// LongTask is a main-thread task lasting at least MinLongTaskDuration,
// in milliseconds relative to navigation start. Shorter tasks are not
// considered disruptive and are excluded by the trace collaborator.
// Lists of long tasks are ordered ascending by Start; tasks do not
// overlap, though adjacency is possible.
type LongTask struct {
	Start float64
	End   float64
}

// Request is one network request interval in milliseconds relative to
// navigation start. A request with Finished false has no recorded end
// and is treated as in-flight until the end of the trace.
type Request struct {
	Start    float64
	End      float64
	Finished bool
}

// Timestamps are the named instants of one page load, on the trace
// clock (microseconds). A zero FirstMeaningfulPaint or
// DOMContentLoaded means the instant was absent from the trace.
type Timestamps struct {
	NavigationStart      float64
	FirstMeaningfulPaint float64
	DOMContentLoaded     float64
	TraceEnd             float64
}

// Input is the immutable snapshot one metric computation runs over.
// Each computation is independent and side-effect free; nothing in the
// snapshot is mutated.
type Input struct {
	Timestamps Timestamps
	LongTasks  []LongTask
	Requests   []Request
}

// QuietPeriodInfo describes the matched mutually-quiet window plus both
// filtered candidate lists. The lists are returned for diagnostics so a
// caller can explain why the metric landed where it did.
type QuietPeriodInfo struct {
	CPUQuietPeriod      TimePeriod
	NetworkQuietPeriod  TimePeriod
	CPUQuietPeriods     []TimePeriod
	NetworkQuietPeriods []TimePeriod
}

// Metric is the computed Consistently Interactive value. Timing is
// milliseconds since navigation start; Timestamp is the same instant in
// absolute milliseconds on the input clock's origin.
type Metric struct {
	Timing    float64
	Timestamp float64
}
