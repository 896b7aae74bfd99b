// Package tracegen builds synthetic Chrome traces and HAR recordings
// with known timing layouts, for tests and examples. Generation is
// seeded so fixtures are reproducible.
package tracegen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pb33f/harhar"

	"github.com/isaacglide/lighthouse/trace"
	"github.com/isaacglide/lighthouse/tti"
)

const (
	defaultNavigationStart = 225414000000.0 // micros, arbitrary trace-clock origin
	defaultTraceDuration   = 20000.0        // ms
	mainPID                = 4371
	mainTID                = 1
)

// TraceOptions shapes one generated trace. Offsets are milliseconds
// after navigation start; a zero paint/parse offset omits that event.
type TraceOptions struct {
	Seed          int64
	TraceDuration float64
	FMPOffset     float64
	DCLOffset     float64

	// LongTasks are emitted verbatim as top-level main-thread tasks.
	LongTasks []tti.LongTask

	// FillerEvents adds this many short, harmless main-thread tasks
	// (under the long-task cutoff) scattered through the trace.
	FillerEvents int
}

// TraceResult holds the generated events plus the timestamps they
// encode, so tests can assert extraction round-trips.
type TraceResult struct {
	Trace      *trace.Trace
	Timestamps tti.Timestamps
}

// GenerateTrace builds a synthetic trace from the given layout.
func GenerateTrace(opts TraceOptions) *TraceResult {
	rng := rand.New(rand.NewSource(opts.Seed))
	if opts.TraceDuration == 0 {
		opts.TraceDuration = defaultTraceDuration
	}
	nav := defaultNavigationStart

	events := []trace.Event{{
		Name: "navigationStart",
		Cat:  "blink.user_timing",
		Ph:   "R",
		PID:  mainPID,
		TID:  mainTID,
		Ts:   nav,
	}}

	ts := tti.Timestamps{
		NavigationStart: nav,
		TraceEnd:        nav + opts.TraceDuration*1000,
	}

	if opts.FMPOffset > 0 {
		ts.FirstMeaningfulPaint = nav + opts.FMPOffset*1000
		events = append(events, trace.Event{
			Name: "firstMeaningfulPaint",
			Cat:  "loading,rail,devtools.timeline,blink.user_timing",
			Ph:   "R",
			PID:  mainPID,
			TID:  mainTID,
			Ts:   ts.FirstMeaningfulPaint,
		})
	}

	if opts.DCLOffset > 0 {
		ts.DOMContentLoaded = nav + opts.DCLOffset*1000
		events = append(events, trace.Event{
			Name: "domContentLoadedEventEnd",
			Cat:  "blink.user_timing,rail",
			Ph:   "R",
			PID:  mainPID,
			TID:  mainTID,
			Ts:   ts.DOMContentLoaded,
		})
	}

	for _, task := range opts.LongTasks {
		events = append(events, trace.Event{
			Name: "RunTask",
			Cat:  "toplevel",
			Ph:   "X",
			PID:  mainPID,
			TID:  mainTID,
			Ts:   nav + task.Start*1000,
			Dur:  (task.End - task.Start) * 1000,
		})
	}

	for i := 0; i < opts.FillerEvents; i++ {
		// keep filler inside the trace even with its duration added
		offset := rng.Float64() * (opts.TraceDuration - tti.MinLongTaskDuration)
		events = append(events, trace.Event{
			Name: "RunTask",
			Cat:  "toplevel",
			Ph:   "X",
			PID:  mainPID,
			TID:  mainTID,
			Ts:   nav + offset*1000,
			// always below the long-task cutoff
			Dur: rng.Float64() * (tti.MinLongTaskDuration - 1) * 1000,
		})
	}

	// pin the trace end with a marker event
	events = append(events, trace.Event{
		Name: "tracingStopped",
		Cat:  "disabled-by-default-devtools.timeline",
		Ph:   "I",
		PID:  mainPID,
		TID:  mainTID,
		Ts:   ts.TraceEnd,
	})

	return &TraceResult{Trace: &trace.Trace{Events: events}, Timestamps: ts}
}

// HAROptions shapes one generated HAR recording. Request intervals are
// milliseconds after the page origin; an interval with Finished false
// becomes an entry with the HAR "unknown duration" marker.
type HAROptions struct {
	Seed          int64
	Origin        time.Time
	Requests      []tti.Request
	OnContentLoad float64
}

// GenerateHAR builds a HAR document whose entries reproduce the given
// request intervals exactly.
func GenerateHAR(opts HAROptions) *harhar.HAR {
	rng := rand.New(rand.NewSource(opts.Seed))
	origin := opts.Origin
	if origin.IsZero() {
		origin = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	har := &harhar.HAR{
		Log: harhar.Log{
			Version: "1.2",
			Creator: harhar.Creator{Name: "tracegen", Version: "1.0"},
			Pages: []harhar.Page{{
				Start:       origin.Format(time.RFC3339),
				ID:          "page_1",
				Title:       "https://example.com/",
				PageTimings: harhar.PageTiming{OnContentLoad: opts.OnContentLoad},
			}},
		},
	}

	for i, r := range opts.Requests {
		entry := harhar.Entry{
			PageRef: "page_1",
			Start:   origin.Add(time.Duration(r.Start * float64(time.Millisecond))).Format(time.RFC3339Nano),
			Time:    -1,
			Request: harhar.Request{
				Method:      "GET",
				URL:         fmt.Sprintf("https://example.com/asset-%d.js", i),
				HTTPVersion: "HTTP/1.1",
			},
			Response: harhar.Response{
				StatusCode:  200,
				StatusText:  "OK",
				HTTPVersion: "HTTP/1.1",
				BodySize:    rng.Intn(40000) + 200,
			},
		}
		if r.Finished {
			entry.Time = r.End - r.Start
		}
		har.Log.Entries = append(har.Log.Entries, entry)
	}

	return har
}
