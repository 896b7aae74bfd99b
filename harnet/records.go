// Package harnet reconstructs the page's network request timeline from
// an HTTP Archive (HAR) recording, producing the request intervals the
// tti package sweeps for quiet periods.
package harnet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pb33f/harhar"

	"github.com/isaacglide/lighthouse/tti"
)

// Load reads and decodes a HAR file.
func Load(path string) (*harhar.HAR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HAR file: %w", err)
	}
	defer f.Close()

	var har harhar.HAR
	if err := json.NewDecoder(f).Decode(&har); err != nil {
		return nil, fmt.Errorf("failed to parse HAR file %s: %w", path, err)
	}
	return &har, nil
}

// Origin returns the wall-clock instant requests are measured against:
// the first page's start when pages are recorded, otherwise the
// earliest entry start. The CLI aligns this instant with the trace's
// navigation start.
func Origin(har *harhar.HAR) (time.Time, error) {
	if len(har.Log.Pages) > 0 {
		t, err := time.Parse(time.RFC3339, har.Log.Pages[0].Start)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid page start time: %w", err)
		}
		return t, nil
	}

	var earliest time.Time
	for _, entry := range har.Log.Entries {
		t, err := time.Parse(time.RFC3339, entry.Start)
		if err != nil {
			continue
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	if earliest.IsZero() {
		return time.Time{}, fmt.Errorf("HAR has no datable pages or entries")
	}
	return earliest, nil
}

// Requests converts HAR entries into origin-relative millisecond
// request intervals, sorted ascending by start. Entries with a
// negative total time (unknown, per the HAR spec) have no recorded end
// and are treated as still in flight; entries that cannot be dated are
// skipped.
func Requests(har *harhar.HAR, origin time.Time) []tti.Request {
	requests := make([]tti.Request, 0, len(har.Log.Entries))
	for _, entry := range har.Log.Entries {
		started, err := time.Parse(time.RFC3339, entry.Start)
		if err != nil {
			continue
		}

		start := float64(started.Sub(origin)) / float64(time.Millisecond)
		r := tti.Request{Start: start}
		if entry.Time >= 0 {
			r.End = start + entry.Time
			r.Finished = true
		}
		requests = append(requests, r)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].Start < requests[j].Start
	})

	return requests
}

// DOMContentLoaded recovers the DOM content loaded offset (ms after the
// page started) from the first page's timings. It reports false when no
// page or timing was recorded. Used as a fallback when the trace lacks
// the event.
func DOMContentLoaded(har *harhar.HAR) (float64, bool) {
	if len(har.Log.Pages) == 0 {
		return 0, false
	}
	dcl := har.Log.Pages[0].PageTimings.OnContentLoad
	if dcl <= 0 {
		return 0, false
	}
	return dcl, true
}
