package trace

import (
	"fmt"
	"strings"

	"github.com/isaacglide/lighthouse/tti"
)

// Timestamps locates the named instants of the page load: the last
// navigationStart, the first meaningful paint after it (candidate
// events count when the definitive one is absent), the DOM content
// loaded event on the same thread, and the end of the trace. Absent
// paint/parse instants are reported as zero; the tti package turns
// those into its missing-timestamp error kinds.
func (t *Trace) Timestamps() (tti.Timestamps, error) {
	nav, err := t.navigationStart()
	if err != nil {
		return tti.Timestamps{}, err
	}

	ts := tti.Timestamps{
		NavigationStart: nav.Ts,
		TraceEnd:        t.end(),
	}

	var fmpCandidate float64
	for _, ev := range t.Events {
		if ev.PID != nav.PID || ev.Ts < nav.Ts {
			continue
		}
		if !strings.Contains(ev.Cat, "blink.user_timing") {
			continue
		}

		switch ev.Name {
		case "firstMeaningfulPaint":
			if ts.FirstMeaningfulPaint == 0 {
				ts.FirstMeaningfulPaint = ev.Ts
			}
		case "firstMeaningfulPaintCandidate":
			// the last candidate stands in when no definitive paint
			// event was emitted
			if ev.Ts > fmpCandidate {
				fmpCandidate = ev.Ts
			}
		case "domContentLoadedEventEnd":
			if ts.DOMContentLoaded == 0 {
				ts.DOMContentLoaded = ev.Ts
			}
		}
	}

	if ts.FirstMeaningfulPaint == 0 {
		ts.FirstMeaningfulPaint = fmpCandidate
	}

	return ts, nil
}

// navigationStart returns the last navigationStart event in the trace;
// earlier ones belong to redirects or prior navigations.
func (t *Trace) navigationStart() (Event, error) {
	var nav Event
	found := false
	for _, ev := range t.Events {
		if ev.Name == "navigationStart" && strings.Contains(ev.Cat, "blink.user_timing") {
			if !found || ev.Ts >= nav.Ts {
				nav = ev
				found = true
			}
		}
	}
	if !found {
		return Event{}, fmt.Errorf("trace has no navigationStart event")
	}
	return nav, nil
}

// end returns the latest instant covered by any event.
func (t *Trace) end() float64 {
	var end float64
	for _, ev := range t.Events {
		if e := ev.Ts + ev.Dur; e > end {
			end = e
		}
	}
	return end
}
