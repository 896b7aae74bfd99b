// Package trace loads Chrome trace event files and extracts the page
// load timestamps and long main-thread tasks the tti package consumes.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Event is one trace event. Ts and Dur are microseconds on the trace
// clock; only the fields the extractors need are decoded.
type Event struct {
	Name string `json:"name"`
	Cat  string `json:"cat"`
	Ph   string `json:"ph"`
	PID  int    `json:"pid"`
	TID  int    `json:"tid"`

	Ts  float64 `json:"ts"`
	Dur float64 `json:"dur"`
}

// Trace is an immutable set of events from one recording.
type Trace struct {
	Events []Event
}

// Load reads and parses a trace file.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trace %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a trace from its JSON form. Both shapes Chrome emits
// are accepted: an object with a traceEvents array, or a bare array of
// events. Events are streamed one at a time rather than decoded as a
// single document, so large traces don't need a full in-memory tree.
func Parse(r io.Reader) (*Trace, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	first, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	switch first {
	case json.Delim('['):
		return parseEvents(decoder)
	case json.Delim('{'):
		if err := navigateToTraceEvents(decoder); err != nil {
			return nil, err
		}
		return parseEvents(decoder)
	default:
		return nil, fmt.Errorf("unexpected trace document start: %v", first)
	}
}

// navigateToTraceEvents walks object keys, skipping values, until it
// consumes the opening delimiter of the traceEvents array.
func navigateToTraceEvents(decoder *json.Decoder) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("trace has no traceEvents array")
			}
			return err
		}

		if token == json.Delim('}') {
			return fmt.Errorf("trace has no traceEvents array")
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		if key == "traceEvents" {
			open, err := decoder.Token()
			if err != nil {
				return err
			}
			if open != json.Delim('[') {
				return fmt.Errorf("traceEvents is not an array")
			}
			return nil
		}

		// skip this key's value wholesale
		var skipped json.RawMessage
		if err := decoder.Decode(&skipped); err != nil {
			return err
		}
	}
}

func parseEvents(decoder *json.Decoder) (*Trace, error) {
	var events []Event
	for decoder.More() {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			return nil, fmt.Errorf("failed to decode trace event %d: %w", len(events), err)
		}
		events = append(events, ev)
	}
	return &Trace{Events: events}, nil
}
