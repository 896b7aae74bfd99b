package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectFormTrace = `{
	"metadata": {"clock-domain": "LINUX_CLOCK_MONOTONIC"},
	"traceEvents": [
		{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 10, "tid": 1, "ts": 1000000},
		{"name": "domContentLoadedEventEnd", "cat": "blink.user_timing,rail", "ph": "R", "pid": 10, "tid": 1, "ts": 2200000},
		{"name": "firstMeaningfulPaint", "cat": "loading,blink.user_timing", "ph": "R", "pid": 10, "tid": 1, "ts": 2500000},
		{"name": "RunTask", "cat": "toplevel", "ph": "X", "pid": 10, "tid": 1, "ts": 4000000, "dur": 100000},
		{"name": "RunTask", "cat": "toplevel", "ph": "X", "pid": 10, "tid": 1, "ts": 3000000, "dur": 60000},
		{"name": "RunTask", "cat": "toplevel", "ph": "X", "pid": 10, "tid": 1, "ts": 5000000, "dur": 20000},
		{"name": "RunTask", "cat": "toplevel", "ph": "X", "pid": 10, "tid": 2, "ts": 6000000, "dur": 900000},
		{"name": "tracingStopped", "cat": "__metadata", "ph": "I", "pid": 10, "tid": 1, "ts": 11000000}
	],
	"displayTimeUnit": "ms"
}`

func TestParse_ObjectForm(t *testing.T) {
	tr, err := Parse(strings.NewReader(objectFormTrace))

	require.NoError(t, err)
	assert.Len(t, tr.Events, 8)
	assert.Equal(t, "navigationStart", tr.Events[0].Name)
}

func TestParse_BareArrayForm(t *testing.T) {
	raw := `[{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 3, "tid": 7, "ts": 500}]`

	tr, err := Parse(strings.NewReader(raw))

	require.NoError(t, err)
	require.Len(t, tr.Events, 1)
	assert.Equal(t, 7, tr.Events[0].TID)
}

func TestParse_MissingTraceEvents(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"metadata": {}}`))

	assert.ErrorContains(t, err, "no traceEvents")
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse(strings.NewReader(`"not a trace"`))

	assert.Error(t, err)
}

func TestTimestamps(t *testing.T) {
	tr, err := Parse(strings.NewReader(objectFormTrace))
	require.NoError(t, err)

	ts, err := tr.Timestamps()
	require.NoError(t, err)

	assert.Equal(t, 1000000.0, ts.NavigationStart)
	assert.Equal(t, 2500000.0, ts.FirstMeaningfulPaint)
	assert.Equal(t, 2200000.0, ts.DOMContentLoaded)
	assert.Equal(t, 11000000.0, ts.TraceEnd)
}

func TestTimestamps_FMPCandidateFallback(t *testing.T) {
	raw := `[
		{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 100000},
		{"name": "firstMeaningfulPaintCandidate", "cat": "loading,blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 800000},
		{"name": "firstMeaningfulPaintCandidate", "cat": "loading,blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 1400000}
	]`
	tr, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)

	ts, err := tr.Timestamps()
	require.NoError(t, err)

	// the last candidate wins
	assert.Equal(t, 1400000.0, ts.FirstMeaningfulPaint)
}

func TestTimestamps_AbsentPaintEventsAreZero(t *testing.T) {
	raw := `[{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 100000}]`
	tr, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)

	ts, err := tr.Timestamps()
	require.NoError(t, err)

	assert.Zero(t, ts.FirstMeaningfulPaint)
	assert.Zero(t, ts.DOMContentLoaded)
}

func TestTimestamps_NoNavigationStart(t *testing.T) {
	tr := &Trace{Events: []Event{{Name: "RunTask", Ph: "X"}}}

	_, err := tr.Timestamps()

	assert.ErrorContains(t, err, "navigationStart")
}

func TestTimestamps_LastNavigationWins(t *testing.T) {
	raw := `[
		{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 100000},
		{"name": "navigationStart", "cat": "blink.user_timing", "ph": "R", "pid": 1, "tid": 1, "ts": 900000}
	]`
	tr, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)

	ts, err := tr.Timestamps()
	require.NoError(t, err)

	assert.Equal(t, 900000.0, ts.NavigationStart)
}

func TestLongTasks(t *testing.T) {
	tr, err := Parse(strings.NewReader(objectFormTrace))
	require.NoError(t, err)

	tasks, err := tr.LongTasks()
	require.NoError(t, err)

	// the 20ms task is under the cutoff and the tid 2 task is off the
	// main thread; the survivors come back sorted by start
	require.Len(t, tasks, 2)
	assert.Equal(t, 2000.0, tasks[0].Start)
	assert.Equal(t, 2060.0, tasks[0].End)
	assert.Equal(t, 3000.0, tasks[1].Start)
	assert.Equal(t, 3100.0, tasks[1].End)
}
