package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacglide/lighthouse/tracegen"
	"github.com/isaacglide/lighthouse/tti"
)

func writeTraceFile(t *testing.T, result *tracegen.TraceResult) string {
	t.Helper()

	raw, err := json.Marshal(map[string]any{"traceEvents": result.Trace.Events})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestAssembleInput_TraceOnly(t *testing.T) {
	result := tracegen.GenerateTrace(tracegen.TraceOptions{
		Seed:      3,
		FMPOffset: 1500,
		DCLOffset: 1200,
		LongTasks: []tti.LongTask{{Start: 2000, End: 2300}},
	})
	path := writeTraceFile(t, result)

	input, err := assembleInput(path)

	require.NoError(t, err)
	assert.Equal(t, result.Timestamps, input.Timestamps)
	assert.Equal(t, []tti.LongTask{{Start: 2000, End: 2300}}, input.LongTasks)
	assert.Empty(t, input.Requests)
}

func TestAssembleInput_WithHAR(t *testing.T) {
	result := tracegen.GenerateTrace(tracegen.TraceOptions{
		Seed:      4,
		FMPOffset: 1500,
		DCLOffset: 1200,
	})
	tracePath := writeTraceFile(t, result)

	har := tracegen.GenerateHAR(tracegen.HAROptions{
		Requests: []tti.Request{{Start: 100, End: 700, Finished: true}},
	})
	raw, err := json.Marshal(har)
	require.NoError(t, err)
	harPath := filepath.Join(t.TempDir(), "recording.har")
	require.NoError(t, os.WriteFile(harPath, raw, 0o644))

	harFile = harPath
	defer func() { harFile = "" }()

	input, err := assembleInput(tracePath)

	require.NoError(t, err)
	require.Len(t, input.Requests, 1)
	assert.InDelta(t, 100, input.Requests[0].Start, 1)
	assert.True(t, input.Requests[0].Finished)
}

func TestAssembleInput_FlagOverrides(t *testing.T) {
	result := tracegen.GenerateTrace(tracegen.TraceOptions{Seed: 5, DCLOffset: 1200})
	path := writeTraceFile(t, result)

	fmpMillis = 1800
	defer func() { fmpMillis = 0 }()

	input, err := assembleInput(path)

	require.NoError(t, err)
	assert.Equal(t, input.Timestamps.NavigationStart+1800*1000, input.Timestamps.FirstMeaningfulPaint)
}

func TestAssembleInput_MissingFile(t *testing.T) {
	_, err := assembleInput(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

func TestAssembleInput_EndToEndCompute(t *testing.T) {
	result := tracegen.GenerateTrace(tracegen.TraceOptions{
		Seed:          6,
		TraceDuration: 20000,
		FMPOffset:     2000,
		DCLOffset:     2500,
		LongTasks:     []tti.LongTask{{Start: 3000, End: 3100}},
	})
	path := writeTraceFile(t, result)

	input, err := assembleInput(path)
	require.NoError(t, err)

	metric, info, err := tti.Compute(*input)
	require.NoError(t, err)

	assert.Equal(t, 3100.0, metric.Timing)
	assert.Equal(t, tti.TimePeriod{Start: 3100, End: 20000}, info.CPUQuietPeriod)
}
