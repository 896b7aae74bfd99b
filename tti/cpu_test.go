package tti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUQuietPeriods_NoLongTasks(t *testing.T) {
	periods := CPUQuietPeriods(nil, 10000)

	require.Len(t, periods, 1)
	assert.Equal(t, TimePeriod{Start: 0, End: 10000}, periods[0])
}

func TestCPUQuietPeriods_SingleTask(t *testing.T) {
	periods := CPUQuietPeriods([]LongTask{{Start: 3000, End: 3100}}, 10000)

	require.Len(t, periods, 2)
	assert.Equal(t, TimePeriod{Start: 0, End: 3000}, periods[0])
	assert.Equal(t, TimePeriod{Start: 3100, End: 10000}, periods[1])
}

func TestCPUQuietPeriods_MultipleTasks(t *testing.T) {
	tasks := []LongTask{
		{Start: 1000, End: 1200},
		{Start: 4000, End: 4500},
		{Start: 8000, End: 8050},
	}

	periods := CPUQuietPeriods(tasks, 15000)

	require.Len(t, periods, 4)
	assert.Equal(t, TimePeriod{Start: 0, End: 1000}, periods[0])
	assert.Equal(t, TimePeriod{Start: 1200, End: 4000}, periods[1])
	assert.Equal(t, TimePeriod{Start: 4500, End: 8000}, periods[2])
	assert.Equal(t, TimePeriod{Start: 8050, End: 15000}, periods[3])
}

func TestCPUQuietPeriods_AdjacentTasksProduceZeroLengthGap(t *testing.T) {
	tasks := []LongTask{
		{Start: 1000, End: 2000},
		{Start: 2000, End: 3000},
	}

	periods := CPUQuietPeriods(tasks, 5000)

	require.Len(t, periods, 3)
	assert.Equal(t, TimePeriod{Start: 2000, End: 2000}, periods[1])
}

// quiet periods plus long tasks must tile [0, traceEnd] exactly, with
// no overlap and no gaps
func TestCPUQuietPeriods_UnionCoversTrace(t *testing.T) {
	tasks := []LongTask{
		{Start: 500, End: 600},
		{Start: 600, End: 900},
		{Start: 2500, End: 2600},
		{Start: 9000, End: 9400},
	}
	traceEnd := 12000.0

	periods := CPUQuietPeriods(tasks, traceEnd)
	require.Len(t, periods, len(tasks)+1)

	cursor := 0.0
	ti := 0
	for _, p := range periods {
		assert.Equal(t, cursor, p.Start, "periods must be contiguous with tasks")
		assert.GreaterOrEqual(t, p.End, p.Start)
		cursor = p.End
		if ti < len(tasks) {
			assert.Equal(t, cursor, tasks[ti].Start)
			cursor = tasks[ti].End
			ti++
		}
	}
	assert.Equal(t, traceEnd, cursor)
}
