package tti

// CPUQuietPeriods derives the main-thread idle gaps from an
// ascending-by-start long task list: the stretch before the first task,
// the gap between each consecutive pair, and the tail after the last
// task. With no long tasks the whole trace is one quiet period.
//
// The result is sorted ascending and non-overlapping by construction.
// Adjacent tasks produce zero-length gaps, which the quiet-window
// filter discards later.
func CPUQuietPeriods(longTasks []LongTask, traceEnd float64) []TimePeriod {
	if len(longTasks) == 0 {
		return []TimePeriod{{Start: 0, End: traceEnd}}
	}

	periods := make([]TimePeriod, 0, len(longTasks)+1)
	periods = append(periods, TimePeriod{Start: 0, End: longTasks[0].Start})
	for i := 0; i < len(longTasks)-1; i++ {
		periods = append(periods, TimePeriod{
			Start: longTasks[i].End,
			End:   longTasks[i+1].Start,
		})
	}
	periods = append(periods, TimePeriod{
		Start: longTasks[len(longTasks)-1].End,
		End:   traceEnd,
	})

	return periods
}
