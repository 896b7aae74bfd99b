package trace

import (
	"sort"

	"github.com/isaacglide/lighthouse/tti"
)

// top-level scheduler task names across Chrome versions
var topLevelTaskNames = map[string]bool{
	"RunTask":                                    true,
	"ThreadControllerImpl::RunTask":              true,
	"ThreadControllerImpl::DoWork":               true,
	"TaskQueueManager::ProcessTaskFromWorkQueue": true,
}

// LongTasks extracts the main-thread tasks of at least
// tti.MinLongTaskDuration that ran after navigation start, as
// navigation-relative millisecond intervals sorted ascending by start.
// The main thread is the one that emitted the navigationStart event.
func (t *Trace) LongTasks() ([]tti.LongTask, error) {
	nav, err := t.navigationStart()
	if err != nil {
		return nil, err
	}

	var tasks []tti.LongTask
	for _, ev := range t.Events {
		if ev.Ph != "X" || ev.PID != nav.PID || ev.TID != nav.TID {
			continue
		}
		if !topLevelTaskNames[ev.Name] {
			continue
		}
		if ev.Ts < nav.Ts || ev.Dur < tti.MinLongTaskDuration*1000 {
			continue
		}

		tasks = append(tasks, tti.LongTask{
			Start: (ev.Ts - nav.Ts) / 1000,
			End:   (ev.Ts + ev.Dur - nav.Ts) / 1000,
		})
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Start < tasks[j].Start
	})

	return tasks, nil
}
