package tti

// FindOverlappingQuietPeriods derives and filters the CPU and network
// quiet-period candidates, then merges the two sorted lists to find the
// earliest pair holding a mutually-quiet window of at least
// RequiredQuietWindow. fmp and traceEnd are navigation-relative
// milliseconds.
func FindOverlappingQuietPeriods(longTasks []LongTask, requests []Request, fmp, traceEnd float64) (*QuietPeriodInfo, error) {
	networkPeriods := FilterForRequiredWindow(
		NetworkQuietPeriods(requests, AllowedConcurrentRequests, traceEnd),
		fmp, RequiredQuietWindow)
	cpuPeriods := FilterForRequiredWindow(
		CPUQuietPeriods(longTasks, traceEnd),
		fmp, RequiredQuietWindow)

	cpu, network, err := matchQuietPeriods(cpuPeriods, networkPeriods)
	if err != nil {
		return nil, err
	}

	return &QuietPeriodInfo{
		CPUQuietPeriod:      cpu,
		NetworkQuietPeriod:  network,
		CPUQuietPeriods:     cpuPeriods,
		NetworkQuietPeriods: networkPeriods,
	}, nil
}

// matchQuietPeriods walks both sorted candidate lists with one cursor
// each. The later-starting period's start is the candidate window
// start; the other period must stay open for RequiredQuietWindow past
// it. The first satisfied pair is the earliest possible match because
// periods are visited in increasing start order.
//
// The start comparison must stay >=, not >: on equal starts the CPU
// branch is evaluated first, which decides which cursor advances when
// the containment test fails.
func matchQuietPeriods(cpuPeriods, networkPeriods []TimePeriod) (TimePeriod, TimePeriod, error) {
	ci, ni := 0, 0
	for ci < len(cpuPeriods) && ni < len(networkPeriods) {
		cpu, network := cpuPeriods[ci], networkPeriods[ni]
		if cpu.Start >= network.Start {
			if network.End >= cpu.Start+RequiredQuietWindow {
				return cpu, network, nil
			}
			// this network period ends too soon to ever contain a
			// later-starting CPU candidate
			ni++
		} else {
			if cpu.End >= network.Start+RequiredQuietWindow {
				return cpu, network, nil
			}
			ci++
		}
	}

	if ci < len(cpuPeriods) {
		// network candidates ran out while CPU candidates remained
		return TimePeriod{}, TimePeriod{}, ErrNoNetworkQuietPeriod
	}
	return TimePeriod{}, TimePeriod{}, ErrNoCPUQuietPeriod
}
