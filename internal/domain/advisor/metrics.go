package advisor

import "github.com/yanqian/health-companion/internal/domain/lifestyle"

// AggregateLogs averages sleep, exercise and water over at most window recent
// entries. Logs are expected most-recent-first; only the leading window is
// considered. The second return is false when there is no history at all.
func AggregateLogs(logs []lifestyle.LogEntry, window int) (Averages, bool) {
	if len(logs) == 0 {
		return Averages{}, false
	}
	if window > 0 && len(logs) > window {
		logs = logs[:window]
	}

	var avgs Averages
	for _, entry := range logs {
		avgs.Sleep += entry.SleepHours
		avgs.Exercise += float64(entry.ExerciseMinutes)
		avgs.Water += float64(entry.WaterGlasses)
	}
	n := float64(len(logs))
	avgs.Sleep /= n
	avgs.Exercise /= n
	avgs.Water /= n
	return avgs, true
}
