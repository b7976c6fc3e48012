package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
)

func TestAggregateLogsEmptyHistory(t *testing.T) {
	avgs, ok := AggregateLogs(nil, 7)

	require.False(t, ok)
	require.Zero(t, avgs)
}

func TestAggregateLogsAverages(t *testing.T) {
	logs := []lifestyle.LogEntry{
		{SleepHours: 6, ExerciseMinutes: 20, WaterGlasses: 4},
		{SleepHours: 8, ExerciseMinutes: 40, WaterGlasses: 6},
	}

	avgs, ok := AggregateLogs(logs, 7)

	require.True(t, ok)
	require.Equal(t, 7.0, avgs.Sleep)
	require.Equal(t, 30.0, avgs.Exercise)
	require.Equal(t, 5.0, avgs.Water)
}

func TestAggregateLogsHonorsWindow(t *testing.T) {
	logs := []lifestyle.LogEntry{
		{SleepHours: 4},
		{SleepHours: 6},
		{SleepHours: 10},
		{SleepHours: 10},
	}

	avgs, ok := AggregateLogs(logs, 2)

	require.True(t, ok)
	require.Equal(t, 5.0, avgs.Sleep)
}

func TestAggregateLogsShortHistoryDividesByCount(t *testing.T) {
	logs := []lifestyle.LogEntry{{SleepHours: 9}}

	avgs, ok := AggregateLogs(logs, 7)

	require.True(t, ok)
	require.Equal(t, 9.0, avgs.Sleep)
}
