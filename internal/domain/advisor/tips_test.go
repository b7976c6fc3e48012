package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/health-companion/internal/domain/weather"
)

func mildWeather() weather.Snapshot {
	return weather.Snapshot{Current: weather.Current{Temp: 22, Humidity: 50}}
}

func TestFallbackTipsAllRulesFireTruncatesFillers(t *testing.T) {
	avgs := Averages{Sleep: 5, Exercise: 10, Water: 3}
	snapshot := weather.Snapshot{Current: weather.Current{Temp: 32, Humidity: 85}}

	tips := FallbackTips(avgs, true, snapshot)

	require.Len(t, tips, 5)
	require.Contains(t, tips[0], "7-9 hours of sleep")
	require.Contains(t, tips[1], "30 minutes of physical activity")
	require.Contains(t, tips[2], "8 glasses of water")
	require.Contains(t, tips[3], "High temperatures detected")
	require.Contains(t, tips[4], "High humidity levels")
	for _, tip := range tips {
		require.NotContains(t, tip, "fruits and vegetables")
	}
}

func TestFallbackTipsHealthyMetricsGetFillers(t *testing.T) {
	avgs := Averages{Sleep: 8, Exercise: 45, Water: 9}

	tips := FallbackTips(avgs, true, mildWeather())

	require.Len(t, tips, 3)
	require.Contains(t, tips[0], "fruits and vegetables")
	require.Contains(t, tips[1], "stress management")
	require.Contains(t, tips[2], "check-ups")
}

func TestFallbackTipsNoHistoryUsesGeneralGuidance(t *testing.T) {
	tips := FallbackTips(Averages{}, false, mildWeather())

	require.Len(t, tips, 5)
	require.Contains(t, tips[0], "regular sleep schedule")
	require.Contains(t, tips[1], "150 minutes per week")
	require.Contains(t, tips[2], "8-10 glasses")
}

func TestFallbackTipsOversleeping(t *testing.T) {
	avgs := Averages{Sleep: 10, Exercise: 45, Water: 9}

	tips := FallbackTips(avgs, true, mildWeather())

	require.Contains(t, tips[0], "too much sleep")
}

func TestFallbackTipsColdWeather(t *testing.T) {
	snapshot := weather.Snapshot{Current: weather.Current{Temp: 10, Humidity: 50}}

	tips := FallbackTips(Averages{Sleep: 8, Exercise: 45, Water: 9}, true, snapshot)

	require.Contains(t, tips[0], "dress warmly")
}

func TestFallbackTipsBoundaryTemperaturesSkipWeatherRules(t *testing.T) {
	// 30 and 15 sit exactly on the thresholds and trigger nothing.
	for _, temp := range []float64{30, 15} {
		snapshot := weather.Snapshot{Current: weather.Current{Temp: temp, Humidity: 80}}
		tips := FallbackTips(Averages{Sleep: 8, Exercise: 45, Water: 9}, true, snapshot)
		require.Contains(t, tips[0], "fruits and vegetables")
	}
}

func TestFallbackTipsNeverEmpty(t *testing.T) {
	tips := FallbackTips(Averages{Sleep: 8, Exercise: 45, Water: 9}, true, mildWeather())

	require.NotEmpty(t, tips)
	require.LessOrEqual(t, len(tips), 5)
}
