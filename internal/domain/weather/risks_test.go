package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyRisksHeatStress(t *testing.T) {
	cases := []struct {
		name      string
		feelsLike float64
		want      Level
	}{
		{"scorching", 36, LevelHigh},
		{"exactly 35 stays moderate", 35, LevelModerate},
		{"warm", 31, LevelModerate},
		{"exactly 30 stays low", 30, LevelLow},
		{"mild", 22, LevelLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risks := ClassifyRisks(Observation{FeelsLike: tc.feelsLike})
			require.Equal(t, tc.want, risks.HeatStress)
		})
	}
}

func TestClassifyRisksUV(t *testing.T) {
	cases := []struct {
		name      string
		temp      float64
		condition string
		want      Level
	}{
		{"clear and hot", 26, "Clear", LevelHigh},
		{"clear at exactly 25 falls to moderate", 25, "Clear", LevelModerate},
		{"cloudy but warm", 26, "Clouds", LevelModerate},
		{"exactly 20 is low", 20, "Clouds", LevelLow},
		{"cool", 15, "Clear", LevelLow},
		{"condition match is case insensitive", 30, "CLEAR", LevelHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risks := ClassifyRisks(Observation{Temp: tc.temp, Condition: tc.condition})
			require.Equal(t, tc.want, risks.UVRisk)
		})
	}
}

func TestClassifyRisksAirQuality(t *testing.T) {
	cases := []struct {
		name     string
		humidity int
		want     Level
	}{
		{"muggy", 81, LevelPoor},
		{"exactly 80 stays moderate", 80, LevelModerate},
		{"humid", 61, LevelModerate},
		{"exactly 60 stays good", 60, LevelGood},
		{"dry", 40, LevelGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risks := ClassifyRisks(Observation{Humidity: tc.humidity})
			require.Equal(t, tc.want, risks.AirQuality)
		})
	}
}

func TestClassifyRisksDehydration(t *testing.T) {
	cases := []struct {
		name     string
		temp     float64
		humidity int
		want     Level
	}{
		{"hot outright", 33, 30, LevelHigh},
		{"warm and humid combo", 29, 71, LevelHigh},
		{"exactly 32 without humidity is moderate", 32, 50, LevelModerate},
		{"warm at exactly 70 humidity is moderate", 29, 70, LevelModerate},
		{"exactly 28 with high humidity is moderate", 28, 90, LevelModerate},
		{"exactly 25 is low", 25, 50, LevelLow},
		{"cool", 18, 90, LevelLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risks := ClassifyRisks(Observation{Temp: tc.temp, Humidity: tc.humidity})
			require.Equal(t, tc.want, risks.DehydrationRisk)
		})
	}
}
