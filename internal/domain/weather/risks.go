package weather

import "strings"

// ClassifyRisks derives the four health risk indicators from a raw
// observation. All thresholds are exclusive: values sitting exactly on a
// boundary resolve to the lower tier.
func ClassifyRisks(obs Observation) RiskIndicators {
	var risks RiskIndicators

	switch {
	case obs.FeelsLike > 35:
		risks.HeatStress = LevelHigh
	case obs.FeelsLike > 30:
		risks.HeatStress = LevelModerate
	default:
		risks.HeatStress = LevelLow
	}

	condition := strings.ToLower(obs.Condition)
	switch {
	case strings.Contains(condition, "clear") && obs.Temp > 25:
		risks.UVRisk = LevelHigh
	case obs.Temp > 20:
		risks.UVRisk = LevelModerate
	default:
		risks.UVRisk = LevelLow
	}

	switch {
	case obs.Humidity > 80:
		risks.AirQuality = LevelPoor
	case obs.Humidity > 60:
		risks.AirQuality = LevelModerate
	default:
		risks.AirQuality = LevelGood
	}

	switch {
	case obs.Temp > 32 || (obs.Temp > 28 && obs.Humidity > 70):
		risks.DehydrationRisk = LevelHigh
	case obs.Temp > 25:
		risks.DehydrationRisk = LevelModerate
	default:
		risks.DehydrationRisk = LevelLow
	}

	return risks
}
