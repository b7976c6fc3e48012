package weather

// Level is a coarse categorical risk label derived from continuous weather
// measurements.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelGood     Level = "good"
	LevelPoor     Level = "poor"
)

// Current holds the observed conditions for a location.
type Current struct {
	Temp         float64 `json:"temp"`
	FeelsLike    float64 `json:"feels_like"`
	Humidity     int     `json:"humidity"`
	Pressure     int     `json:"pressure"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	WindSpeed    float64 `json:"wind_speed"`
	VisibilityKM float64 `json:"visibility"`
}

// RiskIndicators carries the four derived health risk levels.
type RiskIndicators struct {
	HeatStress      Level `json:"heat_stress"`
	UVRisk          Level `json:"uv_risk"`
	AirQuality      Level `json:"air_quality"`
	DehydrationRisk Level `json:"dehydration_risk"`
}

// Snapshot is a transient view of the weather for one location. It is fetched
// fresh per request and never persisted. Mock reports whether the provider
// was unreachable and the fixed fallback snapshot was substituted.
type Snapshot struct {
	Location string         `json:"location"`
	Country  string         `json:"country"`
	Current  Current        `json:"current"`
	Risks    RiskIndicators `json:"risk_indicators"`
	Mock     bool           `json:"mock_data,omitempty"`
}

// Observation is the raw tuple the risk classifier operates on. Condition is
// the provider's main weather group (e.g. "Clear", "Clouds").
type Observation struct {
	Temp      float64
	FeelsLike float64
	Humidity  int
	Condition string
}

// MockSnapshot returns the fixed fallback snapshot used whenever the live
// provider is unavailable.
func MockSnapshot(location string) Snapshot {
	return Snapshot{
		Location: location,
		Country:  "NG",
		Current: Current{
			Temp:         28,
			FeelsLike:    32,
			Humidity:     75,
			Pressure:     1013,
			Description:  "Partly Cloudy",
			Icon:         "02d",
			WindSpeed:    2.5,
			VisibilityKM: 10,
		},
		Risks: RiskIndicators{
			HeatStress:      LevelModerate,
			UVRisk:          LevelHigh,
			AirQuality:      LevelModerate,
			DehydrationRisk: LevelModerate,
		},
		Mock: true,
	}
}
