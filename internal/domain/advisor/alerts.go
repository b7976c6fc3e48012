package advisor

import "github.com/yanqian/health-companion/internal/domain/weather"

// BuildAlerts evaluates the alert rules against current conditions and recent
// activity. Rules are checked in a fixed order and every matching rule emits
// an alert; the result may be empty.
func BuildAlerts(snapshot weather.Snapshot, avgExercise float64, hasLogs bool) []Alert {
	alerts := make([]Alert, 0, 4)

	temp := snapshot.Current.Temp
	humidity := snapshot.Current.Humidity

	if temp > 35 {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Title:   "Extreme Heat Alert",
			Message: "Very high temperatures detected. Stay indoors, drink plenty of water, and avoid strenuous outdoor activities.",
			Icon:    "🌡️",
		})
	} else if temp > 30 {
		alerts = append(alerts, Alert{
			Type:    AlertCaution,
			Title:   "Heat Advisory",
			Message: "High temperatures today. Stay hydrated and take breaks if working outdoors.",
			Icon:    "☀️",
		})
	}

	if humidity > 85 {
		alerts = append(alerts, Alert{
			Type:    AlertInfo,
			Title:   "High Humidity Alert",
			Message: "Very humid conditions may affect breathing and increase heat stress. Stay cool and hydrated.",
			Icon:    "💨",
		})
	}

	if snapshot.Risks.DehydrationRisk == weather.LevelHigh {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Title:   "Dehydration Risk",
			Message: "Weather conditions increase dehydration risk. Drink water regularly, even if you don't feel thirsty.",
			Icon:    "💧",
		})
	}

	if snapshot.Risks.UVRisk == weather.LevelHigh {
		alerts = append(alerts, Alert{
			Type:    AlertCaution,
			Title:   "High UV Index",
			Message: "Strong UV radiation today. Use sunscreen, wear protective clothing, and seek shade during peak hours.",
			Icon:    "🧴",
		})
	}

	if snapshot.Risks.AirQuality == weather.LevelPoor {
		alerts = append(alerts, Alert{
			Type:    AlertCaution,
			Title:   "Air Quality Advisory",
			Message: "Poor air quality conditions. Consider limiting outdoor activities, especially if you have respiratory issues.",
			Icon:    "😷",
		})
	}

	if hasLogs && avgExercise > 60 && temp > 30 {
		alerts = append(alerts, Alert{
			Type:    AlertInfo,
			Title:   "Exercise Adjustment",
			Message: "Consider indoor workouts or exercising during cooler hours due to high temperatures.",
			Icon:    "🏃‍♂️",
		})
	}

	if temp < 20 {
		alerts = append(alerts, Alert{
			Type:    AlertInfo,
			Title:   "Cool Weather Reminder",
			Message: "Cooler temperatures - ensure adequate vitamin D intake and maintain your exercise routine.",
			Icon:    "🧥",
		})
	}

	return alerts
}
