package advisor

import "github.com/yanqian/health-companion/internal/domain/weather"

const maxTips = 5

// FallbackTips produces rule-based tips when no AI assistance is available.
// Personalized tips come first, then general wellness fillers; the list is
// capped at maxTips and never empty.
func FallbackTips(avgs Averages, hasLogs bool, snapshot weather.Snapshot) []string {
	tips := make([]string, 0, 8)

	if hasLogs {
		if avgs.Sleep < 7 {
			tips = append(tips, "💤 Try to get 7-9 hours of sleep nightly for better health and immunity.")
		} else if avgs.Sleep > 9 {
			tips = append(tips, "💤 Consider maintaining a consistent sleep schedule - too much sleep can also affect energy levels.")
		}
	} else {
		tips = append(tips, "💤 Maintain a regular sleep schedule of 7-9 hours for optimal health.")
	}

	if hasLogs {
		if avgs.Exercise < 30 {
			tips = append(tips, "🏃‍♂️ Aim for at least 30 minutes of physical activity daily to boost your cardiovascular health.")
		}
	} else {
		tips = append(tips, "🏃‍♂️ Regular exercise is key to maintaining good health - aim for 150 minutes per week.")
	}

	if hasLogs {
		if avgs.Water < 8 {
			tips = append(tips, "💧 Stay hydrated by drinking at least 8 glasses of water daily.")
		}
	} else {
		tips = append(tips, "💧 Proper hydration is essential - aim for 8-10 glasses of water daily.")
	}

	if snapshot.Current.Temp > 30 {
		tips = append(tips, "☀️ High temperatures detected - stay cool, drink extra water, and avoid outdoor activities during peak hours.")
	} else if snapshot.Current.Temp < 15 {
		tips = append(tips, "❄️ Cool weather - dress warmly and maintain your immune system with proper nutrition.")
	}
	if snapshot.Current.Humidity > 80 {
		tips = append(tips, "💨 High humidity levels - be aware of increased risk of heat-related stress and dehydration.")
	}

	tips = append(tips,
		"🥗 Include plenty of fruits and vegetables in your diet for essential vitamins and minerals.",
		"🧘‍♀️ Practice stress management techniques like meditation or deep breathing exercises.",
		"👩‍⚕️ Schedule regular health check-ups and screenings for preventive care.",
	)

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
