package advisor

import "strings"

type cannedReply struct {
	keywords []string
	response string
}

// Keyword groups are checked in order; the first group with any match wins.
var cannedReplies = []cannedReply{
	{
		keywords: []string{"sleep", "tired", "insomnia"},
		response: "For better sleep, try maintaining a consistent bedtime routine, avoiding screens before bed, and creating a comfortable sleep environment. If sleep issues persist, consider consulting a healthcare professional.",
	},
	{
		keywords: []string{"exercise", "workout", "fitness"},
		response: "Regular exercise is great for overall health! Start with activities you enjoy, aim for at least 30 minutes daily, and gradually increase intensity. Always consult a doctor before starting a new exercise program.",
	},
	{
		keywords: []string{"diet", "nutrition", "food", "eating"},
		response: "A balanced diet with plenty of fruits, vegetables, whole grains, and lean proteins supports good health. Stay hydrated and limit processed foods. Consider consulting a nutritionist for personalized advice.",
	},
	{
		keywords: []string{"stress", "anxiety", "mental"},
		response: "Managing stress is important for overall health. Try relaxation techniques like deep breathing, meditation, or regular exercise. Don't hesitate to reach out to mental health professionals if needed.",
	},
	{
		keywords: []string{"water", "hydration", "drink"},
		response: "Staying hydrated is essential! Aim for 8-10 glasses of water daily, more if you're active or in hot weather. Water helps with digestion, circulation, and temperature regulation.",
	},
}

const genericCannedReply = "I'm here to help with your health and wellness questions! For specific medical concerns, please consult with a healthcare professional. Is there a particular aspect of your health you'd like to discuss?"

// CannedChatReply picks a keyword-matched response when no AI assistance is
// available.
func CannedChatReply(message string) string {
	lower := strings.ToLower(message)
	for _, reply := range cannedReplies {
		for _, keyword := range reply.keywords {
			if strings.Contains(lower, keyword) {
				return reply.response
			}
		}
	}
	return genericCannedReply
}
