package lifestyle

import "time"

// LogEntry is a single day of lifestyle metrics. Entries are immutable once
// created; ordering is by calendar date, most recent first.
type LogEntry struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	Date            string    `json:"date"`
	SleepHours      float64   `json:"sleep_hours"`
	ExerciseMinutes int       `json:"exercise_minutes"`
	WaterGlasses    int       `json:"water_glasses"`
	Meals           string    `json:"meals"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Profile holds the wellness profile for a user. Updates replace the whole
// record; at most one profile exists per user.
type Profile struct {
	UserID            int64     `json:"user_id"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	Location          string    `json:"location"`
	ExerciseFrequency string    `json:"exercise_frequency"`
	TargetSleepHours  float64   `json:"sleep_hours"`
	DietType          string    `json:"diet_type"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateLogRequest captures the payload for logging a day.
type CreateLogRequest struct {
	Date            string  `json:"date"`
	SleepHours      float64 `json:"sleep_hours"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	WaterGlasses    int     `json:"water_glasses"`
	Meals           string  `json:"meals"`
	Notes           string  `json:"notes"`
}

// UpdateProfileRequest carries a full profile replacement. Absent fields fall
// back to the documented defaults.
type UpdateProfileRequest struct {
	Age               *int     `json:"age"`
	Gender            string   `json:"gender"`
	Location          string   `json:"location"`
	ExerciseFrequency string   `json:"exercise_frequency"`
	TargetSleepHours  *float64 `json:"sleep_hours"`
	DietType          string   `json:"diet_type"`
}

// ChartData is the 7-day series consumed by the dashboard chart, sorted by
// date ascending.
type ChartData struct {
	Labels       []string  `json:"labels"`
	SleepData    []float64 `json:"sleep_data"`
	ExerciseData []int     `json:"exercise_data"`
	WaterData    []int     `json:"water_data"`
}
