package advisor

// AlertType grades how urgent an alert is.
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertCaution AlertType = "caution"
	AlertInfo    AlertType = "info"
)

// Alert is a single actionable health warning shown on the dashboard.
type Alert struct {
	Type    AlertType `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Icon    string    `json:"icon"`
}

// Averages holds per-day lifestyle metric means over a recent window.
type Averages struct {
	Sleep    float64
	Exercise float64
	Water    float64
}

// UserInfo is the slice of account state the advisor needs for
// personalization.
type UserInfo struct {
	ID        int64
	Name      string
	IsPremium bool
}
