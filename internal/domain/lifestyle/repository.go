package lifestyle

import "context"

// Repository persists lifestyle logs and profiles. Implementations must
// return logs most-recent-first by date and generate entry IDs themselves.
type Repository interface {
	CreateLog(ctx context.Context, entry LogEntry) (LogEntry, error)
	RecentLogs(ctx context.Context, userID int64, limit int) ([]LogEntry, error)
	UpsertProfile(ctx context.Context, profile Profile) (Profile, error)
	ProfileByUser(ctx context.Context, userID int64) (Profile, bool, error)
}
