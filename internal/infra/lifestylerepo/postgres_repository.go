package lifestylerepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
)

// PostgresRepository persists lifestyle data in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// CreateLog inserts a new log row.
func (r *PostgresRepository) CreateLog(ctx context.Context, entry lifestyle.LogEntry) (lifestyle.LogEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lifestyle_logs (id, user_id, log_date, sleep_hours, exercise_minutes, water_glasses, meals, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, log_date, sleep_hours, exercise_minutes, water_glasses, meals, notes, created_at
	`, uuid.NewString(), entry.UserID, entry.Date, entry.SleepHours, entry.ExerciseMinutes, entry.WaterGlasses, entry.Meals, entry.Notes)
	return scanLog(row)
}

// RecentLogs returns up to limit entries, most recent date first.
func (r *PostgresRepository) RecentLogs(ctx context.Context, userID int64, limit int) ([]lifestyle.LogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, log_date, sleep_hours, exercise_minutes, water_glasses, meals, notes, created_at
		FROM lifestyle_logs
		WHERE user_id = $1
		ORDER BY log_date DESC, created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]lifestyle.LogEntry, 0, limit)
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpsertProfile replaces the profile for a user.
func (r *PostgresRepository) UpsertProfile(ctx context.Context, profile lifestyle.Profile) (lifestyle.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, age, gender, location, exercise_frequency, sleep_hours, diet_type, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			location = EXCLUDED.location,
			exercise_frequency = EXCLUDED.exercise_frequency,
			sleep_hours = EXCLUDED.sleep_hours,
			diet_type = EXCLUDED.diet_type,
			updated_at = now()
		RETURNING user_id, age, gender, location, exercise_frequency, sleep_hours, diet_type, updated_at
	`, profile.UserID, profile.Age, profile.Gender, profile.Location, profile.ExerciseFrequency, profile.TargetSleepHours, profile.DietType)
	return scanProfile(row)
}

// ProfileByUser returns the stored profile.
func (r *PostgresRepository) ProfileByUser(ctx context.Context, userID int64) (lifestyle.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, age, gender, location, exercise_frequency, sleep_hours, diet_type, updated_at
		FROM profiles
		WHERE user_id = $1
		LIMIT 1
	`, userID)
	if err != nil {
		return lifestyle.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return lifestyle.Profile{}, false, rows.Err()
	}
	profile, err := scanProfile(rows)
	if err != nil {
		return lifestyle.Profile{}, false, err
	}
	return profile, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (lifestyle.LogEntry, error) {
	var entry lifestyle.LogEntry
	var created time.Time
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.Date, &entry.SleepHours, &entry.ExerciseMinutes,
		&entry.WaterGlasses, &entry.Meals, &entry.Notes, &created); err != nil {
		return lifestyle.LogEntry{}, err
	}
	entry.CreatedAt = created.UTC()
	return entry, nil
}

func scanProfile(row rowScanner) (lifestyle.Profile, error) {
	var profile lifestyle.Profile
	var updated time.Time
	if err := row.Scan(&profile.UserID, &profile.Age, &profile.Gender, &profile.Location,
		&profile.ExerciseFrequency, &profile.TargetSleepHours, &profile.DietType, &updated); err != nil {
		return lifestyle.Profile{}, err
	}
	profile.UpdatedAt = updated.UTC()
	return profile, nil
}

var _ lifestyle.Repository = (*PostgresRepository)(nil)
