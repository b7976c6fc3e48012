package lifestyle

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

const (
	defaultListLimit = 30
	chartWindow      = 7
)

// Service exposes lifestyle logging workflows.
type Service interface {
	CreateLog(ctx context.Context, userID int64, req CreateLogRequest) (LogEntry, error)
	Logs(ctx context.Context, userID int64, limit int) ([]LogEntry, error)
	ChartData(ctx context.Context, userID int64) (ChartData, error)
	Profile(ctx context.Context, userID int64) (Profile, bool, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (Profile, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the lifestyle domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "lifestyle.service"),
		now:    time.Now,
	}
}

func (s *service) CreateLog(ctx context.Context, userID int64, req CreateLogRequest) (LogEntry, error) {
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return LogEntry{}, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", err)
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return LogEntry{}, apperrors.Wrap("invalid_input", "sleep_hours must be between 0 and 24", nil)
	}
	if req.ExerciseMinutes < 0 {
		return LogEntry{}, apperrors.Wrap("invalid_input", "exercise_minutes cannot be negative", nil)
	}
	if req.WaterGlasses < 0 {
		return LogEntry{}, apperrors.Wrap("invalid_input", "water_glasses cannot be negative", nil)
	}
	if strings.TrimSpace(req.Meals) == "" {
		return LogEntry{}, apperrors.Wrap("invalid_input", "meals cannot be empty", nil)
	}

	entry, err := s.repo.CreateLog(ctx, LogEntry{
		UserID:          userID,
		Date:            date,
		SleepHours:      req.SleepHours,
		ExerciseMinutes: req.ExerciseMinutes,
		WaterGlasses:    req.WaterGlasses,
		Meals:           req.Meals,
		Notes:           req.Notes,
		CreatedAt:       s.now().UTC(),
	})
	if err != nil {
		return LogEntry{}, apperrors.Wrap("storage_error", "failed to save lifestyle log", err)
	}
	s.logger.Info("lifestyle log created", "user_id", userID, "log_id", entry.ID, "date", entry.Date)
	return entry, nil
}

func (s *service) Logs(ctx context.Context, userID int64, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	logs, err := s.repo.RecentLogs(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load lifestyle logs", err)
	}
	return logs, nil
}

func (s *service) ChartData(ctx context.Context, userID int64) (ChartData, error) {
	logs, err := s.repo.RecentLogs(ctx, userID, chartWindow)
	if err != nil {
		return ChartData{}, apperrors.Wrap("storage_error", "failed to load chart data", err)
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })

	data := ChartData{
		Labels:       make([]string, 0, len(logs)),
		SleepData:    make([]float64, 0, len(logs)),
		ExerciseData: make([]int, 0, len(logs)),
		WaterData:    make([]int, 0, len(logs)),
	}
	for _, entry := range logs {
		data.Labels = append(data.Labels, entry.Date)
		data.SleepData = append(data.SleepData, entry.SleepHours)
		data.ExerciseData = append(data.ExerciseData, entry.ExerciseMinutes)
		data.WaterData = append(data.WaterData, entry.WaterGlasses)
	}
	return data, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (Profile, bool, error) {
	profile, found, err := s.repo.ProfileByUser(ctx, userID)
	if err != nil {
		return Profile{}, false, apperrors.Wrap("storage_error", "failed to load profile", err)
	}
	return profile, found, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (Profile, error) {
	profile := Profile{
		UserID:            userID,
		Age:               25,
		Gender:            "other",
		Location:          "",
		ExerciseFrequency: "moderate",
		TargetSleepHours:  8,
		DietType:          "balanced",
		UpdatedAt:         s.now().UTC(),
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if strings.TrimSpace(req.Gender) != "" {
		profile.Gender = req.Gender
	}
	if strings.TrimSpace(req.Location) != "" {
		profile.Location = req.Location
	}
	if strings.TrimSpace(req.ExerciseFrequency) != "" {
		profile.ExerciseFrequency = req.ExerciseFrequency
	}
	if req.TargetSleepHours != nil {
		profile.TargetSleepHours = *req.TargetSleepHours
	}
	if strings.TrimSpace(req.DietType) != "" {
		profile.DietType = req.DietType
	}
	if profile.Age <= 0 || profile.Age > 130 {
		return Profile{}, apperrors.Wrap("invalid_input", "age must be between 1 and 130", nil)
	}
	if profile.TargetSleepHours < 0 || profile.TargetSleepHours > 24 {
		return Profile{}, apperrors.Wrap("invalid_input", "sleep_hours must be between 0 and 24", nil)
	}

	saved, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		return Profile{}, apperrors.Wrap("storage_error", "failed to save profile", err)
	}
	return saved, nil
}
