package lifestyle

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

type stubRepo struct {
	logs     []LogEntry
	profiles map[int64]Profile
	err      error
	gotLimit int
}

func newStubRepo() *stubRepo {
	return &stubRepo{profiles: map[int64]Profile{}}
}

func (s *stubRepo) CreateLog(_ context.Context, entry LogEntry) (LogEntry, error) {
	if s.err != nil {
		return LogEntry{}, s.err
	}
	entry.ID = "log-1"
	s.logs = append(s.logs, entry)
	return entry, nil
}

func (s *stubRepo) RecentLogs(_ context.Context, _ int64, limit int) ([]LogEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotLimit = limit
	if len(s.logs) > limit {
		return s.logs[:limit], nil
	}
	return s.logs, nil
}

func (s *stubRepo) UpsertProfile(_ context.Context, profile Profile) (Profile, error) {
	if s.err != nil {
		return Profile{}, s.err
	}
	s.profiles[profile.UserID] = profile
	return profile, nil
}

func (s *stubRepo) ProfileByUser(_ context.Context, userID int64) (Profile, bool, error) {
	if s.err != nil {
		return Profile{}, false, s.err
	}
	profile, ok := s.profiles[userID]
	return profile, ok, nil
}

func newTestService(repo Repository) *service {
	return &service{
		repo:   repo,
		logger: slog.Default(),
		now:    func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestCreateLogDefaultsDateToToday(t *testing.T) {
	svc := newTestService(newStubRepo())

	entry, err := svc.CreateLog(context.Background(), 1, CreateLogRequest{
		SleepHours: 7, ExerciseMinutes: 30, WaterGlasses: 8, Meals: "rice and beans",
	})

	require.NoError(t, err)
	require.Equal(t, "2025-03-10", entry.Date)
	require.Equal(t, "log-1", entry.ID)
}

func TestCreateLogValidation(t *testing.T) {
	cases := []struct {
		name string
		req  CreateLogRequest
	}{
		{"bad date", CreateLogRequest{Date: "10/03/2025", Meals: "x"}},
		{"sleep above range", CreateLogRequest{SleepHours: 25, Meals: "x"}},
		{"negative sleep", CreateLogRequest{SleepHours: -1, Meals: "x"}},
		{"negative exercise", CreateLogRequest{ExerciseMinutes: -5, Meals: "x"}},
		{"negative water", CreateLogRequest{WaterGlasses: -2, Meals: "x"}},
		{"empty meals", CreateLogRequest{SleepHours: 7, Meals: "  "}},
	}
	svc := newTestService(newStubRepo())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateLog(context.Background(), 1, tc.req)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "invalid_input"))
		})
	}
}

func TestCreateLogWrapsStorageError(t *testing.T) {
	repo := newStubRepo()
	repo.err = errors.New("connection refused")
	svc := newTestService(repo)

	_, err := svc.CreateLog(context.Background(), 1, CreateLogRequest{SleepHours: 7, Meals: "x"})

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "storage_error"))
}

func TestLogsAppliesDefaultLimit(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	_, err := svc.Logs(context.Background(), 1, 0)

	require.NoError(t, err)
	require.Equal(t, 30, repo.gotLimit)
}

func TestChartDataSortsAscendingByDate(t *testing.T) {
	repo := newStubRepo()
	repo.logs = []LogEntry{
		{Date: "2025-03-10", SleepHours: 6, ExerciseMinutes: 20, WaterGlasses: 5},
		{Date: "2025-03-09", SleepHours: 8, ExerciseMinutes: 45, WaterGlasses: 9},
		{Date: "2025-03-08", SleepHours: 7, ExerciseMinutes: 30, WaterGlasses: 7},
	}
	svc := newTestService(repo)

	data, err := svc.ChartData(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, []string{"2025-03-08", "2025-03-09", "2025-03-10"}, data.Labels)
	require.Equal(t, []float64{7, 8, 6}, data.SleepData)
	require.Equal(t, []int{30, 45, 20}, data.ExerciseData)
	require.Equal(t, []int{7, 9, 5}, data.WaterData)
	require.Equal(t, 7, repo.gotLimit)
}

func TestChartDataEmptyHistory(t *testing.T) {
	svc := newTestService(newStubRepo())

	data, err := svc.ChartData(context.Background(), 1)

	require.NoError(t, err)
	require.Empty(t, data.Labels)
	require.Empty(t, data.SleepData)
}

func TestUpdateProfileAppliesDefaults(t *testing.T) {
	svc := newTestService(newStubRepo())

	profile, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Location: "Lagos"})

	require.NoError(t, err)
	require.Equal(t, 25, profile.Age)
	require.Equal(t, "other", profile.Gender)
	require.Equal(t, "Lagos", profile.Location)
	require.Equal(t, "moderate", profile.ExerciseFrequency)
	require.Equal(t, 8.0, profile.TargetSleepHours)
	require.Equal(t, "balanced", profile.DietType)
}

func TestUpdateProfileReplacesWholeRecord(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	age := 34
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Age: &age, Location: "Abuja"})
	require.NoError(t, err)

	// A second update omitting location resets it to the default.
	_, err = svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Age: &age})
	require.NoError(t, err)

	profile, found, err := svc.Profile(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "", profile.Location)
	require.Equal(t, 34, profile.Age)
}

func TestUpdateProfileRejectsBadAge(t *testing.T) {
	svc := newTestService(newStubRepo())

	age := 200
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Age: &age})

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestProfileNotFound(t *testing.T) {
	svc := newTestService(newStubRepo())

	_, found, err := svc.Profile(context.Background(), 42)

	require.NoError(t, err)
	require.False(t, found)
}
