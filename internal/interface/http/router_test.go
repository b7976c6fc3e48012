package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/health-companion/internal/domain/advisor"
	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/domain/billing"
	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	"github.com/yanqian/health-companion/internal/domain/weather"
	"github.com/yanqian/health-companion/internal/infra/authstore"
	"github.com/yanqian/health-companion/internal/infra/config"
	"github.com/yanqian/health-companion/internal/infra/lifestylerepo"
	"github.com/yanqian/health-companion/internal/infra/paymentrepo"
	"github.com/yanqian/health-companion/internal/infra/userrepo"
)

const registerBody = `{
	"name": "Ada",
	"email": "ada@example.com",
	"password": "supersecret",
	"age": 30,
	"gender": "female",
	"location": "Lagos",
	"exercise_frequency": "moderate",
	"sleep_hours": 8,
	"diet_type": "balanced"
}`

func TestRouter_RegisterAndProfile(t *testing.T) {
	server := newServerUnderTest(t)

	recorder := performRequest(server, http.MethodPost, "/api/v1/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	require.NotEmpty(t, login.RefreshToken)
	require.Equal(t, "ada@example.com", login.User.Email)
	require.False(t, login.User.IsPremium)

	recorder = performRequest(server, http.MethodGet, "/api/v1/auth/profile", "", login.Token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		User    auth.UserView     `json:"user"`
		Profile lifestyle.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, login.User.ID, body.User.ID)
	require.Equal(t, 30, body.Profile.Age)
	require.Equal(t, "Lagos", body.Profile.Location)
}

func TestRouter_RegisterDuplicateEmail(t *testing.T) {
	server := newServerUnderTest(t)

	recorder := performRequest(server, http.MethodPost, "/api/v1/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/v1/auth/register", registerBody, "")
	require.Equal(t, http.StatusConflict, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "email_exists", errBody["error"]["code"])
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	server := newServerUnderTest(t)

	for _, path := range []string{"/api/v1/health/alerts", "/api/v1/lifestyle/logs", "/api/v1/auth/profile"} {
		recorder := performRequest(server, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusUnauthorized, recorder.Code, path)
	}
}

func TestRouter_LifestyleLogFlow(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	logBody := `{"date":"2026-08-27","sleep_hours":6.5,"exercise_minutes":20,"water_glasses":5,"meals":"rice and beans"}`
	recorder := performRequest(server, http.MethodPost, "/api/v1/lifestyle/logs", logBody, token)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/v1/lifestyle/logs", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listBody struct {
		Logs []lifestyle.LogEntry `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listBody))
	require.Len(t, listBody.Logs, 1)
	require.Equal(t, "2026-08-27", listBody.Logs[0].Date)

	recorder = performRequest(server, http.MethodGet, "/api/v1/lifestyle/chart", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var chart lifestyle.ChartData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &chart))
	require.Equal(t, []string{"2026-08-27"}, chart.Labels)
	require.Equal(t, []float64{6.5}, chart.SleepData)
}

func TestRouter_LifestyleLogInvalidDate(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodPost, "/api/v1/lifestyle/logs", `{"date":"27/08/2026","sleep_hours":7,"meals":"stew"}`, token)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_TipsFallsBackWithoutAI(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodPost, "/api/v1/health/tips", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Tips []string `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body.Tips)
	require.LessOrEqual(t, len(body.Tips), 5)
}

func TestRouter_ChatCannedReply(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodPost, "/api/v1/health/chat", `{"message":"I feel tired all the time"}`, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Contains(t, body.Response, "sleep")

	recorder = performRequest(server, http.MethodPost, "/api/v1/health/chat", `{"message":""}`, token)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_WeatherServesMockSnapshot(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodGet, "/api/v1/health/weather?location=Abuja", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot weather.Snapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	require.True(t, snapshot.Mock)
	require.Equal(t, "Abuja", snapshot.Location)
}

func TestRouter_WeatherFallsBackToProfileLocation(t *testing.T) {
	server := newServerUnderTest(t)

	body := `{
		"name": "Ada",
		"email": "ada@example.com",
		"password": "supersecret",
		"age": 30,
		"gender": "female",
		"location": "Nairobi",
		"exercise_frequency": "moderate",
		"sleep_hours": 8,
		"diet_type": "balanced"
	}`
	recorder := performRequest(server, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

	recorder = performRequest(server, http.MethodGet, "/api/v1/health/weather", "", login.Token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot weather.Snapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	require.Equal(t, "Nairobi", snapshot.Location)
}

func TestRouter_AlertsReturned(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodGet, "/api/v1/health/alerts", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Alerts []advisor.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	for _, alert := range body.Alerts {
		require.NotEmpty(t, alert.Title)
		require.NotEmpty(t, alert.Message)
	}
}

func TestRouter_MockBillingFlow(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodPost, "/api/v1/billing/checkout", `{}`, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var checkout billing.CheckoutResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &checkout))
	require.True(t, checkout.MockMode)
	require.NotEmpty(t, checkout.Data.Reference)

	recorder = performRequest(server, http.MethodGet, "/api/v1/billing/verify?reference="+checkout.Data.Reference+"&mock=true", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var verify billing.VerifyResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &verify))
	require.Equal(t, "success", verify.Status)

	recorder = performRequest(server, http.MethodGet, "/api/v1/auth/profile", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		User auth.UserView `json:"user"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.True(t, body.User.IsPremium)
}

func TestRouter_BillingConfigIsPublic(t *testing.T) {
	server := newServerUnderTest(t)

	recorder := performRequest(server, http.MethodGet, "/api/v1/billing/config", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var cfg billing.PublicConfig
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cfg))
	require.True(t, cfg.MockMode)
	require.NotEmpty(t, cfg.PublicKey)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	server := newServerUnderTest(t)
	token := registerUser(t, server)

	recorder := performRequest(server, http.MethodPost, "/api/v1/auth/logout", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/v1/auth/profile", "", token)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func registerUser(t *testing.T, server *http.Server) string {
	t.Helper()
	recorder := performRequest(server, http.MethodPost, "/api/v1/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	return login.Token
}

func performRequest(server *http.Server, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newServerUnderTest(t *testing.T) *http.Server {
	t.Helper()
	logger := newTestLogger()

	userRepo := userrepo.NewMemoryRepository()
	lifestyleRepo := lifestylerepo.NewMemoryRepository()
	paymentRepo := paymentrepo.NewMemoryRepository()
	tokenStore := authstore.NewMemoryStore()

	lifestyleSvc := lifestyle.NewService(lifestyleRepo, logger)
	authSvc := auth.NewService(auth.Config{
		Secret:          "router-test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, userRepo, tokenStore, lifestyleSvc, logger)
	weatherSvc := weather.NewService(nil, "Lagos", logger)
	advisorSvc := advisor.NewService(advisor.Config{
		Model:              "gpt-5",
		Temperature:        0.2,
		TipMaxTokens:       500,
		ChatMaxTokens:      300,
		ContextTokenBudget: 1500,
	}, nil, lifestyleRepo, weatherSvc, logger)
	billingSvc := billing.NewService(billing.Config{
		CallbackBaseURL:   "http://localhost:8080",
		DefaultAmountKobo: 5000,
		Currency:          "NGN",
	}, nil, paymentRepo, userRepo, logger)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}

	handlers := Handlers{
		Auth:      NewAuthHandler(authSvc, lifestyleSvc, logger),
		Lifestyle: NewLifestyleHandler(lifestyleSvc, logger),
		Health:    NewHealthHandler(advisorSvc, weatherSvc, authSvc, lifestyleSvc, logger),
		Billing:   NewBillingHandler(billingSvc, logger),
	}
	return NewRouter(cfg, authSvc, handlers, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
