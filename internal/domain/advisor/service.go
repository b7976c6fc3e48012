package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	"github.com/yanqian/health-companion/internal/domain/weather"
	"github.com/yanqian/health-companion/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

const (
	// tipWindow and alertWindow bound how much history feeds the rules.
	tipWindow   = 7
	alertWindow = 3
	// contextLogSpan caps how many log lines go into the AI context.
	contextLogSpan = 3

	fallbackEncoding = "cl100k_base"

	emptyReplyApology = "I'm sorry, I couldn't generate a response. Please try again."
)

// Config wires runtime parameters for the advisor domain.
type Config struct {
	Model              string
	Temperature        float32
	TipMaxTokens       int
	ChatMaxTokens      int
	ContextTokenBudget int
}

// ChatClient abstracts the AI completion backend. A nil client means no
// credential is configured and every request takes the rule-based path.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// HistorySource provides the lifestyle history the advisor personalizes on.
type HistorySource interface {
	RecentLogs(ctx context.Context, userID int64, limit int) ([]lifestyle.LogEntry, error)
	ProfileByUser(ctx context.Context, userID int64) (lifestyle.Profile, bool, error)
}

// Service exposes the recommendation surface. Tips never fails: every
// degraded dependency downgrades to the rule-based path instead.
type Service interface {
	Tips(ctx context.Context, user UserInfo) []string
	Chat(ctx context.Context, user UserInfo, message string) (string, error)
	Alerts(ctx context.Context, user UserInfo) ([]Alert, error)
}

type service struct {
	cfg     Config
	client  ChatClient
	history HistorySource
	weather weather.Service
	logger  *slog.Logger
	encoder *tiktoken.Tiktoken
}

// NewService wires up the advisor domain.
func NewService(cfg Config, client ChatClient, history HistorySource, weatherSvc weather.Service, logger *slog.Logger) Service {
	logger = logger.With("component", "advisor.service")
	encoder, err := tiktoken.EncodingForModel(cfg.Model)
	if err != nil {
		encoder, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			logger.Warn("token encoder unavailable, context budget disabled", "error", err)
			encoder = nil
		}
	}
	return &service{
		cfg:     cfg,
		client:  client,
		history: history,
		weather: weatherSvc,
		logger:  logger,
		encoder: encoder,
	}
}

func (s *service) Tips(ctx context.Context, user UserInfo) []string {
	logs, err := s.history.RecentLogs(ctx, user.ID, tipWindow)
	if err != nil {
		s.logger.Warn("lifestyle history unavailable for tips", "user_id", user.ID, "error", err)
		logs = nil
	}
	profile, hasProfile, err := s.history.ProfileByUser(ctx, user.ID)
	if err != nil {
		s.logger.Warn("profile unavailable for tips", "user_id", user.ID, "error", err)
		hasProfile = false
	}

	snapshot := s.weather.Current(ctx, profile.Location)
	avgs, hasLogs := AggregateLogs(logs, tipWindow)

	if s.client == nil {
		return FallbackTips(avgs, hasLogs, snapshot)
	}
	if tips, ok := s.aiTips(ctx, user, profile, hasProfile, logs, snapshot); ok {
		return tips
	}
	return FallbackTips(avgs, hasLogs, snapshot)
}

func (s *service) Chat(ctx context.Context, user UserInfo, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}

	if s.client == nil {
		return CannedChatReply(message), nil
	}

	logs, err := s.history.RecentLogs(ctx, user.ID, alertWindow)
	if err != nil {
		s.logger.Warn("lifestyle history unavailable for chat", "user_id", user.ID, "error", err)
		logs = nil
	}
	profile, hasProfile, err := s.history.ProfileByUser(ctx, user.ID)
	if err != nil {
		hasProfile = false
	}

	systemPrompt := fmt.Sprintf(chatSystemPromptTemplate, s.contextBlock(user, profile, hasProfile, logs, nil))
	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.ChatMaxTokens,
	})
	if err != nil {
		s.logger.Warn("chatgpt chat request failed, serving canned reply", "error", err)
		return CannedChatReply(message), nil
	}
	if len(completion.Choices) == 0 {
		return CannedChatReply(message), nil
	}
	s.logUsage("chat", completion)

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return emptyReplyApology, nil
	}
	return content, nil
}

func (s *service) Alerts(ctx context.Context, user UserInfo) ([]Alert, error) {
	logs, err := s.history.RecentLogs(ctx, user.ID, alertWindow)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load lifestyle logs", err)
	}
	profile, _, err := s.history.ProfileByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load profile", err)
	}

	snapshot := s.weather.Current(ctx, profile.Location)
	avgs, hasLogs := AggregateLogs(logs, alertWindow)
	return BuildAlerts(snapshot, avgs.Exercise, hasLogs), nil
}

// aiTips makes at most one completion call. The ok result is false whenever
// the reply cannot be used and the rule-based tips should stand in.
func (s *service) aiTips(ctx context.Context, user UserInfo, profile lifestyle.Profile, hasProfile bool, logs []lifestyle.LogEntry, snapshot weather.Snapshot) ([]string, bool) {
	prompt := fmt.Sprintf(tipPromptTemplate, s.contextBlock(user, profile, hasProfile, logs, &snapshot))
	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: tipSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    s.cfg.Temperature,
		MaxTokens:      s.cfg.TipMaxTokens,
		ResponseFormat: &chatgpt.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		s.logger.Warn("chatgpt tips request failed, falling back to rules", "error", err)
		return nil, false
	}
	if len(completion.Choices) == 0 {
		return nil, false
	}
	s.logUsage("tips", completion)

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, false
	}
	var wire struct {
		Tips json.RawMessage `json:"tips"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		s.logger.Warn("chatgpt tips reply malformed, falling back to rules", "error", err)
		return nil, false
	}
	if len(wire.Tips) == 0 {
		return nil, false
	}
	var tips []string
	if err := json.Unmarshal(wire.Tips, &tips); err != nil {
		s.logger.Warn("chatgpt tips array malformed, falling back to rules", "error", err)
		return nil, false
	}
	if tips == nil {
		tips = []string{}
	}
	return tips, true
}

// contextBlock renders the personalization context. A nil snapshot omits the
// weather line. The result is capped at the configured token budget.
func (s *service) contextBlock(user UserInfo, profile lifestyle.Profile, hasProfile bool, logs []lifestyle.LogEntry, snapshot *weather.Snapshot) string {
	parts := []string{fmt.Sprintf("User: %s, Premium: %t", user.Name, user.IsPremium)}
	if hasProfile {
		parts = append(parts,
			fmt.Sprintf("Age: %d", profile.Age),
			fmt.Sprintf("Gender: %s", profile.Gender),
			fmt.Sprintf("Location: %s", profile.Location),
			fmt.Sprintf("Exercise Frequency: %s", profile.ExerciseFrequency),
			fmt.Sprintf("Target Sleep Hours: %g", profile.TargetSleepHours),
			fmt.Sprintf("Diet Type: %s", profile.DietType),
		)
	}
	if len(logs) > 0 {
		parts = append(parts, "\nRecent Lifestyle Logs:")
		span := logs
		if len(span) > contextLogSpan {
			span = span[:contextLogSpan]
		}
		for _, entry := range span {
			parts = append(parts, fmt.Sprintf("Date: %s - Sleep: %gh, Exercise: %dmin, Water: %d glasses",
				entry.Date, entry.SleepHours, entry.ExerciseMinutes, entry.WaterGlasses))
		}
	}
	if snapshot != nil {
		parts = append(parts, fmt.Sprintf("\nCurrent Weather: %s, Temp: %g°C, Humidity: %d%%",
			snapshot.Current.Description, snapshot.Current.Temp, snapshot.Current.Humidity))
	}
	return s.capTokens(strings.Join(parts, "\n"))
}

func (s *service) capTokens(text string) string {
	if s.encoder == nil || s.cfg.ContextTokenBudget <= 0 {
		return text
	}
	tokens := s.encoder.Encode(text, nil, nil)
	if len(tokens) <= s.cfg.ContextTokenBudget {
		return text
	}
	return s.encoder.Decode(tokens[:s.cfg.ContextTokenBudget])
}

func (s *service) logUsage(op string, completion chatgpt.ChatCompletionResponse) {
	if completion.Usage.IsZero() {
		return
	}
	s.logger.Info("chatgpt token usage",
		"operation", op,
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
		"total_tokens", completion.Usage.TotalTokens,
	)
}

const tipSystemPrompt = "You are a healthcare expert providing personalized wellness advice. " +
	"Focus on preventive care, lifestyle improvements, and actionable recommendations."

const tipPromptTemplate = `Based on the following user health data, provide 3-5 personalized health tips.
Respond with a JSON object containing an array of tips.

User Context:
%s

Please provide actionable, specific health tips considering:
1. Sleep patterns and quality
2. Exercise habits and frequency
3. Nutrition and hydration
4. Weather conditions and environmental factors
5. Overall wellness and preventive care

Respond in JSON format: {"tips": ["tip1", "tip2", "tip3"]}`

const chatSystemPromptTemplate = `You are a helpful healthcare assistant. You have access to the user's health profile:

%s

Provide helpful, accurate health advice while being supportive and encouraging.
Always remind users to consult healthcare professionals for serious concerns.
Keep responses concise and actionable.`
