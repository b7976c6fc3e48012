package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/yanqian/health-companion/internal/domain/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions from OpenWeather.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch retrieves current weather for a location and derives the risk
// indicators from the raw readings.
func (c *Client) Fetch(ctx context.Context, location string) (weather.Snapshot, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Snapshot{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(raw.Weather) == 0 {
		return weather.Snapshot{}, errors.New("weather response missing conditions")
	}

	return normalize(raw), nil
}

type apiResponse struct {
	Name    string       `json:"name"`
	Sys     apiSys       `json:"sys"`
	Main    apiMain      `json:"main"`
	Weather []apiWeather `json:"weather"`
	Wind    apiWind      `json:"wind"`
	// Visibility is reported in meters.
	Visibility *float64 `json:"visibility"`
}

type apiSys struct {
	Country string `json:"country"`
}

type apiMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

type apiWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type apiWind struct {
	Speed float64 `json:"speed"`
}

// normalize maps the provider payload onto the domain snapshot. Risks are
// classified on the raw readings before the display values are rounded.
func normalize(raw apiResponse) weather.Snapshot {
	visibilityKM := 10.0
	if raw.Visibility != nil {
		visibilityKM = *raw.Visibility / 1000
	}
	return weather.Snapshot{
		Location: raw.Name,
		Country:  raw.Sys.Country,
		Current: weather.Current{
			Temp:         math.Round(raw.Main.Temp),
			FeelsLike:    math.Round(raw.Main.FeelsLike),
			Humidity:     raw.Main.Humidity,
			Pressure:     raw.Main.Pressure,
			Description:  titleCase(raw.Weather[0].Description),
			Icon:         raw.Weather[0].Icon,
			WindSpeed:    raw.Wind.Speed,
			VisibilityKM: visibilityKM,
		},
		Risks: weather.ClassifyRisks(weather.Observation{
			Temp:      raw.Main.Temp,
			FeelsLike: raw.Main.FeelsLike,
			Humidity:  raw.Main.Humidity,
			Condition: raw.Weather[0].Main,
		}),
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
