package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/health-companion/internal/domain/weather"
)

func TestNormalizeMapsAndRounds(t *testing.T) {
	visibility := 8000.0
	raw := apiResponse{
		Name: "Lagos",
		Sys:  apiSys{Country: "NG"},
		Main: apiMain{Temp: 31.6, FeelsLike: 34.4, Humidity: 72, Pressure: 1009},
		Weather: []apiWeather{
			{Main: "Clear", Description: "scattered clouds", Icon: "03d"},
		},
		Wind:       apiWind{Speed: 3.1},
		Visibility: &visibility,
	}

	snapshot := normalize(raw)

	require.Equal(t, "Lagos", snapshot.Location)
	require.Equal(t, "NG", snapshot.Country)
	require.Equal(t, 32.0, snapshot.Current.Temp)
	require.Equal(t, 34.0, snapshot.Current.FeelsLike)
	require.Equal(t, "Scattered Clouds", snapshot.Current.Description)
	require.Equal(t, 8.0, snapshot.Current.VisibilityKM)
	require.False(t, snapshot.Mock)

	// Risks come from the raw readings, not the rounded display values.
	require.Equal(t, weather.LevelModerate, snapshot.Risks.HeatStress)
	require.Equal(t, weather.LevelHigh, snapshot.Risks.UVRisk)
	require.Equal(t, weather.LevelModerate, snapshot.Risks.AirQuality)
	require.Equal(t, weather.LevelHigh, snapshot.Risks.DehydrationRisk)
}

func TestNormalizeDefaultsVisibility(t *testing.T) {
	raw := apiResponse{
		Main:    apiMain{Temp: 20, FeelsLike: 20, Humidity: 50},
		Weather: []apiWeather{{Main: "Clouds", Description: "overcast"}},
	}

	snapshot := normalize(raw)

	require.Equal(t, 10.0, snapshot.Current.VisibilityKM)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "Lagos", r.URL.Query().Get("q"))
		require.Equal(t, "key-123", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Lagos",
			"sys": {"country": "NG"},
			"main": {"temp": 28.4, "feels_like": 31.2, "humidity": 75, "pressure": 1013},
			"weather": [{"main": "Clouds", "description": "broken clouds", "icon": "04d"}],
			"wind": {"speed": 2.5},
			"visibility": 10000
		}`))
	}))
	defer server.Close()

	client, err := NewClient("key-123", server.URL)
	require.NoError(t, err)

	snapshot, err := client.Fetch(context.Background(), "Lagos")
	require.NoError(t, err)
	require.Equal(t, "Lagos", snapshot.Location)
	require.Equal(t, 28.0, snapshot.Current.Temp)
	require.Equal(t, "Broken Clouds", snapshot.Current.Description)
	require.Equal(t, weather.LevelModerate, snapshot.Risks.HeatStress)
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient("key-123", server.URL)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Nowhere")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=404")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "")
	require.Error(t, err)
}
