package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"floodaid/internal/models"
)

const (
	defaultWeatherBaseURL = "https://api.openweathermap.org"
	defaultCountryCode    = "PK"
	defaultWeatherTimeout = 5 * time.Second

	// visibility is reported in meters and omitted in clear conditions
	defaultVisibilityMeters = 10000.0
)

// OpenWeatherClient is a client for the OpenWeather current weather API
type OpenWeatherClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	country string
}

// OpenWeatherParams configures an OpenWeatherClient. Zero values fall back to defaults.
type OpenWeatherParams struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

// NewOpenWeatherClient creates a new OpenWeather API client
func NewOpenWeatherClient(params OpenWeatherParams) *OpenWeatherClient {
	if params.BaseURL == "" {
		params.BaseURL = defaultWeatherBaseURL
	}
	if params.Country == "" {
		params.Country = defaultCountryCode
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultWeatherTimeout
	}

	return &OpenWeatherClient{
		client:  &http.Client{Timeout: params.Timeout},
		apiKey:  params.APIKey,
		baseURL: params.BaseURL,
		country: params.Country,
	}
}

// HasAPIKey reports whether a key is configured
func (c *OpenWeatherClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// BuildURL builds the current weather request URL for a city scoped to the configured country
func (c *OpenWeatherClient) BuildURL(city string) string {
	params := url.Values{
		"q":     {city + "," + c.country},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	return c.baseURL + "/data/2.5/weather?" + params.Encode()
}

// GetCurrentWeather fetches and normalizes the current weather for city
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, city string) (*models.WeatherReading, error) {
	if c.apiKey == "" {
		return nil, eris.New("openweather: api key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(city), nil)
	if err != nil {
		return nil, eris.Wrap(err, "openweather: create request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newRequestError("openweather", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Provider: "openweather", StatusCode: resp.StatusCode, Detail: string(body)}
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &DecodeError{Provider: "openweather", Reason: "decode response", Err: err}
	}

	return payload.toReading(city)
}

type currentWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds *struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility *float64 `json:"visibility"`
}

func (r currentWeatherResponse) toReading(requested string) (*models.WeatherReading, error) {
	if r.Main == nil {
		return nil, &DecodeError{Provider: "openweather", Reason: "response has no main block"}
	}
	if len(r.Weather) == 0 {
		return nil, &DecodeError{Provider: "openweather", Reason: "response has no weather conditions"}
	}
	if r.Wind == nil {
		return nil, &DecodeError{Provider: "openweather", Reason: "response has no wind block"}
	}
	if r.Clouds == nil {
		return nil, &DecodeError{Provider: "openweather", Reason: "response has no clouds block"}
	}

	city := r.Name
	if city == "" {
		city = requested
	}

	visibility := defaultVisibilityMeters
	if r.Visibility != nil {
		visibility = *r.Visibility
	}

	return &models.WeatherReading{
		City:        city,
		Temperature: round1(r.Main.Temp),
		FeelsLike:   round1(r.Main.FeelsLike),
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		Description: r.Weather[0].Description,
		Condition:   r.Weather[0].Main,
		WindSpeed:   round1(r.Wind.Speed),
		Clouds:      r.Clouds.All,
		Visibility:  visibility / 1000,
		Live:        true,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
