// Package weather provides a weather source that always yields a usable reading.
package weather

import (
	"context"
	"time"

	"go.uber.org/zap"

	"floodaid/internal/metrics"
	"floodaid/internal/models"
)

// Provider fetches a live reading for a city
type Provider interface {
	GetCurrentWeather(ctx context.Context, city string) (*models.WeatherReading, error)
}

// Gateway wraps a Provider and substitutes the fallback reading on failure
type Gateway struct {
	provider Provider
}

// NewGateway creates a gateway. A nil provider makes every fetch a fallback.
func NewGateway(provider Provider) *Gateway {
	return &Gateway{provider: provider}
}

// Fetch returns the current reading for city. It never fails: any provider
// error, including a missing API key, yields FallbackReading(city).
func (g *Gateway) Fetch(ctx context.Context, city string) models.WeatherReading {
	start := time.Now()

	if g.provider == nil {
		metrics.RecordWeatherFetch(false, 0)
		return FallbackReading(city)
	}

	reading, err := g.provider.GetCurrentWeather(ctx, city)
	duration := time.Since(start)
	if err != nil || reading == nil {
		zap.L().Warn("weather fetch failed, using fallback reading",
			zap.String("city", city),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		metrics.RecordWeatherFetch(false, duration)
		return FallbackReading(city)
	}

	metrics.RecordWeatherFetch(true, duration)
	return *reading
}

// FallbackReading is the fixed reading used whenever live data is unavailable
func FallbackReading(city string) models.WeatherReading {
	return models.WeatherReading{
		City:        city,
		Temperature: 28.5,
		FeelsLike:   31.0,
		Humidity:    75,
		Pressure:    1010,
		Description: "moderate rain",
		Condition:   "Rain",
		WindSpeed:   4.5,
		Clouds:      80,
		Visibility:  8.0,
		Live:        false,
	}
}
