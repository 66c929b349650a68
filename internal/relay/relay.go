// Package relay forwards user questions to the AI provider with weather and
// flood-risk context, and turns every outcome into a result kind.
package relay

import (
	"context"
	"time"

	"go.uber.org/zap"

	"floodaid/internal/api"
	"floodaid/internal/catalog"
	"floodaid/internal/detector"
	"floodaid/internal/metrics"
	"floodaid/internal/models"
)

// MaxHistory is the number of most recent exchanges sent to the provider
const MaxHistory = 4

// Generator produces text for a prompt
type Generator interface {
	HasAPIKey() bool
	GenerateContent(ctx context.Context, req api.GenerateRequest) (string, error)
}

// WeatherSource yields a reading for a city and never fails
type WeatherSource interface {
	Fetch(ctx context.Context, city string) models.WeatherReading
}

// Relay answers chat messages through a Generator
type Relay struct {
	generator Generator
	weather   WeatherSource
	catalog   *catalog.Catalog
}

// New creates a Relay
func New(generator Generator, weather WeatherSource, cat *catalog.Catalog) *Relay {
	return &Relay{generator: generator, weather: weather, catalog: cat}
}

// Ask sends message, the tail of history and the current conditions for
// city to the provider. It never returns an error: failures are reported
// through the Result kind.
func (r *Relay) Ask(ctx context.Context, message string, history []models.Exchange, city string) Result {
	if r.generator == nil || !r.generator.HasAPIKey() {
		metrics.RecordRelayRequest(string(KindConfigMissing), 0)
		return Result{Kind: KindConfigMissing}
	}

	reading := r.weather.Fetch(ctx, city)
	risk := detector.AssessFloodRisk(reading)
	metrics.RecordRiskAssessment(string(risk.Level))

	prompt := BuildPrompt(PromptContext{
		Reading:           reading,
		Risk:              risk,
		AvailableShelters: len(r.catalog.SheltersIn(city)),
	}, history, message)

	start := time.Now()
	text, err := r.generator.GenerateContent(ctx, NewRequest(prompt))
	duration := time.Since(start)

	if err != nil {
		result := Classify(err)
		zap.L().Warn("ai provider request failed",
			zap.String("kind", string(result.Kind)),
			zap.String("city", city),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		metrics.RecordRelayRequest(string(result.Kind), duration)
		return result
	}

	zap.L().Debug("ai provider answered",
		zap.String("city", city),
		zap.Int("history", min(len(history), MaxHistory)),
		zap.Duration("duration", duration),
	)
	metrics.RecordRelayRequest(string(KindOK), duration)
	return Result{Kind: KindOK, Text: text}
}

// NewRequest wraps a prompt in the fixed generation and safety settings
func NewRequest(prompt string) api.GenerateRequest {
	return api.GenerateRequest{
		Contents: []api.Content{{Parts: []api.Part{{Text: prompt}}}},
		GenerationConfig: api.GenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1024,
			TopP:            0.9,
			TopK:            40,
		},
		SafetySettings: []api.SafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
		},
	}
}
