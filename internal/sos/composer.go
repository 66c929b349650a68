// Package sos composes emergency alerts and hands them to the dispatch desk.
package sos

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"floodaid/internal/catalog"
	"floodaid/internal/detector"
	"floodaid/internal/metrics"
	"floodaid/internal/models"
)

const (
	timestampLayout   = "2006-01-02 15:04:05"
	anonymousReporter = "Anonymous User"
	defaultSituation  = "Emergency assistance required"
	noShelterLine     = "📍 Contact local PDMA at 1129 for nearest shelter"
)

// WeatherSource yields a reading for a city and never fails
type WeatherSource interface {
	Fetch(ctx context.Context, city string) models.WeatherReading
}

// Publisher delivers a composed alert to responders
type Publisher interface {
	Dispatch(ctx context.Context, alert models.SOSAlert) error
}

// Composer builds SOS alerts from live conditions and the shelter catalog
type Composer struct {
	catalog   *catalog.Catalog
	weather   WeatherSource
	clock     clockwork.Clock
	publisher Publisher
}

// Option configures a Composer
type Option func(*Composer)

// WithClock overrides the wall clock used for alert timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(c *Composer) { c.clock = clock }
}

// WithPublisher enables dispatch of raised alerts
func WithPublisher(p Publisher) Option {
	return func(c *Composer) { c.publisher = p }
}

// NewComposer creates a Composer
func NewComposer(cat *catalog.Catalog, weather WeatherSource, opts ...Option) *Composer {
	c := &Composer{
		catalog: cat,
		weather: weather,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose fetches conditions for city, assesses the flood risk and renders
// the alert text. Empty reporter and situation get placeholder values.
func (c *Composer) Compose(ctx context.Context, city, reporter, situation string) models.SOSAlert {
	reading := c.weather.Fetch(ctx, city)
	risk := detector.AssessFloodRisk(reading)
	metrics.RecordRiskAssessment(string(risk.Level))

	if strings.TrimSpace(reporter) == "" {
		reporter = anonymousReporter
	}
	if strings.TrimSpace(situation) == "" {
		situation = defaultSituation
	}

	alert := models.SOSAlert{
		ID:             uuid.NewString(),
		CreatedAt:      c.clock.Now(),
		City:           city,
		Reporter:       reporter,
		Situation:      situation,
		Reading:        reading,
		Risk:           risk,
		NearestShelter: c.nearestShelterLine(city),
	}
	alert.Text = render(alert)
	return alert
}

// Raise composes an alert and dispatches it when a publisher is configured.
// A failed dispatch is logged and reported through the returned flag.
func (c *Composer) Raise(ctx context.Context, city, reporter, situation string) (models.SOSAlert, bool) {
	alert := c.Compose(ctx, city, reporter, situation)

	dispatched := false
	if c.publisher != nil {
		if err := c.publisher.Dispatch(ctx, alert); err != nil {
			zap.L().Error("failed to dispatch sos alert",
				zap.String("alert_id", alert.ID),
				zap.String("city", city),
				zap.Error(err),
			)
		} else {
			dispatched = true
		}
	}

	metrics.RecordSOSAlert(dispatched)
	zap.L().Info("sos alert raised",
		zap.String("alert_id", alert.ID),
		zap.String("city", city),
		zap.String("risk_level", string(alert.Risk.Level)),
		zap.Bool("dispatched", dispatched),
	)
	return alert, dispatched
}

func (c *Composer) nearestShelterLine(city string) string {
	shelter, ok := c.catalog.NearestShelter(city)
	if !ok {
		return noShelterLine
	}
	return fmt.Sprintf("📍 %s\n%s\n📞 %s", shelter.Name, shelter.Address, shelter.Phone)
}

func render(a models.SOSAlert) string {
	var b strings.Builder

	b.WriteString("🚨 **EMERGENCY SOS ALERT** 🚨\n")
	fmt.Fprintf(&b, "**TIMESTAMP:** %s\n", a.CreatedAt.Format(timestampLayout))
	fmt.Fprintf(&b, "**LOCATION:** %s, Pakistan\n", a.Reading.City)
	fmt.Fprintf(&b, "**REPORTED BY:** %s\n", a.Reporter)

	b.WriteString("**CURRENT CONDITIONS:**\n")
	fmt.Fprintf(&b, "🌡️ Temperature: %.1f°C\n", a.Reading.Temperature)
	fmt.Fprintf(&b, "💧 Humidity: %.0f%%\n", a.Reading.Humidity)
	fmt.Fprintf(&b, "🌧️ Weather: %s\n", titleCase(a.Reading.Description))
	fmt.Fprintf(&b, "⚠️ Flood Risk: %s (%d/100)\n", a.Risk.Level, a.Risk.Score)

	fmt.Fprintf(&b, "**SITUATION:** %s\n", a.Situation)

	b.WriteString("**IMMEDIATE ACTIONS:**\n")
	b.WriteString("1. Call Rescue 1122 immediately: **1122**\n")
	b.WriteString("2. Move to higher ground if possible\n")
	b.WriteString("3. Share your exact location with emergency services\n")
	b.WriteString("4. Stay on the line with emergency operator\n")

	b.WriteString("**EMERGENCY CONTACTS:**\n")
	b.WriteString("🆘 Rescue 1122: **1122** (Primary Emergency)\n")
	b.WriteString("🚑 Edhi Ambulance: **115**\n")
	b.WriteString("👮 Police Emergency: **15**\n")
	b.WriteString("📞 PDMA Helpline: **1129**\n")

	b.WriteString("**NEAREST SHELTER:**\n")
	b.WriteString(a.NearestShelter)
	b.WriteString("\n")

	b.WriteString("⚠️ **This is an automated emergency alert from FloodAid AI**\n")
	b.WriteString("Help has been notified. Stay calm and follow emergency instructions.")

	return b.String()
}

// titleCase upper-cases the first letter of each word and lower-cases the rest
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
