// Package detector scores flood risk from weather readings.
package detector

import (
	"strings"

	"floodaid/internal/models"
)

// Rule weights. Humidity contributes at most one of its two tiers.
const (
	veryHighHumidityThreshold = 85.0
	highHumidityThreshold     = 75.0
	lowPressureThreshold      = 1000.0
	poorVisibilityThreshold   = 5.0 // km

	veryHighHumidityPoints = 30
	highHumidityPoints     = 20
	rainfallPoints         = 40
	lowPressurePoints      = 20
	poorVisibilityPoints   = 10
)

// Factor labels reported alongside the score
const (
	FactorVeryHighHumidity = "Very high humidity"
	FactorHighHumidity     = "High humidity"
	FactorRainfall         = "Active rainfall"
	FactorLowPressure      = "Low atmospheric pressure"
	FactorPoorVisibility   = "Poor visibility"
)

// AssessFloodRisk scores a reading with additive rules and buckets the
// total into a level. It is a pure function of the reading.
func AssessFloodRisk(reading models.WeatherReading) models.RiskAssessment {
	score := 0
	factors := []string{}

	switch {
	case reading.Humidity > veryHighHumidityThreshold:
		score += veryHighHumidityPoints
		factors = append(factors, FactorVeryHighHumidity)
	case reading.Humidity > highHumidityThreshold:
		score += highHumidityPoints
		factors = append(factors, FactorHighHumidity)
	}

	if IsRaining(reading) {
		score += rainfallPoints
		factors = append(factors, FactorRainfall)
	}

	if reading.Pressure < lowPressureThreshold {
		score += lowPressurePoints
		factors = append(factors, FactorLowPressure)
	}

	if reading.Visibility < poorVisibilityThreshold {
		score += poorVisibilityPoints
		factors = append(factors, FactorPoorVisibility)
	}

	level := LevelForScore(score)
	return models.RiskAssessment{
		Level:   level,
		Score:   score,
		Factors: factors,
		Color:   ColorForLevel(level),
	}
}

// IsRaining reports whether the reading describes active rainfall
func IsRaining(reading models.WeatherReading) bool {
	return strings.Contains(strings.ToLower(reading.Description), "rain") || reading.Condition == "Rain"
}

// LevelForScore maps a score to its risk bucket
func LevelForScore(score int) models.RiskLevel {
	switch {
	case score >= 70:
		return models.RiskCritical
	case score >= 40:
		return models.RiskHigh
	case score >= 20:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// ColorForLevel returns the display color of a level
func ColorForLevel(level models.RiskLevel) string {
	switch level {
	case models.RiskCritical:
		return "red"
	case models.RiskHigh:
		return "orange"
	case models.RiskModerate:
		return "yellow"
	default:
		return "green"
	}
}
