package models

import "time"

// Priority ranks medical tips and donation needs
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
)

// Shelter represents an emergency shelter. Available never exceeds Capacity.
type Shelter struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Capacity   int      `json:"capacity"`
	Available  int      `json:"available"`
	Facilities []string `json:"facilities"`
	Phone      string   `json:"phone"`
}

// AvailabilityStatus buckets the share of free spaces: "good" above 30%,
// "limited" above 10%, "critical" otherwise.
func (s Shelter) AvailabilityStatus() string {
	if s.Capacity <= 0 {
		return "critical"
	}
	pct := float64(s.Available) / float64(s.Capacity) * 100
	switch {
	case pct > 30:
		return "good"
	case pct > 10:
		return "limited"
	default:
		return "critical"
	}
}

// Contact is one emergency phone line
type Contact struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	Availability string `json:"availability"`
}

// ContactGroup is a named category of emergency contacts
type ContactGroup struct {
	Category string    `json:"category"`
	Contacts []Contact `json:"contacts"`
}

// MedicalTip is a health guideline ranked by priority
type MedicalTip struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// ReliefCamp is a supply distribution point in a city
type ReliefCamp struct {
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Supplies  []string `json:"supplies"`
	Contact   string   `json:"contact"`
	OpenHours string   `json:"open_hours"`
}

// DonationNeed is an item relief efforts are short of
type DonationNeed struct {
	Item     string   `json:"item"`
	Priority Priority `json:"priority"`
	Quantity string   `json:"quantity"`
	Urgency  string   `json:"urgency"`
}

// Safety guideline phases, in display order
const (
	PhaseBeforeFlood = "Before Flood"
	PhaseDuringFlood = "During Flood"
	PhaseAfterFlood  = "After Flood"
)

// SafetyPhase groups the safety tips for one phase of a flood
type SafetyPhase struct {
	Phase string   `json:"phase"`
	Tips  []string `json:"tips"`
}

// WeatherReading is a normalized current-weather observation. Live is false
// when the reading is the fallback substitute.
type WeatherReading struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"` // °C
	FeelsLike   float64 `json:"feels_like"`  // °C
	Humidity    float64 `json:"humidity"`    // %
	Pressure    float64 `json:"pressure"`    // hPa
	Description string  `json:"description"`
	Condition   string  `json:"condition"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
	Clouds      int     `json:"clouds"`     // %
	Visibility  float64 `json:"visibility"` // km
	Live        bool    `json:"live"`
}

// RiskLevel is the flood risk bucket
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskAssessment represents the flood risk derived from a weather reading
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Score   int       `json:"score"`
	Factors []string  `json:"factors"`
	Color   string    `json:"color"` // presentation only
}

// Statistics summarizes the reference catalog.
// PeopleAssisted is an illustrative counter, not measured data.
type Statistics struct {
	ActiveShelters    int     `json:"active_shelters"`
	TotalCapacity     int     `json:"total_capacity"`
	AvailableSpaces   int     `json:"available_spaces"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	ReliefCamps       int     `json:"relief_camps"`
	EmergencyContacts int     `json:"emergency_contacts"`
	PeopleAssisted    int     `json:"people_assisted"`
}

// Exchange is one user message and the assistant reply to it
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// SOSAlert is a composed emergency alert
type SOSAlert struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	City           string         `json:"city"`
	Reporter       string         `json:"reporter"`
	Situation      string         `json:"situation"`
	Reading        WeatherReading `json:"reading"`
	Risk           RiskAssessment `json:"risk"`
	NearestShelter string         `json:"nearest_shelter"`
	Text           string         `json:"text"`
}
