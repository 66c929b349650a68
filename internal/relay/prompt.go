package relay

import (
	"fmt"
	"strings"

	"floodaid/internal/models"
)

// PromptContext is the situational data embedded in the system prompt
type PromptContext struct {
	Reading           models.WeatherReading
	Risk              models.RiskAssessment
	AvailableShelters int
}

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// BuildPrompt renders the system prompt, the last MaxHistory exchanges and
// the new message as a single transcript ending in an open assistant turn.
func BuildPrompt(pc PromptContext, history []models.Exchange, message string) string {
	var b strings.Builder

	b.WriteString(systemPrompt(pc))
	b.WriteString("\n\nCONVERSATION:\n")

	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	for _, ex := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n\n", ex.User, ex.Assistant)
	}

	fmt.Fprintf(&b, "User: %s\nAssistant:", message)
	return b.String()
}

func systemPrompt(pc PromptContext) string {
	r := pc.Reading

	factors := "None"
	if len(pc.Risk.Factors) > 0 {
		factors = strings.Join(pc.Risk.Factors, ", ")
	}

	var b strings.Builder
	b.WriteString("You are FloodAid AI, an expert disaster relief assistant for Pakistan with deep knowledge of:\n")
	b.WriteString("- Flood safety and emergency protocols\n")
	b.WriteString("- Pakistani geography and infrastructure\n")
	b.WriteString("- Local relief organizations and resources\n")
	b.WriteString("- Medical emergency response\n")
	b.WriteString("- Psychological support during disasters\n")

	b.WriteString("CURRENT SITUATION:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "📍 Location: %s, Pakistan\n", r.City)
	fmt.Fprintf(&b, "🌡️ Temperature: %.1f°C (feels like %.1f°C)\n", r.Temperature, r.FeelsLike)
	fmt.Fprintf(&b, "🌦️ Conditions: %s\n", r.Description)
	fmt.Fprintf(&b, "💧 Humidity: %.0f%% | 💨 Wind: %.1f m/s\n", r.Humidity, r.WindSpeed)
	fmt.Fprintf(&b, "⚠️ Flood Risk: %s (%d/100)\n", pc.Risk.Level, pc.Risk.Score)
	fmt.Fprintf(&b, "🚨 Risk Factors: %s\n", factors)
	b.WriteString(divider + "\n")

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("✅ Be empathetic and supportive - people are scared\n")
	b.WriteString("✅ Provide specific, actionable advice\n")
	b.WriteString("✅ Use simple Urdu terms naturally (السلام علیکم, شکریہ, etc.)\n")
	b.WriteString("✅ Prioritize life-saving information\n")
	b.WriteString("✅ Mention specific shelter locations when relevant\n")
	b.WriteString("✅ If medical emergency, urgently direct to Rescue 1122 (1122)\n")
	b.WriteString("✅ Keep responses concise but complete (3-6 sentences)\n")
	b.WriteString("✅ Use bullet points for lists\n")
	b.WriteString("✅ Show empathy for trauma and fear\n")

	b.WriteString("EMERGENCY CONTACTS:\n")
	b.WriteString("🆘 Rescue 1122: **1122** (Primary Emergency)\n")
	b.WriteString("🚑 Edhi Ambulance: **115**\n")
	b.WriteString("📞 PDMA Helpline: **1129**\n")
	fmt.Fprintf(&b, "Available shelters in %s: %d", r.City, pc.AvailableShelters)

	return b.String()
}
