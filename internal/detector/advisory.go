package detector

import "floodaid/internal/models"

var advisories = map[models.RiskLevel]string{
	models.RiskCritical: "Severe flood risk. Move to higher ground or the nearest shelter now and call Rescue 1122 if you need help.",
	models.RiskHigh:     "High flood risk. Keep your emergency kit ready and be prepared to evacuate at short notice.",
	models.RiskModerate: "Moderate flood risk. Monitor weather updates and avoid low-lying areas.",
	models.RiskLow:      "Low flood risk. Stay informed and review your family emergency plan.",
}

// Advisory returns the one-line guidance for a level
func Advisory(level models.RiskLevel) string {
	if a, ok := advisories[level]; ok {
		return a
	}
	return advisories[models.RiskLow]
}

// RecommendedPhase picks the safety-tip phase to surface for an assessment.
// Active rainfall at High or Critical means the flood is under way.
func RecommendedPhase(assessment models.RiskAssessment) string {
	if rank(assessment.Level) >= rank(models.RiskHigh) && hasFactor(assessment, FactorRainfall) {
		return models.PhaseDuringFlood
	}
	return models.PhaseBeforeFlood
}

func rank(level models.RiskLevel) int {
	switch level {
	case models.RiskCritical:
		return 3
	case models.RiskHigh:
		return 2
	case models.RiskModerate:
		return 1
	default:
		return 0
	}
}

func hasFactor(assessment models.RiskAssessment, factor string) bool {
	for _, f := range assessment.Factors {
		if f == factor {
			return true
		}
	}
	return false
}
