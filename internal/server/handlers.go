package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"floodaid/internal/detector"
	"floodaid/internal/metrics"
	"floodaid/internal/models"
	"floodaid/internal/relay"
	"floodaid/internal/stats"
)

// sosRaiseTimeout bounds composing and dispatching one alert
const sosRaiseTimeout = 15 * time.Second

type shelterView struct {
	models.Shelter
	AvailabilityStatus string `json:"availability_status"`
}

type weatherResponse struct {
	Reading          models.WeatherReading `json:"reading"`
	Risk             models.RiskAssessment `json:"risk"`
	Advisory         string                `json:"advisory"`
	RecommendedPhase string                `json:"recommended_phase"`
	SafetyTips       []string              `json:"safety_tips"`
}

type sosRequest struct {
	City      string `json:"city"`
	Reporter  string `json:"reporter"`
	Situation string `json:"situation"`
}

type sosResponse struct {
	Alert      models.SOSAlert `json:"alert"`
	Dispatched bool            `json:"dispatched"`
}

type chatRequest struct {
	Message string          `json:"message"`
	City    string          `json:"city"`
	History json.RawMessage `json:"history"`
}

type chatResponse struct {
	Kind   relay.Kind `json:"kind"`
	Reply  string     `json:"reply"`
	Status int        `json:"status,omitempty"`
}

// handleHealth returns the server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleShelters(w http.ResponseWriter, r *http.Request) {
	shelters := s.catalog.Shelters()
	if city := strings.TrimSpace(r.URL.Query().Get("city")); city != "" {
		shelters = s.catalog.SheltersIn(city)
	}

	views := make([]shelterView, 0, len(shelters))
	for _, sh := range shelters {
		views = append(views, shelterView{Shelter: sh, AvailabilityStatus: sh.AvailabilityStatus()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(views),
		"shelters": views,
	})
}

func (s *Server) handleContacts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  s.catalog.ContactCount(),
		"groups": s.catalog.ContactGroups(),
	})
}

func (s *Server) handleMedicalTips(w http.ResponseWriter, _ *http.Request) {
	tips := s.catalog.MedicalTips()
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(tips),
		"tips":  tips,
	})
}

func (s *Server) handleReliefCamps(w http.ResponseWriter, r *http.Request) {
	camps := s.catalog.ReliefCamps()
	if city := strings.TrimSpace(r.URL.Query().Get("city")); city != "" {
		camps = s.catalog.ReliefCampsIn(city)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(camps),
		"camps": camps,
	})
}

func (s *Server) handleDonationNeeds(w http.ResponseWriter, r *http.Request) {
	needs := s.catalog.DonationNeeds()

	if raw := strings.TrimSpace(r.URL.Query().Get("priority")); raw != "" {
		priority, ok := parsePriority(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "priority must be one of Critical, High, Medium")
			return
		}
		needs = s.catalog.DonationNeedsByPriority(priority)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(needs),
		"needs": needs,
	})
}

func (s *Server) handleSafetyTips(w http.ResponseWriter, r *http.Request) {
	phase := strings.TrimSpace(r.URL.Query().Get("phase"))
	if phase == "" {
		writeJSON(w, http.StatusOK, map[string]any{"phases": s.catalog.SafetyPhases()})
		return
	}

	tips, ok := s.catalog.SafetyTips(phase)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown phase: "+phase)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"phase": phase,
		"tips":  tips,
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stats.ComputeCatalog(s.catalog))
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := s.cityOrDefault(r.URL.Query().Get("city"))

	reading := s.weather.Fetch(r.Context(), city)
	risk := detector.AssessFloodRisk(reading)
	metrics.RecordRiskAssessment(string(risk.Level))

	phase := detector.RecommendedPhase(risk)
	tips, _ := s.catalog.SafetyTips(phase)

	writeJSON(w, http.StatusOK, weatherResponse{
		Reading:          reading,
		Risk:             risk,
		Advisory:         detector.Advisory(risk.Level),
		RecommendedPhase: phase,
		SafetyTips:       tips,
	})
}

func (s *Server) handleSOS(w http.ResponseWriter, r *http.Request) {
	// an empty body raises an anonymous alert for the default city
	var req sosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// a client hanging up must not cancel the dispatch of its alert
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), sosRaiseTimeout)
	defer cancel()

	alert, dispatched := s.alerts.Raise(ctx, s.cityOrDefault(req.City), req.Reporter, req.Situation)
	writeJSON(w, http.StatusCreated, sosResponse{Alert: alert, Dispatched: dispatched})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	history, err := normalizeHistory(req.History)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history: "+err.Error())
		return
	}

	result := s.relay.Ask(r.Context(), message, history, s.cityOrDefault(req.City))
	writeJSON(w, http.StatusOK, chatResponse{
		Kind:   result.Kind,
		Reply:  relay.Render(result),
		Status: result.Status,
	})
}

func (s *Server) cityOrDefault(city string) string {
	if c := strings.TrimSpace(city); c != "" {
		return c
	}
	return s.defaultCity
}

func parsePriority(raw string) (models.Priority, bool) {
	for _, p := range []models.Priority{models.PriorityCritical, models.PriorityHigh, models.PriorityMedium} {
		if strings.EqualFold(raw, string(p)) {
			return p, true
		}
	}
	return "", false
}
