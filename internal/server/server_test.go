package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodaid/internal/catalog"
	"floodaid/internal/models"
	"floodaid/internal/relay"
	"floodaid/internal/weather"
)

type fakeWeather struct {
	cities []string
}

func (f *fakeWeather) Fetch(_ context.Context, city string) models.WeatherReading {
	f.cities = append(f.cities, city)
	return weather.FallbackReading(city)
}

type fakeAlerts struct {
	city, reporter, situation string
	ctxErr                    error
	hasDeadline               bool
}

func (f *fakeAlerts) Raise(ctx context.Context, city, reporter, situation string) (models.SOSAlert, bool) {
	f.city, f.reporter, f.situation = city, reporter, situation
	f.ctxErr = ctx.Err()
	_, f.hasDeadline = ctx.Deadline()
	return models.SOSAlert{ID: "alert-1", City: city, Reporter: reporter, Text: "SOS " + city}, true
}

type fakeRelay struct {
	result  relay.Result
	message string
	history []models.Exchange
	city    string
}

func (f *fakeRelay) Ask(_ context.Context, message string, history []models.Exchange, city string) relay.Result {
	f.message, f.history, f.city = message, history, city
	return f.result
}

type testEnv struct {
	server  *Server
	weather *fakeWeather
	alerts  *fakeAlerts
	relay   *fakeRelay
}

func newTestEnv() *testEnv {
	env := &testEnv{
		weather: &fakeWeather{},
		alerts:  &fakeAlerts{},
		relay:   &fakeRelay{result: relay.Result{Kind: relay.KindOK, Text: "Stay safe."}},
	}
	env.server = NewServer(Deps{
		Catalog:     catalog.Default(),
		Weather:     env.weather,
		Alerts:      env.alerts,
		Relay:       env.relay,
		DefaultCity: "Lahore",
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHandleHealth(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv()
	env.do(t, http.MethodGet, "/api/v1/statistics", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "floodaid_http_requests_total")
}

func TestHandleShelters(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantCount int
	}{
		{name: "all", target: "/api/v1/shelters", wantCount: 10},
		{name: "by city", target: "/api/v1/shelters?city=karachi", wantCount: 2},
		{name: "unknown city", target: "/api/v1/shelters?city=Gilgit", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestEnv().do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Count    int `json:"count"`
				Shelters []struct {
					Name               string `json:"name"`
					AvailabilityStatus string `json:"availability_status"`
				} `json:"shelters"`
			}
			decode(t, rec, &body)
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Shelters, tt.wantCount)
			for _, s := range body.Shelters {
				assert.NotEmpty(t, s.AvailabilityStatus)
			}
		})
	}
}

func TestHandleContacts(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/api/v1/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int                   `json:"count"`
		Groups []models.ContactGroup `json:"groups"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 10, body.Count)
	require.Len(t, body.Groups, 3)
	assert.Equal(t, "Emergency Services", body.Groups[0].Category)
}

func TestHandleMedicalTips(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/api/v1/medical-tips", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 6, body.Count)
}

func TestHandleReliefCamps(t *testing.T) {
	env := newTestEnv()

	var all, lahore struct {
		Count int `json:"count"`
	}
	decode(t, env.do(t, http.MethodGet, "/api/v1/relief-camps", ""), &all)
	decode(t, env.do(t, http.MethodGet, "/api/v1/relief-camps?city=LAHORE", ""), &lahore)

	assert.Equal(t, 6, all.Count)
	assert.Equal(t, 4, lahore.Count)
}

func TestHandleDonationNeeds(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
	}{
		{name: "all", target: "/api/v1/donation-needs", wantStatus: http.StatusOK, wantCount: 10},
		{name: "critical", target: "/api/v1/donation-needs?priority=Critical", wantStatus: http.StatusOK, wantCount: 4},
		{name: "case insensitive", target: "/api/v1/donation-needs?priority=medium", wantStatus: http.StatusOK, wantCount: 2},
		{name: "unknown priority", target: "/api/v1/donation-needs?priority=Low", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestEnv().do(t, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var body struct {
				Count int `json:"count"`
			}
			decode(t, rec, &body)
			assert.Equal(t, tt.wantCount, body.Count)
		})
	}
}

func TestHandleSafetyTips(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/safety-tips", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Phases []models.SafetyPhase `json:"phases"`
	}
	decode(t, rec, &all)
	require.Len(t, all.Phases, 3)
	assert.Equal(t, models.PhaseBeforeFlood, all.Phases[0].Phase)

	rec = env.do(t, http.MethodGet, "/api/v1/safety-tips?phase=during%20flood", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one struct {
		Tips []string `json:"tips"`
	}
	decode(t, rec, &one)
	assert.NotEmpty(t, one.Tips)

	rec = env.do(t, http.MethodGet, "/api/v1/safety-tips?phase=Monsoon", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatistics(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/api/v1/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.Statistics
	decode(t, rec, &body)
	assert.Equal(t, 10, body.ActiveShelters)
	assert.Equal(t, 1950, body.AvailableSpaces)
	assert.Equal(t, 4150, body.TotalCapacity)
	assert.Equal(t, 53.0, body.OccupancyRate)
	assert.Equal(t, 6, body.ReliefCamps)
	assert.Equal(t, 10, body.EmergencyContacts)
}

func TestHandleWeather(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/weather?city=Multan", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body weatherResponse
	decode(t, rec, &body)
	assert.Equal(t, "Multan", body.Reading.City)
	assert.False(t, body.Reading.Live)
	assert.Equal(t, models.RiskHigh, body.Risk.Level)
	assert.Equal(t, 40, body.Risk.Score)
	assert.Equal(t, "orange", body.Risk.Color)
	assert.NotEmpty(t, body.Advisory)
	assert.Equal(t, models.PhaseDuringFlood, body.RecommendedPhase)
	assert.NotEmpty(t, body.SafetyTips)

	env.do(t, http.MethodGet, "/api/v1/weather", "")
	assert.Equal(t, []string{"Multan", "Lahore"}, env.weather.cities)
}

func TestHandleSOS(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/sos", `{"city":"Karachi","reporter":"Bilal","situation":"Roof collapse"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body sosResponse
	decode(t, rec, &body)
	assert.True(t, body.Dispatched)
	assert.Equal(t, "alert-1", body.Alert.ID)
	assert.Equal(t, "Karachi", env.alerts.city)
	assert.Equal(t, "Bilal", env.alerts.reporter)
	assert.Equal(t, "Roof collapse", env.alerts.situation)
}

func TestHandleSOS_EmptyBody(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/sos", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Lahore", env.alerts.city)
	assert.Empty(t, env.alerts.reporter)
}

func TestHandleSOS_ClientGoneStillDispatches(t *testing.T) {
	env := newTestEnv()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sos", strings.NewReader(`{"city":"Multan"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Multan", env.alerts.city)
	assert.NoError(t, env.alerts.ctxErr, "dispatch context must outlive the request")
	assert.True(t, env.alerts.hasDeadline)
}

func TestHandleSOS_InvalidJSON(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodPost, "/api/v1/sos", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSOS_MethodNotAllowed(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/api/v1/sos", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleChat(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/chat",
		`{"message":" Where is the nearest shelter? ","city":"Karachi","history":[["hi","hello"]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body chatResponse
	decode(t, rec, &body)
	assert.Equal(t, relay.KindOK, body.Kind)
	assert.Equal(t, "Stay safe.", body.Reply)
	assert.Equal(t, "Where is the nearest shelter?", env.relay.message)
	assert.Equal(t, "Karachi", env.relay.city)
	assert.Equal(t, []models.Exchange{{User: "hi", Assistant: "hello"}}, env.relay.history)
}

func TestHandleChat_FallbackKind(t *testing.T) {
	env := newTestEnv()
	env.relay.result = relay.Result{Kind: relay.KindUpstreamError, Status: http.StatusServiceUnavailable}

	rec := env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"help"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body chatResponse
	decode(t, rec, &body)
	assert.Equal(t, relay.KindUpstreamError, body.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, body.Status)
	assert.Contains(t, body.Reply, "**1122**")
	assert.Equal(t, "Lahore", env.relay.city)
}

func TestHandleChat_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "nope"},
		{name: "missing message", body: `{"city":"Lahore"}`},
		{name: "blank message", body: `{"message":"   "}`},
		{name: "history not a list", body: `{"message":"hi","history":"yesterday"}`},
		{name: "history pair too short", body: `{"message":"hi","history":[["only one"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestEnv().do(t, http.MethodPost, "/api/v1/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
