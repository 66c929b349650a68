package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Weather and risk metrics
var (
	// WeatherFetchesTotal counts gateway fetches by outcome ("live" or "fallback")
	WeatherFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_weather_fetches_total",
			Help: "Total weather fetches by outcome",
		},
		[]string{"outcome"},
	)

	// WeatherFetchDuration tracks time spent calling the weather provider
	WeatherFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floodaid_weather_fetch_duration_seconds",
			Help:    "Duration of weather provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// RiskAssessmentsTotal counts flood risk assessments by level
	RiskAssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_risk_assessments_total",
			Help: "Total flood risk assessments by resulting level",
		},
		[]string{"level"},
	)
)

// Relay and SOS metrics
var (
	// RelayRequestsTotal counts conversational relay calls by result kind
	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_relay_requests_total",
			Help: "Total conversational relay requests by result kind",
		},
		[]string{"kind"},
	)

	// RelayRequestDuration tracks time spent waiting on the AI provider
	RelayRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floodaid_relay_request_duration_seconds",
			Help:    "Duration of AI provider calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	// SOSAlertsTotal counts composed SOS alerts by dispatch status
	SOSAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_sos_alerts_total",
			Help: "Total SOS alerts composed, labelled by whether they were dispatched",
		},
		[]string{"dispatched"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "floodaid_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Database metrics
var (
	// DBQueriesTotal tracks the total number of database queries
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floodaid_db_queries_total",
			Help: "Total number of database queries executed",
		},
		[]string{"query_type", "table", "status"},
	)

	// DBQueryDuration tracks the duration of database queries
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "floodaid_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floodaid_db_connections_open",
			Help: "Number of established connections both in use and idle",
		},
	)

	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floodaid_db_connections_in_use",
			Help: "Number of connections currently in use",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floodaid_db_connections_idle",
			Help: "Number of idle connections",
		},
	)
)

var (
	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floodaid_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floodaid_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordWeatherFetch records one gateway fetch
func RecordWeatherFetch(live bool, duration time.Duration) {
	outcome := "fallback"
	if live {
		outcome = "live"
	}
	WeatherFetchesTotal.WithLabelValues(outcome).Inc()
	WeatherFetchDuration.Observe(duration.Seconds())
}

// RecordRiskAssessment records the level of one assessment
func RecordRiskAssessment(level string) {
	RiskAssessmentsTotal.WithLabelValues(level).Inc()
}

// RecordRelayRequest records one relay call. A zero duration means the
// provider was never contacted and only the counter is updated.
func RecordRelayRequest(kind string, duration time.Duration) {
	RelayRequestsTotal.WithLabelValues(kind).Inc()
	if duration > 0 {
		RelayRequestDuration.Observe(duration.Seconds())
	}
}

// RecordSOSAlert records a composed SOS alert
func RecordSOSAlert(dispatched bool) {
	label := "false"
	if dispatched {
		label = "true"
	}
	SOSAlertsTotal.WithLabelValues(label).Inc()
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery records a database query execution
func RecordDBQuery(queryType, table string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DBQueriesTotal.WithLabelValues(queryType, table, status).Inc()
	DBQueryDuration.WithLabelValues(queryType, table).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(open, inUse, idle int) {
	DBConnectionsOpen.Set(float64(open))
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

func statusLabel(status int) string {
	if status == 0 {
		status = 200
	}
	return strconv.Itoa(status)
}
