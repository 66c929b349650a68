package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"floodaid/internal/catalog"
	"floodaid/internal/metrics"
	"floodaid/internal/models"
	"floodaid/internal/relay"
)

// WeatherSource yields a reading for a city and never fails
type WeatherSource interface {
	Fetch(ctx context.Context, city string) models.WeatherReading
}

// AlertRaiser composes and dispatches SOS alerts
type AlertRaiser interface {
	Raise(ctx context.Context, city, reporter, situation string) (models.SOSAlert, bool)
}

// Asker answers chat messages
type Asker interface {
	Ask(ctx context.Context, message string, history []models.Exchange, city string) relay.Result
}

// Deps are the components the HTTP API exposes
type Deps struct {
	Catalog        *catalog.Catalog
	Weather        WeatherSource
	Alerts         AlertRaiser
	Relay          Asker
	DefaultCity    string
	RequestTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	catalog     *catalog.Catalog
	weather     WeatherSource
	alerts      AlertRaiser
	relay       Asker
	defaultCity string
	router      chi.Router
}

// NewServer creates a new HTTP server
func NewServer(deps Deps) *Server {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 60 * time.Second
	}

	s := &Server{
		catalog:     deps.Catalog,
		weather:     deps.Weather,
		alerts:      deps.Alerts,
		relay:       deps.Relay,
		defaultCity: deps.DefaultCity,
		router:      chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(deps.RequestTimeout))

	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/shelters", s.handleShelters)
		r.Get("/contacts", s.handleContacts)
		r.Get("/medical-tips", s.handleMedicalTips)
		r.Get("/relief-camps", s.handleReliefCamps)
		r.Get("/donation-needs", s.handleDonationNeeds)
		r.Get("/safety-tips", s.handleSafetyTips)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/weather", s.handleWeather)
		r.Post("/sos", s.handleSOS)
		r.Post("/chat", s.handleChat)
	})

	return s
}

// ServeHTTP lets the server be used directly as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("http shutdown failed", zap.Error(err))
		}
	}()

	zap.L().Info("http server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request and records its metrics under the route pattern
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, route, ww.Status(), duration)

		zap.L().Debug("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", duration),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
