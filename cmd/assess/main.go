package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"floodaid/internal/api"
	"floodaid/internal/config"
	"floodaid/internal/detector"
	"floodaid/internal/metrics"
	"floodaid/internal/models"
	"floodaid/internal/weather"
)

const maxWorkers = 8

type weatherSource interface {
	Fetch(ctx context.Context, city string) models.WeatherReading
}

// cityAssessment holds the result for a single city
type cityAssessment struct {
	City     string
	Reading  models.WeatherReading
	Risk     models.RiskAssessment
	Advisory string
	Phase    string
	Duration time.Duration
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic(err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		panic(err)
	}
	defer zap.L().Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway := weather.NewGateway(api.NewOpenWeatherClient(api.OpenWeatherParams{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Country: cfg.Weather.Country,
		Timeout: cfg.Weather.Timeout,
	}))

	start := time.Now()
	results := assessCities(ctx, gateway, cfg.Weather.Cities)

	for _, r := range results {
		zap.L().Info("city assessed",
			zap.String("city", r.City),
			zap.Bool("live", r.Reading.Live),
			zap.Float64("humidity", r.Reading.Humidity),
			zap.String("description", r.Reading.Description),
			zap.String("risk_level", string(r.Risk.Level)),
			zap.Int("risk_score", r.Risk.Score),
			zap.Strings("factors", r.Risk.Factors),
			zap.String("phase", r.Phase),
			zap.String("advisory", r.Advisory),
			zap.Duration("duration", r.Duration),
		)
	}

	zap.L().Info("assessment complete",
		zap.Int("cities", len(results)),
		zap.Int("elevated", countElevated(results)),
		zap.Duration("duration", time.Since(start)),
	)
}

// assessCities fetches and scores every city with a bounded worker pool.
// Results come back in city order.
func assessCities(ctx context.Context, source weatherSource, cities []string) []cityAssessment {
	if len(cities) == 0 {
		return nil
	}

	numWorkers := maxWorkers
	if len(cities) < numWorkers {
		numWorkers = len(cities)
	}

	jobs := make(chan int, len(cities))
	results := make(chan indexedAssessment, len(cities))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(ctx, source, cities, jobs, results, &wg)
	}

	for i := range cities {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexedAssessment, 0, len(cities))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	out := make([]cityAssessment, len(collected))
	for i, r := range collected {
		out[i] = r.cityAssessment
	}
	return out
}

type indexedAssessment struct {
	index int
	cityAssessment
}

func worker(ctx context.Context, source weatherSource, cities []string, jobs <-chan int, results chan<- indexedAssessment, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range jobs {
		results <- indexedAssessment{index: i, cityAssessment: assessCity(ctx, source, cities[i])}
	}
}

func assessCity(ctx context.Context, source weatherSource, city string) cityAssessment {
	start := time.Now()

	reading := source.Fetch(ctx, city)
	risk := detector.AssessFloodRisk(reading)
	metrics.RecordRiskAssessment(string(risk.Level))

	return cityAssessment{
		City:     city,
		Reading:  reading,
		Risk:     risk,
		Advisory: detector.Advisory(risk.Level),
		Phase:    detector.RecommendedPhase(risk),
		Duration: time.Since(start),
	}
}

// countElevated counts cities at High risk or above
func countElevated(results []cityAssessment) int {
	n := 0
	for _, r := range results {
		if r.Risk.Level == models.RiskHigh || r.Risk.Level == models.RiskCritical {
			n++
		}
	}
	return n
}
