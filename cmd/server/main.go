package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"floodaid/internal/api"
	"floodaid/internal/catalog"
	"floodaid/internal/config"
	"floodaid/internal/database"
	"floodaid/internal/relay"
	"floodaid/internal/server"
	"floodaid/internal/sos"
	"floodaid/internal/weather"
)

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

	cat := loadCatalog(ctx, cfg.Database)

	gateway := weather.NewGateway(api.NewOpenWeatherClient(api.OpenWeatherParams{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Country: cfg.Weather.Country,
		Timeout: cfg.Weather.Timeout,
	}))
	if cfg.Weather.APIKey == "" {
		zap.L().Warn("OPENWEATHER_API_KEY not set, serving fallback weather readings")
	}

	gemini := api.NewGeminiClient(api.GeminiParams{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if !gemini.HasAPIKey() {
		zap.L().Warn("GOOGLE_API_KEY not set, chat replies will report missing configuration")
	}

	var opts []sos.Option
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close() //nolint:errcheck

		if err := redisClient.Ping(ctx).Err(); err != nil {
			zap.L().Warn("redis unreachable, alerts will be composed but not dispatched",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		opts = append(opts, sos.WithPublisher(sos.NewDispatcher(redisClient, cfg.Redis.Stream)))
		zap.L().Info("sos dispatch enabled", zap.String("stream", cfg.Redis.Stream))
	}

	srv := server.NewServer(server.Deps{
		Catalog:        cat,
		Weather:        gateway,
		Alerts:         sos.NewComposer(cat, gateway, opts...),
		Relay:          relay.New(gemini, gateway, cat),
		DefaultCity:    cfg.Weather.DefaultCity,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
		zap.L().Fatal("http server failed", zap.Error(err))
	}
	zap.L().Info("server stopped")
}

// loadCatalog reads the catalog from MySQL when a DSN is configured and
// falls back to the built-in data otherwise or on any failure.
func loadCatalog(ctx context.Context, cfg config.DatabaseConfig) *catalog.Catalog {
	if !cfg.Enabled() {
		return catalog.Default()
	}

	db, err := database.NewDB(ctx, cfg.DSN)
	if err != nil {
		zap.L().Warn("database unavailable, using built-in catalog", zap.Error(err))
		return catalog.Default()
	}
	defer db.Close() //nolint:errcheck

	cat, err := db.LoadCatalog(ctx)
	if err != nil {
		zap.L().Warn("catalog load failed, using built-in catalog", zap.Error(err))
		return catalog.Default()
	}

	zap.L().Info("catalog loaded from database", zap.Int("shelters", len(cat.Shelters())))
	return cat
}
