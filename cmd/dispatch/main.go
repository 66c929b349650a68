package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"floodaid/internal/config"
	"floodaid/internal/models"
	"floodaid/internal/sos"
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

	if !cfg.Redis.Enabled() {
		zap.L().Fatal("no redis configured, set REDIS_ADDR")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostname, _ := os.Hostname()
	consumer := sos.NewConsumer(redisClient, cfg.Redis.Stream, cfg.Redis.Group, "desk-"+hostname)

	zap.L().Info("dispatch desk started",
		zap.String("stream", cfg.Redis.Stream),
		zap.String("group", cfg.Redis.Group),
	)

	if err := consumer.Run(ctx, logAlert); err != nil {
		zap.L().Fatal("consumer stopped", zap.Error(err))
	}
	zap.L().Info("dispatch desk stopped")
}

// logAlert hands an alert to the desk operators through the log
func logAlert(_ context.Context, alert models.SOSAlert) error {
	zap.L().Warn("SOS alert received",
		zap.String("id", alert.ID),
		zap.Time("created_at", alert.CreatedAt),
		zap.String("city", alert.City),
		zap.String("reporter", alert.Reporter),
		zap.String("situation", alert.Situation),
		zap.String("risk_level", string(alert.Risk.Level)),
		zap.String("nearest_shelter", alert.NearestShelter),
	)
	return nil
}
