package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"floodaid/internal/catalog"
	"floodaid/internal/config"
	"floodaid/internal/database"
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

	if !cfg.Database.Enabled() {
		zap.L().Fatal("no database configured, set the DB_* variables or DATABASE_DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewDB(ctx, cfg.Database.DSN)
	if err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	cat := catalog.Default()
	if err := db.SeedCatalog(ctx, cat); err != nil {
		zap.L().Fatal("failed to seed catalog", zap.Error(err))
	}

	zap.L().Info("seed complete",
		zap.Int("shelters", len(cat.Shelters())),
		zap.Int("contacts", cat.ContactCount()),
		zap.Int("medical_tips", len(cat.MedicalTips())),
		zap.Int("relief_camps", len(cat.ReliefCamps())),
		zap.Int("donation_needs", len(cat.DonationNeeds())),
		zap.Int("safety_phases", len(cat.SafetyPhases())),
	)
}
