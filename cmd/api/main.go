package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"fiscalsim/adapters/postgres"
	"fiscalsim/api"
	"fiscalsim/app"
	"fiscalsim/internal"
	"fiscalsim/internal/config"
	"fiscalsim/internal/safety"
	"fiscalsim/internal/sim"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.NewMigrationRunner().Run(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	driver := sim.NewDriver(safety.DefaultThresholds(), logger)
	service := app.NewProjectionService(
		driver,
		postgres.NewScenarioRepository(db),
		postgres.NewProjectionRepository(db),
	)

	server := api.NewServer(service, logger)
	addr := ":" + cfg.Server.Port
	logger.Info("fiscalsim api listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
