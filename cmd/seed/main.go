package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/postgres"
	"github.com/dummy-bank/portfolio-api/internal/seed"
	"github.com/dummy-bank/portfolio-api/internal/store"
	"github.com/joho/godotenv"
)

// Drops all tables and reloads the demo dataset.
func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pgConfig := postgres.NewConfigFromEnv().Setup()
	db, err := postgres.NewDB(ctx, pgConfig)
	if err != nil {
		zapLogger.Fatalf("%s: can't connect to db", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.DropSchema(ctx); err != nil {
		zapLogger.Fatalf("%s: can't drop schema", err)
	}
	if err := st.InitSchema(ctx); err != nil {
		zapLogger.Fatalf("%s: can't init schema", err)
	}
	if err := seed.Apply(ctx, st, zapLogger); err != nil {
		zapLogger.Fatalf("%s: can't apply seed data", err)
	}

	zapLogger.Infof("database reset complete")
}
