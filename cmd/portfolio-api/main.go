package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/dummy-bank/portfolio-api/internal/config"
	"github.com/dummy-bank/portfolio-api/internal/handler"
	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/portfolio"
	"github.com/dummy-bank/portfolio-api/internal/postgres"
	"github.com/dummy-bank/portfolio-api/internal/server"
	"github.com/dummy-bank/portfolio-api/internal/store"
	"github.com/joho/godotenv"
)

const (
	_cfgFilePath = "./configs/config.yaml"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("can't detect .env file")
	}

	cfg, err := config.LoadServiceConfig(_cfgFilePath)
	if err != nil {
		log.Fatalf("%s: can't load service cfg", err)
	}

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pgConfig := postgres.NewConfigFromEnv().Setup()
	zapLogger.Debugf("trying to connect to db with: %s", pgConfig)
	db, err := postgres.NewDB(ctx, pgConfig)
	if err != nil {
		zapLogger.Fatalf("%s: can't connect to db", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.InitSchema(ctx); err != nil {
		zapLogger.Fatalf("%s: can't init schema", err)
	}

	service := portfolio.NewService(st, zapLogger)
	h := handler.New(service, zapLogger)

	s := server.NewHTTPServer(ctx, cfg.Port, h.Router(), zapLogger)
	if err := s.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Fatalf("%s: server stopped", err)
	}
}
