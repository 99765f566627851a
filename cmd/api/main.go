package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/octobees/lead-capture/internal/config"
	"github.com/octobees/lead-capture/internal/crm"
	"github.com/octobees/lead-capture/internal/handler"
	"github.com/octobees/lead-capture/internal/router"
	"github.com/octobees/lead-capture/internal/service"
)

const serviceName = "lead-capture"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLog(serviceName, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	crmClient := crm.NewClient(nil, cfg.CRM.BaseURL, cfg.CRM.Auth, cfg.CRM.Timeout)

	lookupService := service.NewLookupService(crmClient)
	leadsService := service.NewLeadsService(crmClient, cfg.CRM.AdminURL, cfg.CRM.LeadFirstName, cfg.CRM.LeadLastName)

	e := router.New(cfg, router.Handlers{
		Form:  handler.NewFormHandler(),
		Leads: handler.NewLeadHandler(lookupService, leadsService, logger),
	}, logger)
	e.Server.ErrorLog = zap.NewStdLog(logger.Desugar())

	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("startup", "port", cfg.Port, "crm", cfg.CRM.BaseURL)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Infow("shutdown", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server error", "error", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}

func newLog(service, level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true
	zcfg.InitialFields = map[string]any{
		"service": service,
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
