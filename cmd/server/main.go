package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/config"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/funddata"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/logger"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/server"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/tools"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Errorf("Fatal error: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	store := funddata.NewStore(fundSource(cfg, log), log)
	if _, err := store.Dataset(ctx); err != nil {
		// сервер стартует и без справочника; фонды подгрузятся при первом запросе
		log.Warn("initial fund data load failed", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)
	registry := tools.Registry(cfg, tracer, store)
	router := server.New(registry, store, log).Router()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.Int("port", cfg.Port), zap.Int("tools", len(registry)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// fundSource собирает цепочку: удаленный CSV (если задан), локальный файл, встроенный набор
func fundSource(cfg *config.Config, log *zap.Logger) funddata.Source {
	var sources []funddata.Source
	if cfg.FundsCSVURL != "" {
		client := &http.Client{Timeout: cfg.FundsFetchTimeout}
		sources = append(sources, funddata.NewHTTPSource(client, cfg.FundsCSVURL))
	}
	if cfg.FundsCSVPath != "" {
		sources = append(sources, funddata.NewFileSource(cfg.FundsCSVPath))
	}
	sources = append(sources, funddata.DefaultStaticSource())

	return funddata.NewCachedSource(funddata.NewFallbackSource(log, sources...), cfg.FundsCacheTTL)
}
