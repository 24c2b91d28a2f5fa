package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/reversi/internal/adapters/webapi"
	"github.com/kiryu-dev/reversi/internal/config"
	"github.com/kiryu-dev/reversi/internal/transport/ws"
	"github.com/kiryu-dev/reversi/internal/usecase/game"
	"github.com/kiryu-dev/reversi/internal/usecase/hub"
	"github.com/kiryu-dev/reversi/internal/usecase/synchronizer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	level := zap.NewAtomicLevel()
	logCfg := zap.NewProductionConfig()
	logCfg.Level = level
	logger, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level", zap.String("level", cfg.LogLevel))
	}
	logger = logger.With(zap.String("server", cfg.Name))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var (
		repo   = webapi.New()
		sync   = synchronizer.New(repo, cfg, logger)
		game   = game.New(logger)
		hub    = hub.New(game, cfg.SyncPeriod, logger)
		server = ws.New(cfg.Addr(), hub, sync, logger)
	)
	errGroup := new(errgroup.Group)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			cancel()
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		server.ListenAndServe(ctx)
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Info("failed to shutdown http server: " + err.Error())
	}
}
