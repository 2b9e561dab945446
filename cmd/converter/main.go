package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cnythb-converter/internal/bootstrap"
	"cnythb-converter/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	app, err := bootstrap.InitTerminal()
	if err != nil {
		logger.Fatal("bootstrap converter", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Loop.Start(gctx)
		return nil
	})
	g.Go(func() error {
		defer app.Loop.Close()
		return app.Form.Run(gctx, os.Stdin, app.Session, app.Loop)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("converter", zap.Error(err))
	}
}
