package main

import (
	"context"
	"dinebook/config"
	"dinebook/di"
	"dinebook/shared/logger"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.Get()

	logger.InitLogger("worker")

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx)
}
