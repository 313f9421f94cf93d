package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"repodoc/cmd"
	"repodoc/pkg/logging"
	"repodoc/pkg/version"

	"go.uber.org/zap"
)

func main() {
	debug := cmd.DebugRequested(os.Args[1:])
	if err := logging.Setup(debug, "repodoc", version.Get().Version); err != nil {
		log.Printf("Failed to initialize logger, using fallback: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()

	if syncErr := logging.Sync(); syncErr != nil {
		log.Printf("Logger sync failed: %v", syncErr)
	}
	if err != nil {
		logging.Logger.Error("repodoc execution failed", zap.Error(err))
		os.Exit(1)
	}
}
