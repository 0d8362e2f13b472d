// Package main provides the entry point for the BookTrack server application.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack-server/internal/config"
	"github.com/booktrackapp/booktrack-server/internal/di"
	"github.com/booktrackapp/booktrack-server/internal/di/providers"
	"github.com/booktrackapp/booktrack-server/internal/logger"
)

func main() {
	var flags config.Flags
	flag.StringVar(&flags.Environment, "env", "", "environment (development or production)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&flags.Port, "port", "", "HTTP listen port")
	flag.StringVar(&flags.DataPath, "data", "", "database directory")
	flag.StringVar(&flags.EnvFile, "env-file", "", "path to .env file")
	flag.Parse()

	// Create DI container
	injector := di.NewContainer(flags)

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The database uses a wrapper type, so close it explicitly
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("Goodbye")
}
