package main

import (
	"os"

	"github.com/fstr/pereval/internal/pkg/logger"
	"github.com/fstr/pereval/internal/server"
)

// @title Pereval API
// @version 1.0
// @description REST API for the mountain-pass registry: submit, fetch, search and update pass records

// @contact.name API Support
// @contact.email support@pereval.online

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
