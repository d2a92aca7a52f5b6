package main

import (
	"os"

	"github.com/seas-computing/course-planner/internal/pkg/logger" // Still needed for initial error logging
	"github.com/seas-computing/course-planner/internal/server"
)

// @title Course Planner API
// @version 1.0
// @description API for planning SEAS courses, faculty, meetings and rooms across academic years

// @contact.name SEAS Computing
// @contact.email computing@seas.harvard.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name planner.sid
// @description Session cookie set by /login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
