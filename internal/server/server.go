/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the
generative model adapter into the request handlers.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"GeminiMentor/internal/config"
	"GeminiMentor/internal/geminiservice"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// gemini is the model adapter shared by every request. Its model selection
	// is fixed at startup, so no locking is required.
	gemini geminiservice.Generator

	// startTime is reported by the system health endpoint.
	startTime time.Time
}

// NewServer initializes a new Server instance and returns a configured *http.Server.
func NewServer(cfg *config.Config, gemini geminiservice.Generator) *http.Server {
	newApp := &Server{
		port:      cfg.Port,
		gemini:    gemini,
		startTime: time.Now(),
	}

	// The write deadline must outlive the bounded model call so a fallback
	// answer can still be written after a timeout.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(), // Injected from routes.go
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}

	return server
}
