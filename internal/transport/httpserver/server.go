package httpserver

import (
	"net/http"
	"time"

	"hometeam-go/internal/config"
)

// New builds the HTTP server. WriteTimeout sits above the 30s request
// timeout applied in the router so the middleware deadline fires first.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
