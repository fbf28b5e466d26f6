package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"matchroom-server/internal/core"
)

// Server owns the HTTP surface and holds the room services every handler
// needs, constructed once at process start.
type Server struct {
	cfg      *core.Config
	registry *core.Registry
	hub      *core.Hub
	upgrader websocket.Upgrader
}

func New(cfg *core.Config, registry *core.Registry, hub *core.Hub) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if cfg.AllowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == cfg.AllowedOrigin
			},
		},
	}
}

// Routes wires the router and CORS policy.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", s.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.WsHandler)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{s.cfg.AllowedOrigin}),
	)(r)
}

func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// Serve runs until SIGINT/SIGTERM, then drains the HTTP server and stops
// the hub.
func (s *Server) Serve() error {
	server := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	s.hub.Stop()
	return nil
}
