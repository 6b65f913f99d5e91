// Package health serves a liveness/readiness endpoint for the relay
// demo, reporting the underlying tmi.Client's connection state and
// list of joined channels instead of a bare "OK".
package health

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/nduhart/tmigo/tmi"
)

// Server provides an HTTP health check endpoint.
type Server struct {
	server *http.Server
}

type status struct {
	Connected bool     `json:"connected"`
	Channels  []string `json:"channels"`
}

// New creates a health server backed by client's live state.
func New(addr string, client *tmi.Client) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		st := status{
			Connected: client.IsConnected(),
			Channels:  client.Channels(),
		}
		w.Header().Set("Content-Type", "application/json")
		if !st.Connected {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(st)
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	log.Printf("Health check server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down health check server...")
	return s.server.Shutdown(ctx)
}
