// Package server wires the reader API, the summarize endpoint, and the
// operational surfaces into one HTTP service.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scoopsfinder/scoopsd/internal/config"
	"github.com/scoopsfinder/scoopsd/internal/feed"
	"github.com/scoopsfinder/scoopsd/internal/identity"
	"github.com/scoopsfinder/scoopsd/internal/notify"
	"github.com/scoopsfinder/scoopsd/internal/pipeline"
	"github.com/scoopsfinder/scoopsd/internal/store"
)

type Server struct {
	config   *config.Config
	sessions *store.Sessions
	pipeline *pipeline.Pipeline
	feed     *feed.Client
	identity *identity.Client
	notifier notify.Notifier
	server   *http.Server
}

func New(cfg *config.Config, sessions *store.Sessions, p *pipeline.Pipeline,
	feedClient *feed.Client, identityClient *identity.Client, notifier notify.Notifier) *Server {

	s := &Server{
		config:   cfg,
		sessions: sessions,
		pipeline: p,
		feed:     feedClient,
		identity: identityClient,
		notifier: notifier,
	}

	identityClient.OnLogin(func(u identity.User) {
		log.Printf("User logged in: %s", u.Name)
	})
	identityClient.OnLogout(func() {
		log.Printf("User logged out")
	})

	s.server = &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: s.routes(),
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/summarize", pipeline.NewHandler(s.pipeline))
	mux.HandleFunc("/api/feed", s.feedHandler)
	mux.HandleFunc("/api/saved", s.savedHandler)
	mux.HandleFunc("/api/saved/validity", s.validityHandler)
	mux.HandleFunc("/api/saved/summary", s.summaryHandler)
	mux.HandleFunc("/api/login", s.loginHandler)
	mux.HandleFunc("/api/logout", s.logoutHandler)

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Stats())
}
