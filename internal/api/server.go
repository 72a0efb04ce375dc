package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/Nomadcxx/jellybucket/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes bucket lookups over HTTP. The bucket set can be replaced
// while serving, for example after a config reload.
type Server struct {
	mu        sync.RWMutex
	set       *bucket.Set
	logger    *logging.Logger
	startTime time.Time
}

// NewServer creates a new API server
func NewServer(set *bucket.Set, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		set:       set,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetBuckets swaps the bucket set used by subsequent requests.
func (s *Server) SetBuckets(set *bucket.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
}

func (s *Server) buckets() *bucket.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// Handler returns the HTTP handler with CORS and API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Mount("/api/v1", s.apiRouter())

	return r
}

func (s *Server) apiRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/bucket", s.handleBucket)
	r.Get("/buckets", s.handleListBuckets)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("api", "Request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("duration", time.Since(start).Round(time.Microsecond)))
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api", "Server starting", logging.F("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api", "Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
