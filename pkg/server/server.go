// Package server exposes bundles and schemas over HTTP for local development.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	GET  /downloads/{name}   raw bundle file from the downloads source
//	GET  /schemas/{id}       metadata schema by numeric id
//	GET  /bundle/latest      newest complete bundle (204 when none)
//	POST /bundle             export a posted bundle to the downloads sink
//
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/layoutcfg/pkg/export"
	"github.com/matzehuels/layoutcfg/pkg/resolve"
	"github.com/matzehuels/layoutcfg/pkg/schema"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

const (
	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"
	// HeaderBundleVersion carries the version a bundle was resolved at.
	HeaderBundleVersion = "X-Bundle-Version"

	maxBodyBytes    = 8 << 20
	shutdownTimeout = 5 * time.Second
)

// Config wires the server to its backends. Nil backends disable their routes.
type Config struct {
	Downloads storage.Source
	Resolver  *resolve.Resolver
	Schemas   *schema.Loader
	Exporter  *export.Exporter
	Logger    *log.Logger
}

// Server is the dev HTTP server.
type Server struct {
	cfg    Config
	logger *log.Logger
	router *chi.Mux
}

// New builds the router for cfg.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Downloads != nil {
		r.Get("/downloads/{name}", s.handleDownload)
	}
	if s.cfg.Schemas != nil {
		r.Get("/schemas/{id}", s.handleSchema)
	}
	if s.cfg.Resolver != nil {
		r.Get("/bundle/latest", s.handleLatest)
	}
	if s.cfg.Exporter != nil {
		r.Post("/bundle", s.handleExport)
	}
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
// If ready is non-nil it receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
