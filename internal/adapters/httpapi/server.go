// Package httpapi exposes the event dispatcher over HTTP so a chat bot
// front end can forward button presses.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	slowRequest       = 2 * time.Second
)

type Options struct {
	Addr    string
	NetRate float64
	// CORSOrigins enables cross-origin requests from these origins; empty disables CORS.
	CORSOrigins []string
	Logger      *logger.Logger
}

type Server struct {
	srv *http.Server
	log *logger.Logger
}

// NewRouter mounts the intake routes on a chi mux.
func NewRouter(dispatcher EventDispatcher, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.NetRate <= 0 {
		opts.NetRate = domain.DefaultNetRate
	}

	h := handlers{dispatcher: dispatcher, netRate: opts.NetRate}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(accessLog(opts.Logger, slowRequest))
	r.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/events", h.postEvent)
		r.Get("/schedule", h.getSchedule)
	})

	return r
}

func NewServer(dispatcher EventDispatcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Server{
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(dispatcher, opts),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		log: opts.Logger,
	}
}

// Serve accepts on ln until ctx is canceled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("http stopped")
	return nil
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
