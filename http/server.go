// Package http provides the authentication host: middleware that mounts
// token strategies in front of protected routes, and an http server for
// serving them.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/go-logr/logr"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/otterauth/tokenauth"
)

// shutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const shutdownTimeout = 1 * time.Second

var healthzPayload = mustMarshal(struct {
	Version string
}{
	Version: tokenauth.Version,
})

type (
	// Handlers adds http handlers to the router.
	Handlers interface {
		AddHandlers(*mux.Router)
	}

	// ServerConfig is the http server config.
	ServerConfig struct {
		SSL                  bool
		CertFile, KeyFile    string
		EnableRequestLogging bool

		Handlers   []Handlers
		Middleware []mux.MiddlewareFunc
	}

	// Server serves protected routes behind the authentication middleware.
	Server struct {
		logr.Logger
		ServerConfig

		server *http.Server
	}
)

// NewServer constructs the http server.
func NewServer(logger logr.Logger, cfg ServerConfig) (*Server, error) {
	if cfg.SSL {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return nil, fmt.Errorf("must provide both --cert-file and --key-file")
		}
	}

	r := mux.NewRouter()

	// Catch panics and return 500s
	r.Use(gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true)))

	// Prometheus metrics
	r.HandleFunc("/metrics", promhttp.Handler().ServeHTTP)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "application/json")
		w.Write(healthzPayload)
	})

	// Subrouter for protected routes, subject to the authentication
	// middleware.
	protected := r.NewRoute().Subrouter()
	protected.Use(cfg.Middleware...)

	for _, h := range cfg.Handlers {
		h.AddHandlers(protected)
	}

	// Optionally log every request
	if cfg.EnableRequestLogging {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				m := httpsnoop.CaptureMetrics(next, w, r)
				logger.Info("request",
					"duration", fmt.Sprintf("%dms", m.Duration.Milliseconds()),
					"status", m.Code,
					"method", r.Method,
					"path", fmt.Sprintf("%s?%s", r.URL.Path, r.URL.RawQuery))
			})
		})
	}

	return &Server{
		Logger:       logger,
		ServerConfig: cfg,
		server:       &http.Server{Handler: r},
	}, nil
}

// Start starts serving http traffic on the given listener and waits until the
// server exits due to error or the context is cancelled.
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	errch := make(chan error)

	go func() {
		if s.SSL {
			errch <- s.server.ServeTLS(ln, s.CertFile, s.KeyFile)
		} else {
			errch <- s.server.Serve(ln)
		}
	}()

	s.Info("started server", "address", ln.Addr().String(), "ssl", s.SSL)

	// Block until server stops listening or context is cancelled.
	select {
	case err := <-errch:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.Info("gracefully shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return s.server.Close()
		}

		return nil
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
