// Package httpapi serves the health probe and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName is reported by /health.
const ServiceName = "sprintsync"

const shutdownTimeout = 5 * time.Second

// ServerOptions configures the HTTP server.
type ServerOptions struct {
	Addr     string
	Gatherer prometheus.Gatherer // served on /metrics; nil serves the default registry
	Logger   *log.Logger
}

// Handler builds the route table.
func Handler(opts ServerOptions) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": ServiceName})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	return mux
}

// NewServer returns an http.Server for opts.
func NewServer(opts ServerOptions) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           Handler(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve listens on opts.Addr until ctx is done, then shuts down gracefully.
// The returned channel reports the bound address once listening.
func Serve(ctx context.Context, opts ServerOptions, ready chan<- string) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	srv := NewServer(opts)
	if ready != nil {
		ready <- ln.Addr().String()
	}
	logger.Printf("http listening on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
