// Package serve runs a service's JSON HTTP API next to its gRPC health server
// and drains both on shutdown.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	platformgrpc "github.com/gatchaworks/arena/internal/platform/grpc"
	"github.com/gatchaworks/arena/internal/platform/timeouts"
)

// Config describes one service process.
type Config struct {
	Service  string
	HTTPPort int
	GRPCPort int
	Handler  http.Handler

	// HTTPListener and GRPCListener replace the port-based listeners when set.
	HTTPListener net.Listener
	GRPCListener net.Listener

	ShutdownTimeout time.Duration
}

// Run serves until ctx ends or a server fails. The health status flips to
// SERVING only after both listeners are accepting.
func Run(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.Service = strings.TrimSpace(cfg.Service)
	if cfg.Service == "" {
		return fmt.Errorf("service name is required")
	}
	if cfg.Handler == nil {
		return fmt.Errorf("http handler is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = timeouts.Shutdown
	}

	httpListener, err := listen(cfg.HTTPListener, cfg.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen on %s http port %d: %w", cfg.Service, cfg.HTTPPort, err)
	}
	grpcListener, err := listen(cfg.GRPCListener, cfg.GRPCPort)
	if err != nil {
		_ = httpListener.Close()
		return fmt.Errorf("listen on %s grpc port %d: %w", cfg.Service, cfg.GRPCPort, err)
	}

	healthServer := platformgrpc.NewHealthServer()
	httpServer := &http.Server{
		Handler:           otelhttp.NewHandler(cfg.Handler, cfg.Service+".http"),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 2)
	go func() {
		serveErr <- healthServer.Serve(grpcListener)
	}()
	go func() {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	healthServer.MarkServing(cfg.Service + ".api")
	log.Printf("%s api listening at %v, health at %v", cfg.Service, httpListener.Addr(), grpcListener.Addr())

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		if runErr != nil {
			runErr = fmt.Errorf("serve %s: %w", cfg.Service, runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown %s http server: %v", cfg.Service, err)
	}
	healthServer.Stop()
	return runErr
}

func listen(existing net.Listener, port int) (net.Listener, error) {
	if existing != nil {
		return existing, nil
	}
	return net.Listen("tcp", fmt.Sprintf(":%d", port))
}
