package grpc

import (
	"context"
	stderrors "errors"
	"log"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

// ErrorInterceptor converts domain errors returned by a handler into gRPC
// statuses carrying ErrorInfo details.
func ErrorInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var domainErr *apperrors.Error
		if !stderrors.As(err, &domainErr) {
			return resp, err
		}
		log.Printf("grpc %s failed code=%s: %v", info.FullMethod, domainErr.Code, err)
		return resp, domainErr.ToGRPCStatus()
	}
}

// HealthServer is the gRPC listener each service exposes for readiness.
type HealthServer struct {
	server *gogrpc.Server
	health *health.Server
}

// NewHealthServer builds a gRPC server that only hosts the health service.
// The overall status starts as NOT_SERVING until MarkServing is called.
func NewHealthServer(opts ...gogrpc.ServerOption) *HealthServer {
	opts = append([]gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
		gogrpc.ChainUnaryInterceptor(ErrorInterceptor()),
	}, opts...)
	server := gogrpc.NewServer(opts...)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{server: server, health: healthServer}
}

// MarkServing flips the overall status and each named service to SERVING.
func (s *HealthServer) MarkServing(services ...string) {
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, service := range services {
		s.health.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_SERVING)
	}
}

// Serve accepts connections until Stop is called.
func (s *HealthServer) Serve(listener net.Listener) error {
	return s.server.Serve(listener)
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
