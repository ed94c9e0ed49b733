// Package grpcserver serves the standard gRPC health service so load
// balancers can tell whether the catalog is loaded.
package grpcserver

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CatalogService is the health service name reported for the catalog.
const CatalogService = "modhome.catalog"

type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	log    *zap.Logger
}

func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		GRPC:   grpc.NewServer(),
		Health: health.NewServer(),
		log:    logger.Named("grpc"),
	}
	healthpb.RegisterHealthServer(s.GRPC, s.Health)
	s.Health.SetServingStatus(CatalogService, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// SetCatalogReady flips the catalog service between SERVING and NOT_SERVING.
func (s *Server) SetCatalogReady(ready bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ready {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.Health.SetServingStatus(CatalogService, st)
	s.log.Debug("catalog health", zap.String("status", st.String()))
}

// Serve blocks until Stop is called or the listener fails.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.GRPC.Serve(lis)
}

// Stop reports NOT_SERVING to watchers and drains in-flight calls.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}
