package api

import (
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/codeready-toolchain/anonymizer/pkg/version"
)

// GRPCHealthServer serves grpc.health.v1.Health for orchestrator probes.
type GRPCHealthServer struct {
	server *grpc.Server
	health *health.Server
}

// NewGRPCHealthServer creates a health server reporting NOT_SERVING until
// SetServing is called.
func NewGRPCHealthServer() *GRPCHealthServer {
	s := &GRPCHealthServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(false)
	return s
}

// SetServing updates the overall status and the status of the
// "anonymizer" service name.
func (s *GRPCHealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(version.AppName, status)
}

// Serve blocks serving on lis.
func (s *GRPCHealthServer) Serve(lis net.Listener) error {
	slog.Info("gRPC health server listening", "addr", lis.Addr().String())
	return s.server.Serve(lis)
}

// Stop marks the service NOT_SERVING and drains in-flight checks.
func (s *GRPCHealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
