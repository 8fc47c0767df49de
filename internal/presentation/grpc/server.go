package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Light-700/Nidhi-Rakshak/pkg/auth"
)

// Server wraps the gRPC server with risk profile handlers.
type Server struct {
	address    string
	grpcServer *grpc.Server
	handler    *RiskProfileHandler
	logger     *slog.Logger
}

// NewServer creates a new gRPC server for the risk profile service.
func NewServer(handler *RiskProfileHandler, address string, logger *slog.Logger, jwtService *auth.JWTService) *Server {
	// Health check methods stay reachable without a token.
	authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(authInterceptor))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("risk-profile-service", healthpb.HealthCheckResponse_SERVING)

	RegisterRiskProfileServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		handler:    handler,
		logger:     logger,
		address:    address,
	}
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.logger.Info("gRPC server starting",
		slog.String("address", s.address),
	)

	return s.grpcServer.Serve(listener)
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.grpcServer.GracefulStop()
}
