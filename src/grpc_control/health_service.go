package grpc_control

import (
	"fmt"
	"net"
	"sync"

	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service; "" reports the same status.
const ServiceName = "sentiment.Dashboard"

// HealthService exposes grpc.health.v1 for the dashboard.
// It is NOT_SERVING until the first snapshot is published.
type HealthService struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	health     *health.Server
	grpcServer *grpc.Server
	listener   net.Listener
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func NewHealthService(cfg *models.MConfig, log *logger.Logger) *HealthService {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	return &HealthService{
		Config:     cfg,
		Logger:     log,
		health:     hs,
		grpcServer: grpcServer,
	}
}

// -----------------------------------------------------------------------------

// Listen binds grpc_host:grpc_port. Port 0 picks a free port.
func (s *HealthService) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := fmt.Sprintf("%s:%d", s.Config.GrpcHost, s.Config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC on %s: %w", addr, err)
	}
	s.listener = lis
	return nil
}

// -----------------------------------------------------------------------------

// Addr returns the bound address, or "" before Listen.
func (s *HealthService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// -----------------------------------------------------------------------------

// Start listens if needed and serves until Stop.
func (s *HealthService) Start() error {
	if s.Addr() == "" {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.Logger.Info("Starting gRPC health service on %s", s.Addr())
	return s.grpcServer.Serve(s.listener)
}

// -----------------------------------------------------------------------------

// SetServing flips the reported status of the dashboard service.
func (s *HealthService) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// -----------------------------------------------------------------------------

func (s *HealthService) Stop() error {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	return nil
}
