// Package health reports store liveness over gRPC (grpc.health.v1) and to the HTTP probe.
package health

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName — имя сервиса в health-протоколе, помимо общего "".
const ServiceName = "clinic.v1.ClinicDesk"

// Pinger — *sql.DB или любой другой источник живости хранилища.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	grpc    *grpc.Server
	health  *health.Server
	pinger  Pinger
	log     *slog.Logger
	timeout time.Duration
}

func NewServer(pinger Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		grpc:    grpc.NewServer(),
		health:  health.NewServer(),
		pinger:  pinger,
		log:     logger,
		timeout: 2 * time.Second,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	return s
}

// Check пингует хранилище и обновляет статус обоих имён сервиса.
func (s *Server) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.pinger.PingContext(ctx)
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return err
}

// Run проверяет хранилище каждые interval до отмены ctx.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		err := s.Check(ctx)
		switch {
		case err != nil && healthy:
			s.log.Warn("store unreachable", "error", err)
		case err == nil && !healthy:
			s.log.Info("store reachable again")
		}
		healthy = err == nil

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// GracefulStop помечает сервис как NOT_SERVING и дожидается текущих RPC.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
