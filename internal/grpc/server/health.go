// Package server реализует gRPC-сервер сервиса.
//
// HealthServer публикует grpc.health.v1.Health и держит статус SERVING,
// пока база данных отвечает на ping.
package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/AleFeri/cof-me-up/internal/lib/sl"
)

// ServiceName имя сервиса в протоколе health.
const ServiceName = "cofmeup.v1.API"

// Pinger зависимость, доступность которой определяет статус.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer обёртка над health.Server с периодической проверкой базы.
type HealthServer struct {
	checker  *health.Server
	db       Pinger
	log      *slog.Logger
	interval time.Duration
}

// NewHealthServer создаёт HealthServer. Статус до первой проверки NOT_SERVING.
func NewHealthServer(db Pinger, logger *slog.Logger, interval time.Duration) *HealthServer {
	s := &HealthServer{
		checker:  health.NewServer(),
		db:       db,
		log:      logger,
		interval: interval,
	}
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register регистрирует сервис health на gRPC-сервере.
func (s *HealthServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.checker)
}

// Run проверяет базу сразу и затем раз в interval до отмены контекста.
func (s *HealthServer) Run(ctx context.Context) {
	s.Probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.checker.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Probe выполняет одну проверку и обновляет статус.
func (s *HealthServer) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.db.Ping(pingCtx); err != nil {
		s.log.Warn("database ping failed", sl.Err(err))
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *HealthServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.checker.SetServingStatus("", status)
	s.checker.SetServingStatus(ServiceName, status)
}
