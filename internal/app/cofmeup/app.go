package cofmeup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"google.golang.org/grpc"

	"github.com/AleFeri/cof-me-up/internal/cache"
	"github.com/AleFeri/cof-me-up/internal/config"
	"github.com/AleFeri/cof-me-up/internal/grpc/server"
	"github.com/AleFeri/cof-me-up/internal/lib/jwt"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/metrics"
	"github.com/AleFeri/cof-me-up/internal/migrations"
	"github.com/AleFeri/cof-me-up/internal/paymentprovider"
	"github.com/AleFeri/cof-me-up/internal/rabbitmq"
	authservice "github.com/AleFeri/cof-me-up/internal/services/auth"
	donationservice "github.com/AleFeri/cof-me-up/internal/services/donation"
	postservice "github.com/AleFeri/cof-me-up/internal/services/post"
	profileservice "github.com/AleFeri/cof-me-up/internal/services/profile"
	"github.com/AleFeri/cof-me-up/internal/storage/repository"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 5 * time.Second
)

// App HTTP API вместе с gRPC health и внешними подключениями.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	listener   net.Listener
	health     *server.HealthServer
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	amqpConn   *amqp.Connection
}

// New поднимает подключения, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "cofmeup.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	provider := paymentprovider.NewClient(cfg.Stripe)

	opts := []donationservice.Option{
		donationservice.WithCache(cacheRedis),
		donationservice.WithMetrics(recorder),
		donationservice.WithCurrency(provider.Currency()),
	}

	// без брокера пожертвования работают, но уведомления создателям не уходят
	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			_ = cacheRedis.Close()
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetDonationQueues())
		if err != nil {
			_ = amqpConn.Close()
			_ = cacheRedis.Close()
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, donationservice.WithPublisher(rabbitmq.NewPublisher(ch)))
	} else {
		logger.Warn("rabbitmq url is not set, donation events will not be published")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	services := Services{
		Auth:     authservice.New(db, jwtMaker),
		Donation: donationservice.New(db, provider, logger, opts...),
		Post:     postservice.New(db),
		Profile:  profileservice.New(db, cacheRedis, logger),
		Provider: provider,
		Metrics:  recorder,
		DB:       db,
		Gatherer: registry,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		if amqpConn != nil {
			_ = amqpConn.Close()
		}
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := server.NewHealthServer(db, logger, healthCheckInterval)
	healthServer.Register(grpcServer)

	return &App{
		server:     srv,
		grpcServer: grpcServer,
		listener:   lis,
		health:     healthServer,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		amqpConn:   amqpConn,
	}, nil
}

// Run обслуживает HTTP и gRPC до отмены ctx, затем останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	go func() {
		a.logger.Info("gRPC health service listening on", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go a.health.Run(healthCtx)

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down servers gracefully")

	stopHealth()
	a.grpcServer.GracefulStop()
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.close()
	return runErr
}

func (a *App) close() {
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
