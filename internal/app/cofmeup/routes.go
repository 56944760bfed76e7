// Package cofmeup собирает HTTP API: зависимости, маршруты и жизненный цикл серверов.
package cofmeup

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/AleFeri/cof-me-up/internal/config"
	"github.com/AleFeri/cof-me-up/internal/http/handlers/auth/login"
	"github.com/AleFeri/cof-me-up/internal/http/handlers/auth/me"
	"github.com/AleFeri/cof-me-up/internal/http/handlers/auth/register"
	donationcreate "github.com/AleFeri/cof-me-up/internal/http/handlers/donation/create"
	donationlist "github.com/AleFeri/cof-me-up/internal/http/handlers/donation/list"
	donationstatus "github.com/AleFeri/cof-me-up/internal/http/handlers/donation/status"
	"github.com/AleFeri/cof-me-up/internal/http/handlers/health"
	postcreate "github.com/AleFeri/cof-me-up/internal/http/handlers/post/create"
	postlist "github.com/AleFeri/cof-me-up/internal/http/handlers/post/list"
	postremove "github.com/AleFeri/cof-me-up/internal/http/handlers/post/remove"
	profileread "github.com/AleFeri/cof-me-up/internal/http/handlers/profile/read"
	profileupdate "github.com/AleFeri/cof-me-up/internal/http/handlers/profile/update"
	"github.com/AleFeri/cof-me-up/internal/http/handlers/webhook"
	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/metrics"
	"github.com/AleFeri/cof-me-up/internal/paymentprovider"
	authservice "github.com/AleFeri/cof-me-up/internal/services/auth"
	donationservice "github.com/AleFeri/cof-me-up/internal/services/donation"
	postservice "github.com/AleFeri/cof-me-up/internal/services/post"
	profileservice "github.com/AleFeri/cof-me-up/internal/services/profile"

	_ "github.com/AleFeri/cof-me-up/docs"
)

// Services набор зависимостей, из которых строятся обработчики.
type Services struct {
	Auth     *authservice.Service
	Donation *donationservice.Service
	Post     *postservice.Service
	Profile  *profileservice.Service
	Provider *paymentprovider.Client
	Metrics  *metrics.Recorder
	DB       health.Pinger
	Gatherer prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/creators/{creator}", profileread.NewByUsername(logger, s.Profile).ServeHTTP)
		r.Get("/users/{id}", profileread.NewByID(logger, s.Profile).ServeHTTP)
		r.Get("/creators/{creator}/posts", postlist.New(logger, s.Post).ServeHTTP)
		r.Get("/health", health.New(logger, s.DB).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Get("/me", me.New(logger).ServeHTTP)
			r.Put("/me/profile", profileupdate.New(logger, s.Profile).ServeHTTP)
			r.Post("/posts", postcreate.New(logger, s.Post).ServeHTTP)
			r.Delete("/posts/{id}", postremove.New(logger, s.Post).ServeHTTP)
			r.Get("/creators/{creator}/donations", donationlist.New(logger, s.Donation).ServeHTTP)
			r.Post("/donations/status", donationstatus.New(logger, s.Donation).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimitPerSec, cfg.RateLimitBurst))
				r.Post("/donations", donationcreate.New(logger, s.Donation).ServeHTTP)
			})
		})

		// Webhook (подпись Stripe вместо JWT)
		r.Post("/webhooks/stripe", webhook.New(logger, s.Provider, s.Donation, s.Metrics).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
