package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/configs"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/infrastructure/metrics"
	"github.com/hilthontt/roomly/internal/infrastructure/ratelimiter"
	commentsHandler "github.com/hilthontt/roomly/internal/presentation/handler/comments"
	healthHandler "github.com/hilthontt/roomly/internal/presentation/handler/health"
	roomsHandler "github.com/hilthontt/roomly/internal/presentation/handler/rooms"
	usersHandler "github.com/hilthontt/roomly/internal/presentation/handler/users"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type TokenParser interface {
	Parse(raw string) (*domain.Caller, error)
}

type Application struct {
	config          configs.Config
	roomsHandler    *roomsHandler.Handler
	commentsHandler *commentsHandler.Handler
	usersHandler    *usersHandler.Handler
	healthHandler   *healthHandler.Handler
	tokens          TokenParser
	logger          logging.Logger
	ratelimiter     ratelimiter.Limiter
	metrics         *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	roomsHandler *roomsHandler.Handler,
	commentsHandler *commentsHandler.Handler,
	usersHandler *usersHandler.Handler,
	healthHandler *healthHandler.Handler,
	tokens TokenParser,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	metrics *metrics.Metrics,
) *Application {
	return &Application{
		config:          config,
		roomsHandler:    roomsHandler,
		commentsHandler: commentsHandler,
		usersHandler:    usersHandler,
		healthHandler:   healthHandler,
		tokens:          tokens,
		logger:          logger,
		ratelimiter:     ratelimiter,
		metrics:         metrics,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(app.prometheusMiddleware)

	r.Use(app.enableCors)
	r.Use(app.rateLimiterMiddleware)

	r.Handle("/metrics", app.metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(app.identityMiddleware)

		r.Route("/rooms", func(r chi.Router) {
			// The feed is long-lived and must not inherit the request timeout.
			r.Get("/{roomId}/feed", app.roomsHandler.FeedHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(app.requestTimeout()))

				r.Get("/", app.roomsHandler.ListRoomsHandler)
				r.Get("/{roomId}", app.roomsHandler.GetRoomHandler)
				r.Get("/{roomId}/comments", app.commentsHandler.ListCommentsHandler)

				r.Group(func(r chi.Router) {
					r.Use(requireCaller)

					r.Post("/", app.roomsHandler.CreateRoomHandler)
					r.Delete("/{roomId}", app.roomsHandler.DeleteRoomHandler)
					r.Get("/{roomId}/delete", app.roomsHandler.DeleteRoomLinkHandler)
					r.Get("/{roomId}/audit", app.roomsHandler.AuditTrailHandler)
					r.Post("/{roomId}/comments", app.commentsHandler.CreateCommentHandler)
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(app.requestTimeout()))

			r.Post("/users", app.usersHandler.RegisterHandler)
			r.With(requireCaller).Get("/users/me", app.usersHandler.MeHandler)
			r.Post("/sessions", app.usersHandler.LoginHandler)

			r.Get("/health", app.healthHandler.GetHealth)
			r.Get("/healthz", app.healthHandler.GetHealth)
			r.Get("/ready", app.healthHandler.GetReady)
			r.Get("/live", app.healthHandler.GetHealth)
		})
	})

	return otelhttp.NewHandler(r, "roomly-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (app *Application) requestTimeout() time.Duration {
	if app.config.HTTP.RequestTimeout > 0 {
		return app.config.HTTP.RequestTimeout
	}
	return 60 * time.Second
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.HTTP.Addr(),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
