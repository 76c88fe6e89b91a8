package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/hilthontt/roomly/docs"
	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/auth"
	"github.com/hilthontt/roomly/internal/infrastructure/configs"
	"github.com/hilthontt/roomly/internal/infrastructure/events"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/infrastructure/messaging"
	"github.com/hilthontt/roomly/internal/infrastructure/metrics"
	"github.com/hilthontt/roomly/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/roomly/internal/infrastructure/tracing"
	"github.com/hilthontt/roomly/internal/infrastructure/ws"
	"github.com/hilthontt/roomly/internal/persistence/db"
	"github.com/hilthontt/roomly/internal/persistence/memory"
	"github.com/hilthontt/roomly/internal/persistence/repository"
	"github.com/hilthontt/roomly/internal/presentation/api"
	"github.com/hilthontt/roomly/internal/presentation/handler/comments"
	"github.com/hilthontt/roomly/internal/presentation/handler/health"
	roomsHandler "github.com/hilthontt/roomly/internal/presentation/handler/rooms"
	usersHandler "github.com/hilthontt/roomly/internal/presentation/handler/users"
	"github.com/hilthontt/roomly/internal/service/rooms"
	"github.com/hilthontt/roomly/internal/service/users"
)

const (
	serviceName = "roomly-api"
)

type stores struct {
	rooms    domain.RoomRepository
	comments domain.CommentRepository
	users    domain.UserRepository
	audit    domain.RoomAuditRepository
	mongo    *db.Store
}

//	@title						Roomly API
//	@version					1.0
//	@description				Room listings with owner-gated deletion, comments and a live comment feed.
//	@host						localhost:8080
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		AppName:  serviceName,
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sh, err := tracing.InitTracer(tracing.NewConfig(serviceName, cfg.Tracing))
	if err != nil {
		logger.Fatalf("failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(context.Background())

	store, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open the store: %v", err)
	}
	defer store.mongo.Close(context.Background())

	m := metrics.NewDefault()
	healthHandler := health.NewHandler(logger)
	if store.mongo != nil {
		healthHandler.AddCheck("mongodb", store.mongo.Ping)
	}

	var publisher rooms.EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URI, logger)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbitmq.Close()

		publisher = events.NewRoomPublisher(rabbitmq)
		healthHandler.AddCheck("rabbitmq", rabbitmq.Ping)

		roomConsumer := events.NewRoomConsumer(rabbitmq, store.audit, logger)
		go func() {
			if err := roomConsumer.Listen(ctx); err != nil {
				logger.Error(logging.RabbitMQ, logging.Consume, "room consumer stopped", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
				})
			}
		}()
	} else {
		logger.Warn(logging.RabbitMQ, logging.Startup, "rabbitmq disabled, events are not published", nil)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatalf("failed to create the token manager: %v", err)
	}

	usersService := users.NewService(store.users, tokens, logger)
	if name := cfg.Auth.BootstrapModerator; name != "" {
		if _, err := usersService.EnsureModerator(ctx, name); err != nil {
			logger.Fatalf("failed to bootstrap moderator %q: %v", name, err)
		}
	}

	// The feed replays history through the service, which in turn notifies
	// the feed, so the lister is bound once the service exists.
	var roomsService *rooms.Service
	wsCore := ws.NewCore(ws.CommentListerFunc(func(ctx context.Context, roomID string) ([]rooms.CommentView, error) {
		return roomsService.ListComments(ctx, roomID)
	}), m, logger)

	opts := []rooms.Option{
		rooms.WithEvents(publisher),
		rooms.WithNotifier(wsCore),
		rooms.WithRecorder(m),
		rooms.WithAuditLog(store.audit),
	}
	if cfg.Mongo.Transactions && store.mongo != nil {
		opts = append(opts, rooms.WithTransactor(db.NewMongoTransactor(store.mongo.Client)))
	}
	roomsService = rooms.NewService(store.rooms, store.comments, store.users, logger, opts...)

	go wsCore.Run(ctx)

	limiter, err := newRateLimiter(ctx, cfg.RateLimiter, logger)
	if err != nil {
		logger.Fatalf("failed to create the rate limiter: %v", err)
	}

	app := api.NewApplication(
		*cfg,
		roomsHandler.NewHandler(roomsService, wsCore, logger),
		comments.NewHandler(roomsService, logger),
		usersHandler.NewHandler(usersService, logger),
		healthHandler,
		tokens,
		logger,
		limiter,
		m,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}

func openStores(ctx context.Context, cfg *configs.Config, logger logging.Logger) (*stores, error) {
	if cfg.Store.Driver == configs.StoreDriverMemory {
		logger.Warn(logging.General, logging.Startup, "using the in-memory store, data is lost on restart", nil)
		return &stores{
			rooms:    memory.NewRoomRepository(),
			comments: memory.NewCommentRepository(),
			users:    memory.NewUserRepository(),
			audit:    memory.NewRoomAuditRepository(0),
		}, nil
	}

	mongoStore, err := db.Open(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}

	database := mongoStore.Database

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(indexCtx, database); err != nil {
		_ = mongoStore.Close(context.Background())
		return nil, err
	}

	return &stores{
		rooms:    repository.NewRoomRepository(database),
		comments: repository.NewCommentRepository(database),
		users:    repository.NewUserRepository(database),
		audit:    repository.NewRoomAuditLogRepository(database),
		mongo:    mongoStore,
	}, nil
}

func newRateLimiter(ctx context.Context, cfg configs.RateLimiterConfig, logger logging.Logger) (ratelimiter.Limiter, error) {
	opts := ratelimiter.Options{
		MaxRatePerSecond: cfg.MaxRatePerSecond,
		MaxBurst:         cfg.MaxBurst,
		CacheTTL:         cfg.CacheTTL,
		SourceHeaderKey:  cfg.SourceHeaderKey,
		Context:          ctx,
	}

	if cfg.Backend == configs.RateLimiterBackendRedis {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}

		logger.Info(logging.Redis, logging.Startup, "rate limiter uses redis", map[logging.ExtraKey]any{
			"addr": cfg.RedisAddr,
		})
		opts.Cache = ratelimiter.NewRedis(client)
	}

	return ratelimiter.New(opts), nil
}
