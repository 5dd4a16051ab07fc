package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/cache"
	"mindscreen/internal/config"
	"mindscreen/internal/inference"
	"mindscreen/internal/metrics"
	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest"
	"mindscreen/internal/transport/ws"
)

// App wires configuration into services and the HTTP handler
type App struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Backend inference.Backend
	Redis   *redis.Client // nil when REDIS_URI is unset
	WSHub   *ws.Hub
	Handler http.Handler

	logger log.FieldLogger
}

// New builds the application. Redis is optional; a configured but
// unreachable Redis is an error.
func New(ctx context.Context, cfg *config.Config, logger log.FieldLogger) (*App, error) {
	m := metrics.New()

	backend, err := inference.New(ctx, cfg.AI, m, logger)
	if err != nil {
		return nil, err
	}
	if cfg.AI.Provider == config.ProviderMock {
		logger.Warn("no inference provider key set, using mock backend")
	}
	logger.WithFields(log.Fields{
		"backend":         backend.Name(),
		"chat_model":      cfg.AI.Models.Chat,
		"sentiment_model": cfg.AI.Models.Sentiment,
	}).Info("inference configured")

	var rdb *redis.Client
	var moodCache cache.MoodCache
	if cfg.RedisURI != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, errors.Wrapf(err, "pinging redis at %s", cfg.RedisAddr())
		}
		moodCache = cache.NewMoodCache(rdb, cfg.MoodCacheTTL)
		logger.WithField("ttl", cfg.MoodCacheTTL).Info("mood cache enabled")
	}

	chatSvc := service.NewChatService(backend, cfg.AI.Timeout)
	hub := ws.NewHub(m, logger)

	container := &rest.Container{
		ScreeningService: service.NewScreeningService(m, logger),
		ChatService:      chatSvc,
		MoodService:      service.NewMoodService(backend, moodCache, m, logger, cfg.AI.Timeout),
		WSHub:            hub,
		Metrics:          m,
		Logger:           logger,
		CORS:             cfg.CORS,
		RateLimit:        cfg.RateLimit,
	}

	return &App{
		Config:  cfg,
		Metrics: m,
		Backend: backend,
		Redis:   rdb,
		WSHub:   hub,
		Handler: rest.NewRouter(container),
		logger:  logger,
	}, nil
}

// Close closes chat sessions and the Redis client
func (a *App) Close() error {
	a.WSHub.CloseAll()
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}
