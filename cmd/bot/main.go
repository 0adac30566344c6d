package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/app"
	"github.com/Freeeeeet/easestay_bot/internal/config"
	"github.com/Freeeeeet/easestay_bot/internal/controller"
	"github.com/Freeeeeet/easestay_bot/internal/metrics"
	"github.com/Freeeeeet/easestay_bot/internal/repository"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

// sessionTTL - срок жизни сессии в Redis
const sessionTTL = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting EaseStay bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("session_store", cfg.SessionStore))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeStore()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger, apiclient.WithObserver(m))

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		events = service.NewAMQPPublisher(cfg.RabbitMQURL, logger)
		logger.Info("Booking events enabled", zap.String("queue", service.BookingConfirmedQueue))
	}

	background := service.NewBackground(cfg.APITimeout, logger)
	defer background.Wait()

	roomCache := service.NewRoomCache(api, m, logger)
	services := controller.Services{
		Sessions:   service.NewSessionService(api, sessions, background, logger),
		Rooms:      roomCache,
		Bookings:   service.NewBookingService(api, roomCache, events, background, m, logger),
		RoomStatus: service.NewRoomStatusService(api, roomCache, m, logger),
		Feedback:   service.NewFeedbackService(api, logger),
	}

	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(controller.UpdateMetrics(m)),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, services, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(roomCache, api, cfg.RoomRefreshInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

// openSessionStore открывает постоянное хранилище сессий
func openSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.SessionRepository, func(), error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		client := repository.NewRedisClient(repository.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: 10,
		})
		if err := repository.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
		return repository.NewRedisSessionRepository(client, sessionTTL), closeRedis(client, logger), nil
	}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("Connected to Postgres")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return repository.NewSessionRepository(pool), pool.Close, nil
}

func closeRedis(client *redis.Client, logger *zap.Logger) func() {
	return func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
}
