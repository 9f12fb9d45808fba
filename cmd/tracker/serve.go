package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/packagetracker/tracker/internal/api"
	"github.com/packagetracker/tracker/internal/api/handler"
	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/service"
	"github.com/packagetracker/tracker/internal/infrastructure/db/mongo"
	"github.com/packagetracker/tracker/internal/infrastructure/db/redis"
	"github.com/packagetracker/tracker/internal/infrastructure/db/sqlite"
	"github.com/packagetracker/tracker/internal/infrastructure/notify"
	"github.com/packagetracker/tracker/internal/infrastructure/queue"
	"github.com/packagetracker/tracker/internal/pkg/config"
	"github.com/packagetracker/tracker/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the refresh workers",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background(), log)

	checks := map[string]handler.Check{
		"mongo":  func(ctx context.Context) error { return st.mongoClient.Ping(ctx, readpref.Primary()) },
		"sqlite": func(ctx context.Context) error { return st.sqlDB.PingContext(ctx) },
	}

	locker, notifier, redisClient, err := notificationStack(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	// --- Repositories ---
	trackingRepo := mongo.NewTrackingRepository(st.mongoDB)
	authRepo := mongo.NewAuthRepository(st.mongoDB)
	savedRepo := sqlite.NewSavedPackageRepository(st.sqlDB, logger.Component("saved_packages"))

	// --- Services ---
	today := service.SystemToday(loc)
	syncer := service.NewStatusSync(savedRepo, notifier, locker, logger.Component("status_sync"))
	trackingSvc := service.NewTrackingService(trackingRepo, syncer, today, logger.Component("tracking"))
	savedSvc := service.NewSavedPackageService(savedRepo, trackingRepo, today, logger.Component("saved_packages"))
	authSvc := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, today)

	dispatcher := queue.NewDispatcher(cfg.Refresh.Workers, trackingSvc, logger.Component("refresh"))

	e := api.NewRouter(api.Dependencies{
		Log:       log,
		JWTSecret: cfg.JWTSecret,
		Auth:      authSvc,
		Tracking:  trackingSvc,
		Saved:     savedSvc,
		Refresh:   dispatcher,
		Checks:    checks,
	})
	cancelOnShutdown(e)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dispatcher.Start(gctx)
		dispatcher.Wait()
		return nil
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// cancelOnShutdown derives request contexts from one that is cancelled when
// shutdown begins. Open event streams end instead of holding the server
// until the shutdown timeout.
func cancelOnShutdown(e *echo.Echo) {
	base, cancel := context.WithCancel(context.Background())
	e.Server.BaseContext = func(net.Listener) context.Context { return base }
	e.Server.RegisterOnShutdown(cancel)
}

// notificationStack picks the lock and notification sink. With REDIS_ADDR
// set, locks are shared through redis and notifications are also appended
// to a redis stream; otherwise both stay in-process.
func notificationStack(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KeyLocker, ports.Notifier, *goredis.Client, error) {
	logNotifier := notify.NewLogNotifier(logger.Component("notifier"))

	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, using in-process locks")
		return service.NewStripedLocker(0), logNotifier, nil, nil
	}

	client, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Str("stream", cfg.Redis.Stream).Msg("connected to redis")

	notifier := notify.Fanout{logNotifier, redis.NewStreamNotifier(client, cfg.Redis.Stream)}
	return redis.NewLocker(client, cfg.Redis.LockTTL), notifier, client, nil
}
