package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/auth"
	"github.com/BruksfildServices01/daycare-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/daycare-scheduler/internal/db"
	"github.com/BruksfildServices01/daycare-scheduler/internal/handlers"
	"github.com/BruksfildServices01/daycare-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-scheduler/internal/logger"
	"github.com/BruksfildServices01/daycare-scheduler/internal/media"
	"github.com/BruksfildServices01/daycare-scheduler/internal/middleware"
	"github.com/BruksfildServices01/daycare-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/routes"
	"github.com/BruksfildServices01/daycare-scheduler/internal/timezone"
	ucAccount "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	store := repository.NewGormStore(db)

	health := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimitEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()

		l, err := ratelimit.NewFixedWindowLimiter(rdb, "daycare:login", cfg.LoginRateLimit, cfg.LoginRateWindow)
		if err != nil {
			return err
		}
		limiter = l
		health["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	} else {
		log.Warn().Msg("login rate limiting disabled")
	}

	var objects media.ObjectStore = media.Disabled{}
	if cfg.StorageEnabled() {
		objects = media.NewS3Store(cfg)
	}

	var domains ucAccount.DomainChecker
	if cfg.CheckEmailDomain {
		domains = validators.NewEmailDomainChecker(nil)
	}

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, using UTC")
	}
	clock := timezone.NewClock(timezone.Location(cfg.Timezone))

	// ======================================================
	// AUDIT
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(store), log, 256)

	retention := audit.NewRetention(store, cfg.AuditRetentionDays, log)
	if err := retention.Start(cfg.AuditRetentionSchedule); err != nil {
		return err
	}
	defer retention.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Store:        store,
		Tokens:       auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Clock:        clock,
		Audit:        dispatcher,
		LoginLimiter: limiter,
		Objects:      objects,
		EmailDomains: domains,
		Health:       health,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue not drained")
	}
	return nil
}

func closeDB(db *gorm.DB, log zerolog.Logger) {
	if err := dbpkg.Close(db); err != nil {
		log.Error().Err(err).Msg("close database")
	}
}
