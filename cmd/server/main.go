package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/config"
	"github.com/stylemate/marketplace-api/internal/database"
	"github.com/stylemate/marketplace-api/internal/handler"
	"github.com/stylemate/marketplace-api/internal/migrate"
	"github.com/stylemate/marketplace-api/internal/queue"
	"github.com/stylemate/marketplace-api/internal/repository"
	"github.com/stylemate/marketplace-api/internal/revocation"
	"github.com/stylemate/marketplace-api/internal/router"
	"github.com/stylemate/marketplace-api/internal/service"
	"github.com/stylemate/marketplace-api/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsDev() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	log.Info("database connected", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))

	if cfg.MigrateOnStart {
		if err := migrate.Up(ctx, db); err != nil {
			return err
		}
	}

	accounts := repository.NewAccountRepo(db)
	partnerClothes := repository.NewPartnerClothRepo(db)
	stylerClothes := repository.NewStylerClothRepo(db)

	registry := revocation.New(revocation.WithLogger(log))
	go registry.Run(ctx, cfg.SweepInterval)

	codec := utils.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := utils.NewHasher(cfg.BcryptCost)

	var events service.EventPublisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL, log)
		go queue.StartAccountConsumer(ctx, cfg.AMQPURL, log)
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and caching disabled", zap.String("addr", config.RedisAddr()))
	} else {
		defer func() { _ = rdb.Close() }()
	}

	paging := handler.Paging{Default: cfg.PageDefaultLimit, Max: cfg.PageMaxLimit}
	clothPaging := handler.Paging{Default: cfg.PageDefaultLimit, Max: cfg.ClothesMaxLimit}

	auth := service.NewAuthService(accounts, hasher, codec, registry, events, log)
	e := router.New(router.Deps{
		Log:            log,
		Resolver:       access.NewResolver(codec, registry, accounts),
		Redis:          rdb,
		DB:             db,
		RateLimit:      config.LoadRateLimitConfig(),
		Cache:          config.LoadCacheConfig(),
		Auth:           handler.NewAuthHandler(auth),
		Users:          handler.NewUserHandler(service.NewUserService(accounts, hasher, auth), paging),
		PartnerClothes: handler.NewClothHandler(service.NewPartnerClothService(partnerClothes, accounts), clothPaging),
		StylerClothes:  handler.NewClothHandler(service.NewStylerClothService(stylerClothes, accounts), clothPaging),
		Occasions: handler.NewOccasionHandler(
			service.NewOccasionService(repository.NewOccasionRepo(db), stylerClothes, accounts), paging),
		Payments: handler.NewPaymentHandler(
			service.NewPaymentService(repository.NewPaymentRepo(db), accounts), paging),
		Profiles: handler.NewProfileHandler(
			service.NewPartnerService(repository.NewPartnerProfileRepo(db)),
			service.NewStylerService(repository.NewStylerProfileRepo(db)), paging),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
