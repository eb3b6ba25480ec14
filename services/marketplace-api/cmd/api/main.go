package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/you/agrigo/pkg/auth"
	"github.com/you/agrigo/pkg/config"
	"github.com/you/agrigo/pkg/db"
	"github.com/you/agrigo/pkg/mq"
	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/pkg/ratelimit"
	"github.com/you/agrigo/services/marketplace-api/internal/chatstore"
	"github.com/you/agrigo/services/marketplace-api/internal/handlers"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

const serviceName = "marketplace-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	obs.InitLogger(obs.LogOptions{Service: serviceName, Env: cfg.Env, Level: cfg.LogLevel})
	log := obs.GetLogger()

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("marketplace-api stopped")
	}
}

func run(cfg config.App) error {
	log := obs.GetLogger()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	// prices and totals go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	gdb, err := db.Open(cfg.PGDSN)
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	if err := repository.MigrateAll(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	chats, err := chatstore.Open(cfg.ChatDBPath)
	if err != nil {
		return fmt.Errorf("open chat store: %w", err)
	}
	defer chats.Close()

	var pub service.EventPublisher = service.NopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	} else {
		log.Info().Msg("RABBIT_URL not set, booking events are dropped")
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemory(cfg.AuthAttempts, cfg.AuthRateWindow)
	if cfg.RedisAddr != "" {
		rc, err := ratelimit.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rc.Close()
		limiter = ratelimit.NewRedis(rc, "agrigo:auth", cfg.AuthAttempts, cfg.AuthRateWindow)
	}

	users := repository.NewUserRepo(gdb)
	resources := repository.NewResourceRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.Deps{
		Auth:        service.NewAuthSvc(users, tokens),
		Resources:   service.NewResourceSvc(resources, bookings),
		Bookings:    service.NewBookingSvc(bookings, resources, chats, pub),
		Chats:       service.NewChatSvc(chats, bookings),
		Recommend:   service.NewRecommendSvc(users, resources),
		AuthLimiter: limiter,
		Origins:     cfg.Origins(),
		ServiceName: serviceName,
		BaseURL:     "http://localhost" + cfg.HTTPAddr,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.Env).Msg("marketplace-api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
