package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kinohall/booking-front/internal/backend"
	"github.com/kinohall/booking-front/internal/config"
	httphandler "github.com/kinohall/booking-front/internal/http"
	"github.com/kinohall/booking-front/internal/observability"
	"github.com/kinohall/booking-front/internal/rateLimit"
	"github.com/kinohall/booking-front/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOTel()

	logger := observability.NewLogger()

	var store session.Store
	var rl *rateLimit.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
		rl = rateLimit.NewRateLimiter(redisClient)
	} else {
		logger.Warn("REDIS_ADDR not set, using the in-memory session store")
		store = session.NewMemoryStore()
	}

	bookingClient := backend.New(cfg.BackendURL, logger)
	handlers := httphandler.NewHandlers(cfg, bookingClient, session.NewState(store), logger)
	router := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", cfg.ListenAddr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown Server ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}

	// give best-effort booking submissions a chance to finish
	handlers.Drain()
	logger.Info("Server exiting")
}
