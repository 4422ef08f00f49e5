package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/x5labs/giftwheel/internal/config"
	"github.com/x5labs/giftwheel/internal/handlers/web"
	"github.com/x5labs/giftwheel/internal/repositories/allowlist"
	"github.com/x5labs/giftwheel/internal/repositories/redemption"
	"github.com/x5labs/giftwheel/internal/rng"
	drawService "github.com/x5labs/giftwheel/internal/services/draw"
	"github.com/x5labs/giftwheel/internal/wheel"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	defer logger.Init("giftwheel", true, false, os.Stderr).Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	segments, err := config.LoadSegments(cfg.SegmentsPath)
	if err != nil {
		log.Fatalf("Failed to load wheel segments: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	redisLedger, err := redemption.NewRedis(&redemption.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create redemption repository: %v", err)
	}

	ledgerRepo, err := redemption.NewFallback(&redemption.FallbackConfig{
		Primary: redisLedger,
	})
	if err != nil {
		log.Fatalf("Failed to create ledger fallback: %v", err)
	}

	allowlistRepo, err := allowlist.NewHTTP(&allowlist.Config{
		URL: cfg.AllowlistURL,
	})
	if err != nil {
		log.Fatalf("Failed to create allowlist repository: %v", err)
	}

	// Initialize randomness and the spin planner
	randomSource := rng.New(&rng.Config{})

	planner, err := wheel.NewPlanner(&wheel.PlannerConfig{
		MinTurns:             cfg.MinTurns,
		PointerOffsetDegrees: cfg.PointerOffsetDegrees,
		Source:               randomSource,
	})
	if err != nil {
		log.Fatalf("Failed to create spin planner: %v", err)
	}

	// Initialize draw service
	drawSvc, err := drawService.New(&drawService.Config{
		Segments:                   segments,
		CaseInsensitiveCredentials: cfg.CaseInsensitiveCredentials,
		SpinSeconds:                cfg.SpinSeconds,
		LedgerRepo:                 ledgerRepo,
		AllowlistRepo:              allowlistRepo,
		Planner:                    planner,
		RandomSource:               randomSource,
	})
	if err != nil {
		log.Fatalf("Failed to create draw service: %v", err)
	}

	// Load the allow-list up front; failure is not fatal, validation just
	// stays gated until a later refresh succeeds
	refreshCtx, cancelRefresh := context.WithTimeout(context.Background(), 10*time.Second)
	if output, err := drawSvc.RefreshAllowlist(refreshCtx, &drawService.RefreshAllowlistInput{}); err != nil {
		logger.Warningf("initial allow-list load failed: %v", err)
	} else {
		logger.Infof("allow-list loaded with %d credentials", output.Count)
	}
	cancelRefresh()

	// Initialize the web handler
	handler, err := web.New(&web.Config{
		DrawService: drawSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create web handler: %v", err)
	}

	router := gin.Default()
	handler.RegisterRoutes(router)

	// Drop sessions whose dialog was abandoned without being closed
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			output, err := drawSvc.CleanupInactiveSessions(context.Background(), &drawService.CleanupInactiveSessionsInput{
				OlderThan: cfg.SessionTTL,
			})
			if err != nil {
				logger.Warningf("session cleanup failed: %v", err)
				continue
			}
			if output.Removed > 0 {
				logger.Infof("dropped %d inactive sessions", output.Removed)
			}
		}
	}()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("giftwheel listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}

	logger.Info("Server has been shut down")
}
