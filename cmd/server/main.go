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

	"github.com/flatwalay/backend/internal/auth"
	"github.com/flatwalay/backend/internal/cache"
	"github.com/flatwalay/backend/internal/config"
	"github.com/flatwalay/backend/internal/handler"
	"github.com/flatwalay/backend/internal/logger"
	"github.com/flatwalay/backend/internal/repository"
	"github.com/flatwalay/backend/internal/service"

	"go.uber.org/zap"
)

// Build information, set via -ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting flatwalay backend",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	profileCache, err := cache.New(cfg.Cache.Path)
	if err != nil {
		log.Fatal("failed to open profile cache", zap.Error(err))
	}
	defer profileCache.Close()

	llm := service.NewLLMClient(cfg.LLM)
	if !llm.IsEnabled() {
		log.Warn("no LLM API key configured, running with deterministic fallbacks only")
	}

	extractor := service.NewExtractor(llm, profileCache, log)
	scorer := service.NewScorer(llm, log)
	conflicts := service.NewConflictDetector(llm, log)
	hunter := service.NewRoomHunter(llm, log, cfg.Match.ReasonMaxChars)
	explainer := service.NewExplainer(llm, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	h := handler.New(cfg, log, repo, jwtService, hasher,
		extractor, scorer, conflicts, hunter, explainer,
		Version, BuildTime, GitCommit,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
