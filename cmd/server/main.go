// In file: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/prompt-optimizer/internal/limiter"
	"github.com/dileep-u-k/prompt-optimizer/internal/llm"
	"github.com/dileep-u-k/prompt-optimizer/internal/optimizer"
)

const (
	shutdownTimeout  = 10 * time.Second
	redisDialTimeout = 3 * time.Second
)

// main is the composition root: it loads configuration, builds every service,
// injects dependencies and starts the server.
func main() {
	configureLogging(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	buildInfo := GetBuildInfo()
	log.Infof("🚀 Starting Prompt Optimizer | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Info("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	rdb := connectRedis(cfg.RedisAddr)
	clients := llm.NewClients(cfg.RewriteModels, cfg.APIKeys)
	service := newOptimizerService(cfg, rdb, clients)
	throttle := limiter.New(rdb, cfg.Limits.RequestsPerMinute, time.Minute)
	handler := NewHandler(service, rdb, cfg.Limits.MaxTextLength, buildInfo)
	log.Info("✅ All services initialized.", "rewrite", service.RewriteEnabled(), "redis", rdb != nil)

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := setupRouter(handler, throttle)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	runServerWithGracefulShutdown(srv)

	closeClients(clients)
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info("👋 Server exited gracefully.")
}

// configureLogging applies LOG_LEVEL and LOG_FORMAT to the package logger.
func configureLogging(level, format string) {
	if level != "" {
		if lvl, err := log.ParseLevel(level); err == nil {
			log.SetLevel(lvl)
		} else {
			log.Warnf("Unknown LOG_LEVEL %q, keeping %s", level, log.GetLevel())
		}
	}
	log.SetReportTimestamp(true)
	if format == "json" {
		log.SetFormatter(log.JSONFormatter)
	}
}

// connectRedis returns nil when redis is not configured or not reachable.
// Without it the service still analyzes prompts; the rewrite cache, model
// profiles and the throttle are off.
func connectRedis(addr string) *redis.Client {
	if addr == "" {
		log.Warn("⚠️ REDIS_ADDR not set: rewrite cache, model profiles and throttling are disabled.")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnf("⚠️ Could not connect to Redis at %s, continuing without it: %v", addr, err)
		_ = rdb.Close()
		return nil
	}
	log.Infof("✅ Connected to Redis at %s", addr)
	return rdb
}

// newOptimizerService wires the rewrite collaborator when at least one model
// client could be built.
func newOptimizerService(cfg *AppConfig, rdb *redis.Client, clients map[string]llm.Client) *optimizer.Service {
	opts := []optimizer.Option{optimizer.WithTimeout(cfg.Limits.RewriteTimeout)}

	profiler := llm.NewProfiler(rdb, cfg.ModelCosts)
	rewriter := llm.NewRewriter(clients, llm.NewRouter(profiler, cfg.RouterConfig), llm.RewriterOptions{
		Profiler: profiler,
		Cache:    llm.NewRewriteCache(rdb, 0),
		Budgets:  cfg.ModelBudgets,
	})
	if rewriter == nil {
		log.Warn("⚠️ No rewrite models available: requestRewrite will return the core analysis only.")
		return optimizer.NewService(nil, opts...)
	}
	log.Infof("✅ %d rewrite models initialized: %v", len(rewriter.Models()), rewriter.Models())
	return optimizer.NewService(rewriter, opts...)
}

// setupRouter registers middleware and routes. The throttle covers the
// optimize route only.
func setupRouter(h *Handler, throttle *limiter.Limiter) *gin.Engine {
	engine := gin.New()
	engine.Use(requestIDMiddleware(), recoveryMiddleware(), loggingMiddleware())

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/optimize", throttleMiddleware(throttle), h.HandleOptimize)
	}
	engine.GET("/healthz", h.HandleHealth)
	engine.GET("/version", h.HandleVersion)
	return engine
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Infof("👂 Prompt Optimizer is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("❌ Server shutdown failed: %v", err)
	}
}

// closeClients releases clients holding connections, such as the gRPC-backed
// Gemini client. Several models share one client per provider.
func closeClients(clients map[string]llm.Client) {
	closed := make(map[io.Closer]bool)
	for modelID, client := range clients {
		closer, ok := client.(io.Closer)
		if !ok || closed[closer] {
			continue
		}
		closed[closer] = true
		if err := closer.Close(); err != nil {
			log.Warnf("⚠️ Closing client for %s: %v", modelID, err)
		}
	}
}
