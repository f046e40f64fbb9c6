package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"calculator-engine/internal/cache"
	"calculator-engine/internal/config"
	"calculator-engine/internal/engine"
	"calculator-engine/internal/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP calculation server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	resultCache, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	var limiter *handler.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = handler.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window.Duration)
		defer limiter.Stop()
	}

	h := handler.New(engine.New(resultCache, cfg.Cache.TTL.Duration, logger), limiter, logger)

	server := &fasthttp.Server{
		Name:               "calculator-engine",
		Handler:            h.Handle,
		ReadTimeout:        cfg.Server.ReadTimeout.Duration,
		WriteTimeout:       cfg.Server.WriteTimeout.Duration,
		IdleTimeout:        cfg.Server.IdleTimeout.Duration,
		MaxRequestBodySize: cfg.Server.MaxBodyBytes,
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("calculator engine starting", zap.String("addr", addr), zap.String("cache", cfg.Cache.Backend))
		if err := server.ListenAndServe(addr); err != nil {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		logger.Warn("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

// newCache builds the configured backend. An unreachable Redis is logged
// but not fatal: the engine recomputes on cache errors.
func newCache(c config.CacheConfig) (cache.Cache, error) {
	switch c.Backend {
	case config.CacheNone:
		return cache.Nop{}, nil
	case config.CacheMemory:
		return cache.NewMemory(c.MaxEntries, c.TTL.Duration), nil
	case config.CacheRedis:
		r := cache.NewRedis(c.RedisAddr, c.RedisPassword, c.RedisDB, c.KeyPrefix)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, results will be recomputed", zap.String("addr", c.RedisAddr), zap.Error(err))
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
}
