package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/kayman-mk/DevSkim/internal/logging"
	"github.com/kayman-mk/DevSkim/internal/observability"
	"github.com/kayman-mk/DevSkim/internal/ratelimit"
	"github.com/kayman-mk/DevSkim/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var src sourceFlags
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rule repository over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			if err := setupLogging(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", "", "Override server.listen")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.GetLogger("server")

	var reg *prometheus.Registry
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		metrics = observability.NewMetrics(reg)
	}

	langs, err := loadLanguages(cfg)
	if err != nil {
		return err
	}
	rs, err := buildRuleset(cfg, langs, metrics)
	if err != nil {
		return err
	}

	var limiter *ratelimit.Limiter
	if rl := cfg.Server.RateLimit; rl.Enabled {
		limiter = ratelimit.NewLimiter(rl.RPS, rl.Burst)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, egctx := errgroup.WithContext(signalCtx)

	handler := server.New(rs, langs, server.Options{
		Registry: reg,
		Limiter:  limiter,
		Logger:   logger,
	})
	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg.Go(func() error {
		logger.Info().Str("listen", srv.Addr).Int("rules", rs.Count()).Msg("Serving rules")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info().Msg("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
