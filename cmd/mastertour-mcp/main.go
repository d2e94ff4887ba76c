// Command mastertour-mcp is an MCP server that exposes Master Tour (the
// Eventric tour-management platform) to AI assistants over stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tourwire/mastertour-mcp/internal/config"
	"github.com/tourwire/mastertour-mcp/internal/health"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
	"github.com/tourwire/mastertour-mcp/internal/observe"
	"github.com/tourwire/mastertour-mcp/internal/tools"
)

const (
	serverName    = "mastertour-mcp"
	serverVersion = "1.0.0"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to an optional YAML configuration file")
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mastertour-mcp: %v\n", err)
			return 1
		}
	}

	// Logs go to stderr; stdout belongs to the MCP transport.
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	env, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mastertour-mcp: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    serverName,
		ServiceVersion: serverVersion,
	})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	clientOpts := []mastertour.Option{
		mastertour.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
		mastertour.WithMetrics(metrics),
	}
	if cfg.API.BaseURL != "" {
		clientOpts = append(clientOpts, mastertour.WithBaseURL(cfg.API.BaseURL))
	}
	client, err := mastertour.NewClient(
		mastertour.Credentials{
			ConsumerKey:    env.ConsumerKey,
			ConsumerSecret: env.ConsumerSecret,
		},
		clientOpts...,
	)
	if err != nil {
		slog.Error("failed to create API client", "err", err)
		return 1
	}

	setOpts := []tools.SetOption{tools.WithMetrics(metrics)}
	if env.DefaultTourID != "" {
		setOpts = append(setOpts, tools.WithDefaultTourID(env.DefaultTourID))
	}
	set := tools.NewSet(client, setOpts...)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	tools.Register(server, set)

	slog.Info("mastertour-mcp starting",
		"log_level", cfg.Server.LogLevel,
		"metrics_addr", cfg.Server.MetricsAddr,
		"default_tour", env.DefaultTourID != "",
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.MetricsAddr != "" {
		metricsSrv := &http.Server{
			Addr:    cfg.Server.MetricsAddr,
			Handler: newMetricsHandler(metrics, client),
		}
		g.Go(func() error {
			slog.Info("metrics listener started", "addr", cfg.Server.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return server.Run(gctx, &mcp.StdioTransport{})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// newMetricsHandler serves /metrics from the default Prometheus registry,
// which the OTel exporter feeds, plus health probes, with request metrics on
// the handler itself. Readiness probes the upstream API with a tour listing.
func newMetricsHandler(m *observe.Metrics, client *mastertour.Client) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	health.New(health.Checker{
		Name: "mastertour_api",
		Check: func(ctx context.Context) error {
			_, err := client.ListTours(ctx)
			return err
		},
	}).Register(mux)
	return observe.Middleware(m)(mux)
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
