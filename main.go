// Dragon Ball MCP Server - A Model Context Protocol server for the Dragon Ball API
// Provides tools for listing characters and reading character details
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/dragonball-mcp-server/internal/config"
	"github.com/olgasafonova/dragonball-mcp-server/internal/dragonball"
	"github.com/olgasafonova/dragonball-mcp-server/metrics"
	"github.com/olgasafonova/dragonball-mcp-server/tools"
	"github.com/olgasafonova/dragonball-mcp-server/tracing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	ServerName    = "dragonball-mcp-server"
	ServerVersion = "1.0.0"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = ServerVersion

// ServerInfo identifies the server to MCP clients
type ServerInfo struct {
	Name    string
	Version string
}

const instructions = `Dragon Ball MCP Server provides read-only access to the public Dragon Ball API (https://dragonball-api.com).

Available tools:
- dragonball-characters: Paginated list of characters (page, limit)
- dragonball-character-detail: One character with origin planet and transformations (id)

Use dragonball-characters to find a character id, then dragonball-character-detail for the full record.`

func main() {
	if err := newRootCmd(ServerInfo{Name: ServerName, Version: version}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(info ServerInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   info.Name,
		Short: "An MCP server for the Dragon Ball API",
		Long: `dragonball-mcp-server exposes the public Dragon Ball API as MCP tools over stdio.

Configuration is read from flags, then DRAGONBALL_* environment variables
(DRAGONBALL_API_URL, DRAGONBALL_TIMEOUT, DRAGONBALL_USER_AGENT,
DRAGONBALL_LOG_LEVEL, DRAGONBALL_LOG_FORMAT, DRAGONBALL_METRICS_ADDR).
Tracing is enabled with OTEL_ENABLED=true or OTEL_EXPORTER_OTLP_ENDPOINT.`,
		Args:          cobra.NoArgs,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, info, &mcp.StdioTransport{}, os.Stderr)
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

// run serves MCP on transport until the client disconnects or a signal arrives.
func run(ctx context.Context, cfg *config.Config, info ServerInfo, transport mcp.Transport, logOut io.Writer) error {
	logger, err := newLogger(cfg, info, logOut)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tcfg := tracing.DefaultConfig()
	tcfg.ServiceName = info.Name
	tcfg.ServiceVersion = info.Version
	tcfg.Writer = logOut
	shutdownTracing, err := tracing.Setup(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client := dragonball.NewClient(
		dragonball.WithLogger(logger),
		dragonball.WithTimeout(cfg.Timeout),
		dragonball.WithUserAgent(cfg.UserAgent),
	).WithBaseURL(cfg.APIURL)
	defer client.Close()

	server, err := newServer(info, client, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The listener stops with the MCP session.
		defer cancel()
		logger.Info("Starting Dragon Ball MCP Server",
			"name", info.Name,
			"version", info.Version,
			"api_url", cfg.APIURL,
			"timeout", cfg.Timeout,
		)
		if err := server.Run(gctx, transport); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if cfg.MetricsAddr != "" {
		httpServer := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           newHTTPHandler(info),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			return httpServer.Shutdown(sctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newServer creates the MCP server and registers every tool.
func newServer(info ServerInfo, client *dragonball.Client, logger *slog.Logger) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    info.Name,
		Version: info.Version,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions,
	})

	if err := tools.NewHandlerRegistry(client, logger).RegisterAll(server); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return server, nil
}

// newLogger builds the stderr logger. stdout carries MCP frames and is never
// written to.
func newLogger(cfg *config.Config, info ServerInfo, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	switch cfg.LogFormat {
	case config.FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case config.FormatPretty:
		// charmbracelet levels share slog's numeric values
		return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			Prefix:          info.Name,
			ReportTimestamp: true,
		})), nil
	case config.FormatText, "":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
}

// newHTTPHandler serves /metrics and /health.
func newHTTPHandler(info ServerInfo) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"name":    info.Name,
			"version": info.Version,
		})
	})
	return r
}

// countRequests records every listener request in HTTPRequestsTotal.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	})
}
