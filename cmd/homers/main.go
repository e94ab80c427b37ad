// Package main is the entry point for the homers metrics exporter.
//
// homers exposes a pull-model Prometheus/OpenMetrics endpoint over a
// media stack (Sonarr, Radarr, Lidarr, Readarr, Overseerr, Jellyseerr,
// Tautulli, Plex, Jellyfin): each GET /metrics fans a scrape out across
// every configured instance, waits up to a configurable deadline, and
// encodes whatever came back - on a fresh registry, never shared across
// requests.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables prefixed HOMERS_, a TOML config
// file, then built-in defaults.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP listener stops
// accepting new connections and an in-flight scrape is given up to the
// scrape deadline to finish before the process exits.
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

	"github.com/spf13/cobra"

	"github.com/tcheronneau/homers-go/internal/config"
	"github.com/tcheronneau/homers-go/internal/geo"
	"github.com/tcheronneau/homers-go/internal/httpserver"
	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/supervisor"
	"github.com/tcheronneau/homers-go/internal/task"
)

var version = "dev"

var (
	configPath string
	verbosity  int
	quietness  int
)

var rootCmd = &cobra.Command{
	Use:   "homers",
	Short: "Prometheus exporter for a Sonarr/Radarr/Lidarr/Readarr/Overseerr/Jellyseerr/Tautulli/Plex/Jellyfin stack",
	Long: `homers scrapes a media stack on demand and exposes the result as
Prometheus or OpenMetrics text at /metrics.

It never polls on its own: every scrape is triggered by an incoming
request and fans out to every configured instance concurrently, bounded
by a deadline and an optional concurrency cap.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the TOML configuration file (required)")
	_ = rootCmd.MarkFlagRequired("config")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.Flags().CountVarP(&quietness, "quiet", "q", "decrease log verbosity (repeatable)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("homers {{.Version}}\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// logLevels is ordered least to most severe; -v walks left, -q walks right
// from the configured base level.
var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal"}

func adjustedLogLevel(base string, verbose, quiet int) string {
	idx := 2 // info, matching logging.DefaultConfig's default
	for i, l := range logLevels {
		if l == base {
			idx = i
			break
		}
	}

	idx -= verbose
	idx += quiet

	if idx < 0 {
		idx = 0
	}
	if idx > len(logLevels)-1 {
		idx = len(logLevels) - 1
	}
	return logLevels[idx]
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
		return err
	}

	logging.Init(logging.Config{Level: adjustedLogLevel(cfg.HTTP.LogLevel, verbosity, quietness)})
	logging.Info().Str("config", configPath).Msg("starting homers")

	resolver := geo.Open(cfg.Geo.DatabasePath)
	defer func() {
		if err := resolver.Close(); err != nil {
			logging.Warn().Err(err).Msg("error closing geo database")
		}
	}()

	tasks := task.Build(cfg, resolver)
	logging.Info().Int("tasks", len(tasks)).Msg("task registry built")

	router := httpserver.New(tasks, cfg.Scrape)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scrapeDeadline := time.Duration(cfg.Scrape.DeadlineSeconds) * time.Second

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      router.Handler(),
		ReadTimeout:  scrapeDeadline,
		WriteTimeout: scrapeDeadline,
		IdleTimeout:  60 * time.Second,
	}

	slogLogger := logging.NewSlogLogger()
	tree := supervisor.New(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		// Shutdown must outlast a scrape in flight, per the deadline
		// contract: a scrape started a moment before SIGTERM still gets
		// to finish and be served.
		ShutdownTimeout: scrapeDeadline,
	})
	tree.AddHTTPService(supervisor.NewHTTPServerService(server, scrapeDeadline))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("listening")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor stopped with error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within the shutdown timeout")
	}

	logging.Info().Msg("homers stopped gracefully")
	return nil
}
