// Package supervisor wraps the exporter's HTTP server in a suture
// supervisor so a crashed listener restarts instead of taking the whole
// process down with it.
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig controls the supervisor's restart policy.
type TreeConfig struct {
	// FailureThreshold is the number of failures, weighted by decay, that
	// the supervisor tolerates before entering backoff.
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay, in seconds.
	FailureDecay float64

	// FailureBackoff is how long the supervisor waits before restarting a
	// failed service once the threshold is exceeded.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long Serve waits for the service to exit
	// once its context is cancelled.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns production-ready defaults. These match suture's
// own built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree supervises the exporter's single HTTP service. A multi-layer tree
// earns its keep when independent subsystems need independent failure
// isolation; the exporter has exactly one long-running service, so one
// supervisor is enough - adding data/messaging/api layers here would
// supervise nothing.
type Tree struct {
	root   *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// New creates a supervisor tree that logs events through logger.
func New(logger *slog.Logger, config TreeConfig) *Tree {
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5.0
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = 30.0
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = 15 * time.Second
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	handler := &sutureslog.Handler{Logger: logger}
	root := suture.New("homers", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	})

	return &Tree{root: root, logger: logger, config: config}
}

// AddHTTPService adds the exporter's HTTP server as a supervised service
// and returns its suture service token.
func (t *Tree) AddHTTPService(svc suture.Service) suture.ServiceToken {
	return t.root.Add(svc)
}

// Serve starts the tree and blocks until ctx is cancelled and every
// supervised service has exited.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree in a background goroutine. The returned
// channel receives Serve's result once the tree stops.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport reports services that failed to stop within the
// configured shutdown timeout, for logging after a forced exit.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
