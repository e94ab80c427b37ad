package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultTreeConfig(t *testing.T) {
	config := DefaultTreeConfig()

	if config.FailureThreshold != 5.0 {
		t.Errorf("expected FailureThreshold 5.0, got %f", config.FailureThreshold)
	}
	if config.FailureDecay != 30.0 {
		t.Errorf("expected FailureDecay 30.0, got %f", config.FailureDecay)
	}
	if config.FailureBackoff != 15*time.Second {
		t.Errorf("expected FailureBackoff 15s, got %v", config.FailureBackoff)
	}
	if config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
	}
}

func TestNewAppliesDefaultsForZeroConfig(t *testing.T) {
	tree := New(testLogger(), TreeConfig{})

	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("expected default FailureThreshold 5.0, got %f", tree.config.FailureThreshold)
	}
	if tree.config.FailureDecay != 30.0 {
		t.Errorf("expected default FailureDecay 30.0, got %f", tree.config.FailureDecay)
	}
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("expected default FailureBackoff 15s, got %v", tree.config.FailureBackoff)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default ShutdownTimeout 10s, got %v", tree.config.ShutdownTimeout)
	}
}

func TestTreeStartsAndStopsGracefully(t *testing.T) {
	tree := New(testLogger(), TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   100 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	tree.AddHTTPService(NewMockService("mock-http"))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- tree.Serve(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down in time")
	}
}

func TestServeBackgroundReturnsChannel(t *testing.T) {
	tree := New(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	errCh := tree.ServeBackground(ctx)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("did not receive from error channel")
	}
}

func TestHTTPServiceIsStarted(t *testing.T) {
	tree := New(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	svc := NewMockService("http-service")
	tree.AddHTTPService(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	go tree.Serve(ctx) //nolint:errcheck

	time.Sleep(100 * time.Millisecond)

	if svc.StartCount() < 1 {
		t.Error("http service was not started")
	}
}

func TestFailingServiceIsRestarted(t *testing.T) {
	tree := New(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	svc := NewMockService("flaky-http")
	svc.SetFailCount(2)
	tree.AddHTTPService(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go tree.Serve(ctx) //nolint:errcheck

	time.Sleep(200 * time.Millisecond)

	if svc.StartCount() < 3 {
		t.Errorf("expected at least 3 starts for flaky service, got %d", svc.StartCount())
	}
}
