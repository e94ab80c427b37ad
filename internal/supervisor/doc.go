/*
Package supervisor provides process supervision for the exporter using
suture v4.

# Overview

The exporter runs one long-running service: the HTTP server that answers
"/" and "/metrics". A single suture supervisor owns it:

	Tree ("homers")
	└── HTTPServerService

Wrapping even a single service in suture keeps a transient listener crash
(for example a panic inside a handler that escapes chi's Recoverer) from
taking the whole process down: suture restarts the service with backoff
instead.

# Usage

	logger := logging.NewSlogLogger()
	tree := supervisor.New(logger, supervisor.DefaultTreeConfig())

	server := &http.Server{Addr: addr, Handler: router.Handler()}
	tree.AddHTTPService(supervisor.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	// ... wait for a shutdown signal, cancel ctx ...
	<-errCh

# Failure Handling

Each service failure increments a counter that decays exponentially over
FailureDecay seconds. Once the counter exceeds FailureThreshold, the
supervisor waits FailureBackoff before restarting the service again.

# Service Interface

The supervised service implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil means a clean stop; returning an error means a crash worth
restarting; a cancelled context means shutdown was requested and the
service should return promptly.
*/
package supervisor
