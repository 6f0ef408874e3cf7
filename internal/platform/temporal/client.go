// Package temporal holds the Temporal client plumbing shared by the API, worker and CLI.
package temporal

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal is switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Config selects the Temporal frontend to talk to.
type Config struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Dial connects a Temporal client with slog logging and OpenTelemetry tracing.
func Dial(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	options, err := ClientOptions(cfg, logger, tracer)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

// ClientOptions builds the options Dial uses.
func ClientOptions(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Options, error) {
	if cfg.Disabled {
		return client.Options{}, ErrDisabled
	}
	if logger == nil {
		logger = slog.Default()
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, err
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	if options.HostPort == "" {
		options.HostPort = client.DefaultHostPort
	}
	if options.Namespace == "" {
		options.Namespace = client.DefaultNamespace
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}
