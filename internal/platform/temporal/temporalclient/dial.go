// Package temporalclient dials Temporal with tracing and structured logging.
package temporalclient

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// Options addresses a Temporal frontend.
type Options struct {
	Address   string
	Namespace string
	Logger    *slog.Logger
	// Tracer is optional; the global provider is used when nil.
	Tracer trace.Tracer
}

// Dial connects to Temporal with an OpenTelemetry tracing interceptor installed.
func Dial(opts Options) (client.Client, error) {
	if opts.Address == "" {
		opts.Address = client.DefaultHostPort
	}
	if opts.Namespace == "" {
		opts.Namespace = client.DefaultNamespace
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: opts.Tracer})
	if err != nil {
		return nil, err
	}
	clientOptions := client.Options{
		HostPort:  opts.Address,
		Namespace: opts.Namespace,
		Logger:    workerlog.NewStructuredLogger(opts.Logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	return client.Dial(clientOptions)
}
