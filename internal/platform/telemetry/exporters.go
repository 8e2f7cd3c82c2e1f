package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted in Options.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	errUnsupportedExporter = errors.New("unsupported exporter")
	errMissingEndpoint     = errors.New("otlp exporter requires an endpoint")
)

// collector is an OTLP endpoint split into what the exporters need.
type collector struct {
	hostPort string
	secure   bool
}

func parseCollector(exporter, endpoint string) (collector, error) {
	switch exporter {
	case ExporterStdout:
		return collector{}, nil
	case ExporterOTLP:
	default:
		return collector{}, fmt.Errorf("%w: %q", errUnsupportedExporter, exporter)
	}
	if endpoint == "" {
		return collector{}, errMissingEndpoint
	}

	c := collector{hostPort: endpoint}
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		c.hostPort = u.Host
		c.secure = u.Scheme == "https"
	}
	return c, nil
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	c, err := parseCollector(exporter, endpoint)
	if err != nil {
		return nil, err
	}
	if exporter == ExporterStdout {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.hostPort)}
	if !c.secure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	c, err := parseCollector(exporter, endpoint)
	if err != nil {
		return nil, err
	}
	if exporter == ExporterStdout {
		return stdoutmetric.New()
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.hostPort)}
	if !c.secure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}
