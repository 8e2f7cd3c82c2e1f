// Package telemetry sets up OpenTelemetry tracing and metrics for the
// tracker and defines the instruments it records.
//
//	p, err := telemetry.Setup(ctx, telemetry.Options{
//	    ServiceName: "project-tracker",
//	    Exporter:    telemetry.ExporterOTLP,
//	    Endpoint:    "http://otel-collector:4318",
//	})
//	defer p.Shutdown(ctx)
//	p.Metrics.ProjectsAdded.Add(ctx, 1)
//
// A disabled setup yields a Providers value with nil members; every
// consumer treats nil Metrics as "record nothing".
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Options selects where telemetry goes.
type Options struct {
	Enabled     bool
	ServiceName string
	// Exporter is ExporterStdout or ExporterOTLP.
	Exporter string
	// Endpoint is the collector URL, required for ExporterOTLP. An https
	// scheme enables TLS.
	Endpoint string
}

// Providers owns the SDK providers registered by Setup.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup registers global tracer and meter providers and the W3C trace
// context propagator, then creates the tracker's instruments. When
// opts.Enabled is false nothing is registered.
func Setup(ctx context.Context, opts Options) (*Providers, error) {
	if !opts.Enabled {
		return &Providers{}, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	p := &Providers{}
	if p.Tracer, err = newTracerProvider(ctx, res, opts); err != nil {
		return nil, err
	}
	if p.Meter, err = newMeterProvider(ctx, res, opts); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if p.Metrics, err = NewMetrics(p.Meter, opts.ServiceName); err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, nil
}

// Shutdown flushes pending spans and metrics. It is safe on a disabled
// Providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newTracerProvider(ctx context.Context, res *resource.Resource, opts Options) (*sdktrace.TracerProvider, error) {
	exp, err := newSpanExporter(ctx, opts.Exporter, opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(res)), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, opts Options) (*sdkmetric.MeterProvider, error) {
	exp, err := newMetricExporter(ctx, opts.Exporter, opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	), nil
}
