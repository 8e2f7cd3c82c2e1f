package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys used on spans and metric points.
var (
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrHTTPRoute  = attribute.Key("http.route")
	AttrResult     = attribute.Key("result")
	AttrBucket     = attribute.Key("tracker.bucket")
)

// Metrics holds the instruments the tracker records on.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter

	ProjectsAdded         metric.Int64Counter
	ProjectsMoved         metric.Int64Counter
	MoveMisses            metric.Int64Counter
	ListenerNotifications metric.Int64Counter
	DragEvents            metric.Int64Counter
}

// NewMetrics creates every instrument on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	m := &Metrics{}

	var err error
	m.ServerRequestDuration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	counters := []struct {
		dst              *metric.Int64Counter
		name, desc, unit string
	}{
		{&m.ServerRequestTotal, "http.server.request.total", "Incoming HTTP requests", "{request}"},
		{&m.ProjectsAdded, "tracker.projects.added", "Projects added to the store", "{project}"},
		{&m.ProjectsMoved, "tracker.projects.moved", "Project status changes applied by the store", "{move}"},
		{&m.MoveMisses, "tracker.move.misses", "Moves ignored because the id or status was unknown", "{move}"},
		{&m.ListenerNotifications, "tracker.listener.notifications", "Snapshots delivered to store listeners", "{call}"},
		{&m.DragEvents, "tracker.drag.events", "Drag events handled by bucket drop targets", "{event}"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", c.name, err)
		}
	}
	return m, nil
}
