// Package observe provides application-wide observability primitives for
// flexfx: OpenTelemetry metrics for the play-list scheduler and the provider
// initialisation that bridges them to Prometheus.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. Tests should use [NewMetrics]
// with a custom [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/MrWong99/flexfx/pkg/flexfx/player"
)

// meterName is the instrumentation scope name used for all flexfx metrics.
const meterName = "github.com/MrWong99/flexfx"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// PlaysStarted counts tone Plays handed to the renderer.
	PlaysStarted metric.Int64Counter

	// PlaysFinished counts tone Plays the renderer completed.
	PlaysFinished metric.Int64Counter

	// RenderDuration tracks how long each render call actually blocked.
	RenderDuration metric.Float64Histogram

	// QueueDepth records the play-list length after every queue mutation.
	QueueDepth metric.Int64Gauge
}

// renderBuckets defines histogram bucket boundaries (in seconds) sized for
// short sound effects: most plays last well under ten seconds.
var renderBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.PlaysStarted, err = m.Int64Counter("flexfx.plays.started",
		metric.WithDescription("Total tone plays handed to the renderer."),
	); err != nil {
		return nil, err
	}
	if met.PlaysFinished, err = m.Int64Counter("flexfx.plays.finished",
		metric.WithDescription("Total tone plays completed by the renderer."),
	); err != nil {
		return nil, err
	}
	if met.RenderDuration, err = m.Float64Histogram("flexfx.render.duration",
		metric.WithDescription("Wall-clock time each render call blocked."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(renderBuckets...),
	); err != nil {
		return nil, err
	}
	if met.QueueDepth, err = m.Int64Gauge("flexfx.playlist.depth",
		metric.WithDescription("Current play-list length."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: default metrics initialisation failed: " + err.Error())
		}
	})
	return defaultMetrics
}

// Compile-time assertion that PlayerMetrics satisfies the player's sink.
var _ player.Metrics = (*PlayerMetrics)(nil)

// PlayerMetrics adapts [Metrics] to the [player.Metrics] interface. Its
// methods are called with player locks held; the OTel instruments do not
// block, so recording inline is safe.
type PlayerMetrics struct {
	m *Metrics
}

// NewPlayerMetrics wraps m for use with [player.WithMetrics].
func NewPlayerMetrics(m *Metrics) *PlayerMetrics {
	return &PlayerMetrics{m: m}
}

// PlayStarted implements [player.Metrics].
func (p *PlayerMetrics) PlayStarted() {
	p.m.PlaysStarted.Add(context.Background(), 1)
}

// PlayFinished implements [player.Metrics].
func (p *PlayerMetrics) PlayFinished(elapsed time.Duration) {
	p.m.PlaysFinished.Add(context.Background(), 1)
	p.m.RenderDuration.Record(context.Background(), elapsed.Seconds())
}

// QueueDepth implements [player.Metrics].
func (p *PlayerMetrics) QueueDepth(n int) {
	p.m.QueueDepth.Record(context.Background(), int64(n))
}
