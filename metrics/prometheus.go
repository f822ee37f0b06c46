package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider backs Provider with real Prometheus instruments,
// following the RED-style instrumentation in ChuLiYu-raft-recovery's
// internal/metrics/metrics.go (counters for throughput, a histogram for
// latency, gauges for saturation). Unlike that package, instruments here are
// registered against a private *prometheus.Registry rather than the global
// default registry, so constructing more than one PrometheusProvider (for
// example, one per Pool in a test suite) never panics on duplicate
// registration.
//
// PrometheusProvider does not start an HTTP server or otherwise perform I/O:
// exposing /metrics is the embedding application's concern. Call Gatherer to
// obtain the underlying registry and wire it into your own promhttp.Handler.
type PrometheusProvider struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]Counter
	updowns    map[string]UpDownCounter
	histograms map[string]Histogram
}

// NewPrometheusProvider constructs a PrometheusProvider backed by a fresh,
// private prometheus.Registry.
func NewPrometheusProvider() *PrometheusProvider {
	return &PrometheusProvider{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]Counter),
		updowns:    make(map[string]UpDownCounter),
		histograms: make(map[string]Histogram),
	}
}

// Gatherer exposes the provider's private registry so the embedding
// application can serve it however it likes (promhttp, a push gateway, a
// test assertion against the gathered families, ...).
func (p *PrometheusProvider) Gatherer() prometheus.Gatherer {
	return p.registry
}

func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.counters[name]; ok {
		return c
	}

	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: helpFor(cfg, name)})
	p.registry.MustRegister(c)
	wrapped := prometheusCounter{c}
	p.counters[name] = wrapped
	return wrapped
}

func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.updowns[name]; ok {
		return g
	}

	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: helpFor(cfg, name)})
	p.registry.MustRegister(g)
	wrapped := prometheusGauge{g}
	p.updowns[name] = wrapped
	return wrapped
}

func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.histograms[name]; ok {
		return h
	}

	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    helpFor(cfg, name),
		Buckets: prometheus.DefBuckets,
	})
	p.registry.MustRegister(h)
	wrapped := prometheusHistogram{h}
	p.histograms[name] = wrapped
	return wrapped
}

func helpFor(cfg InstrumentConfig, name string) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return name
}

// prometheusCounter adapts prometheus.Counter's float64 Add to the int64
// Counter surface.
type prometheusCounter struct {
	c prometheus.Counter
}

func (pc prometheusCounter) Add(n int64) { pc.c.Add(float64(n)) }

// prometheusGauge adapts prometheus.Gauge (which additionally exposes Set,
// Inc, Dec) to the narrower UpDownCounter surface.
type prometheusGauge struct {
	g prometheus.Gauge
}

func (pg prometheusGauge) Add(n int64) { pg.g.Add(float64(n)) }

// prometheusHistogram adapts prometheus.Histogram's Observe to the Record
// surface.
type prometheusHistogram struct {
	h prometheus.Histogram
}

func (ph prometheusHistogram) Record(v float64) { ph.h.Observe(v) }
