package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestPrometheusProvider_CounterAccumulates(t *testing.T) {
	p := NewPrometheusProvider()
	c := p.Counter("requests_total")
	c.Add(2)
	c.Add(3)

	families, err := p.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	got := findCounterValue(t, families, "requests_total")
	if got != 5 {
		t.Fatalf("counter value = %v; want 5", got)
	}
}

func TestPrometheusProvider_ReusesInstrumentByName(t *testing.T) {
	p := NewPrometheusProvider()
	c1 := p.Counter("dup_total")
	c2 := p.Counter("dup_total")

	c1.Add(1)
	c2.Add(1)

	families, err := p.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := findCounterValue(t, families, "dup_total"); got != 2 {
		t.Fatalf("counter value = %v; want 2 (same instrument reused)", got)
	}
}

func TestPrometheusProvider_MultipleInstancesDoNotPanic(t *testing.T) {
	// A single global registry would panic on duplicate registration; a
	// private registry per provider must not.
	p1 := NewPrometheusProvider()
	p2 := NewPrometheusProvider()

	p1.Counter("chanpool_tasks_submitted_total")
	p2.Counter("chanpool_tasks_submitted_total")
}

func findCounterValue(t *testing.T, families []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric family %q not found", name)
	return 0
}
