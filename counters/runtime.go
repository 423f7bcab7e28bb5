package counters

import (
	"fmt"
	"runtime/metrics"
)

// Well-known runtime/metrics names the memory overlay asks for.
const (
	MetricHeapAllocsBytes = "/gc/heap/allocs:bytes"
	MetricTotalBytes      = "/memory/classes/total:bytes"
	MetricGCCycles        = "/gc/cycles/total:gc-cycles"
)

// RuntimeSource opens counters backed by the runtime/metrics package.
// Names are runtime/metrics paths; names the current runtime does not
// implement fail at Open time, per name.
type RuntimeSource struct {
	known map[string]metrics.Description
}

// NewRuntimeSource enumerates the metrics this runtime supports.
func NewRuntimeSource() *RuntimeSource {
	known := make(map[string]metrics.Description)
	for _, d := range metrics.All() {
		known[d.Name] = d
	}
	return &RuntimeSource{known: known}
}

// Open acquires the named runtime metric. The returned counter holds
// its own sample slot, so repeated Reads do not allocate.
func (s *RuntimeSource) Open(name string) (Counter, error) {
	if _, ok := s.known[name]; !ok {
		return nil, fmt.Errorf("counters: runtime metric %q not supported", name)
	}
	c := &runtimeCounter{}
	c.sample[0].Name = name

	// Verify the metric actually yields a readable value kind before
	// handing it out.
	if _, ok := c.Read(); !ok {
		return nil, fmt.Errorf("counters: runtime metric %q has unreadable kind", name)
	}
	return c, nil
}

type runtimeCounter struct {
	sample [1]metrics.Sample
}

func (c *runtimeCounter) Read() (float64, bool) {
	metrics.Read(c.sample[:])
	switch c.sample[0].Value.Kind() {
	case metrics.KindUint64:
		return float64(c.sample[0].Value.Uint64()), true
	case metrics.KindFloat64:
		return c.sample[0].Value.Float64(), true
	default:
		return 0, false
	}
}

func (c *runtimeCounter) Close() {}
