package observability

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Metric primitives rendered in the Prometheus text exposition format.
// Every exported method is a no-op on a nil receiver.

type family struct {
	name   string
	help   string
	kind   string
	labels []string
}

func (f family) writeHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", f.name, f.help, f.name, f.kind)
	return err
}

// series holds one float per rendered label set. Unlabelled series start
// at zero so they are scraped before the first write.
type series struct {
	family
	mu   sync.RWMutex
	vals map[string]float64
}

func newSeries(kind, name, help string, labels []string) series {
	vals := map[string]float64{}
	if len(labels) == 0 {
		vals[""] = 0
	}
	return series{family: family{name: name, help: help, kind: kind, labels: labels}, vals: vals}
}

func (s *series) update(values []string, fn func(old float64) float64) {
	key := labelString(s.labels, values)
	s.mu.Lock()
	s.vals[key] = fn(s.vals[key])
	s.mu.Unlock()
}

func (s *series) add(d float64, values []string) {
	s.update(values, func(old float64) float64 { return old + d })
}

func (s *series) set(v float64, values []string) {
	s.update(values, func(float64) float64 { return v })
}

func (s *series) get(values []string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals[labelString(s.labels, values)]
}

func (s *series) write(w io.Writer) error {
	if err := s.writeHeader(w); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range sortedKeys(s.vals) {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", s.name, k, s.vals[k]); err != nil {
			return err
		}
	}
	return nil
}

type CounterVec struct{ s series }

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{s: newSeries("counter", name, help, labels)}
}

func (c *CounterVec) Inc(values ...string) { c.Add(1, values...) }

func (c *CounterVec) Add(v float64, values ...string) {
	if c == nil || v < 0 {
		return
	}
	c.s.add(v, values)
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	return c.s.write(w)
}

type Counter struct{ s series }

func NewCounter(name, help string) *Counter {
	return &Counter{s: newSeries("counter", name, help, nil)}
}

func (c *Counter) Inc() { c.Add(1) }

func (c *Counter) Add(v float64) {
	if c == nil || v < 0 {
		return
	}
	c.s.add(v, nil)
}

func (c *Counter) Value() float64 {
	if c == nil {
		return 0
	}
	return c.s.get(nil)
}

func (c *Counter) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	return c.s.write(w)
}

type Gauge struct{ s series }

func NewGauge(name, help string) *Gauge {
	return &Gauge{s: newSeries("gauge", name, help, nil)}
}

func (g *Gauge) Set(v float64) {
	if g != nil {
		g.s.set(v, nil)
	}
}

func (g *Gauge) Inc() {
	if g != nil {
		g.s.add(1, nil)
	}
}

func (g *Gauge) Dec() {
	if g != nil {
		g.s.add(-1, nil)
	}
}

func (g *Gauge) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	return g.s.write(w)
}

type GaugeVec struct{ s series }

func NewGaugeVec(name, help string, labels []string) *GaugeVec {
	return &GaugeVec{s: newSeries("gauge", name, help, labels)}
}

func (g *GaugeVec) Set(v float64, values ...string) {
	if g != nil {
		g.s.set(v, values)
	}
}

func (g *GaugeVec) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	return g.s.write(w)
}

var defaultBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

type HistogramVec struct {
	family
	bounds []float64

	mu   sync.RWMutex
	vals map[string]*histogram
}

// histogram counts observations per bucket; the last slot is +Inf only.
// Counts are made cumulative at write time.
type histogram struct {
	perBucket []uint64
	sum       float64
	total     uint64
}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	bounds := slices.Clone(buckets)
	sort.Float64s(bounds)
	return &HistogramVec{
		family: family{name: name, help: help, kind: "histogram", labels: labels},
		bounds: bounds,
		vals:   map[string]*histogram{},
	}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	key := labelString(h.labels, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist := h.vals[key]
	if hist == nil {
		hist = &histogram{perBucket: make([]uint64, len(h.bounds)+1)}
		h.vals[key] = hist
	}
	// First bound with v <= bound; len(bounds) lands in +Inf.
	hist.perBucket[sort.SearchFloat64s(h.bounds, v)]++
	hist.sum += v
	hist.total++
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	if err := h.writeHeader(w); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, k := range sortedKeys(h.vals) {
		hist := h.vals[k]
		var cum uint64
		for i, n := range hist.perBucket {
			cum += n
			le := "+Inf"
			if i < len(h.bounds) {
				le = fmt.Sprintf("%g", h.bounds[i])
			}
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, le), cum); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_sum%s %f\n%s_count%s %d\n", h.name, k, hist.sum, h.name, k, hist.total); err != nil {
			return err
		}
	}
	return nil
}

// labelString renders {name="value",...}. Missing values render as
// "unknown" so a short call never shifts labels.
func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	pairs := make([]string, len(names))
	for i, name := range names {
		v := "unknown"
		if i < len(values) {
			v = values[i]
		}
		pairs[i] = name + `="` + escapeLabel(v) + `"`
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string {
	return labelEscaper.Replace(v)
}

func withLe(labels string, le string) string {
	pair := `le="` + escapeLabel(le) + `"`
	if labels == "" || labels == "{}" {
		return "{" + pair + "}"
	}
	return strings.TrimSuffix(labels, "}") + "," + pair + "}"
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
