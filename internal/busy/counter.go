package busy

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter is the process-wide in-flight request count behind the busy indicator.
// It never goes below zero.
type Counter struct {
	mu    sync.Mutex
	n     int
	subs  map[int]func(int)
	next  int
	gauge prometheus.Gauge
}

// New builds a counter. gauge may be nil.
func New(gauge prometheus.Gauge) *Counter {
	return &Counter{subs: map[int]func(int){}, gauge: gauge}
}

// NewGauge registers the busy gauge on reg.
func NewGauge(reg prometheus.Registerer) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "recruitadmin",
		Name:      "inflight_requests",
		Help:      "Outgoing backend requests currently in flight.",
	})
	if reg != nil {
		reg.MustRegister(g)
	}
	return g
}

func (c *Counter) Inc() { c.add(1) }

// Dec decrements, clamping at zero.
func (c *Counter) Dec() { c.add(-1) }

func (c *Counter) add(delta int) {
	c.mu.Lock()
	n := c.n + delta
	if n < 0 {
		n = 0
	}
	changed := n != c.n
	c.n = n
	if c.gauge != nil {
		c.gauge.Set(float64(n))
	}
	subs := make([]func(int), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(n)
	}
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Busy reports whether the indicator is visible.
func (c *Counter) Busy() bool { return c.Count() > 0 }

// Subscribe registers fn to be called with the new count after each change.
func (c *Counter) Subscribe(fn func(int)) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Track increments and returns the matching decrement, safe to call more than once.
func (c *Counter) Track() (done func()) {
	c.Inc()
	var once sync.Once
	return func() { once.Do(c.Dec) }
}
