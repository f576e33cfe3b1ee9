package diagnostic

import "sync"

// Sink consumes diagnostics as an ordered stream.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is a Sink that keeps everything it receives. It is safe for
// concurrent use; ordering is the order of Report calls.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, d)
}

// Diagnostics returns a snapshot of everything reported so far.
func (c *Collector) Diagnostics() Diagnostics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Diagnostics{items: append([]Diagnostic(nil), c.items...)}
}

// ReportAll streams diags into sink in order.
func ReportAll(sink Sink, diags []Diagnostic) {
	for _, d := range diags {
		sink.Report(d)
	}
}
