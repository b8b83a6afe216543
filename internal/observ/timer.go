// Package observ provides lightweight phase timing for the CLI's
// --timings output.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one compilation phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple phases.
// It is not goroutine-safe; use one Timer per worker.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Phases returns the recorded phases in begin order.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Merge appends the phases of other after t's own.
func (t *Timer) Merge(other *Timer) {
	if other == nil {
		return
	}
	t.phases = append(t.phases, other.phases...)
}

// Summary returns a human-readable table of all tracked phases.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		fmt.Fprintf(&b, "  %-24s %8.2f ms", p.Name, float64(p.Dur.Microseconds())/1000.0)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
		total += p.Dur
	}
	fmt.Fprintf(&b, "  %-24s %8.2f ms\n", "total", float64(total.Microseconds())/1000.0)
	return b.String()
}
