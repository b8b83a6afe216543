// Package passmgr builds pass pipelines and schedules them over the
// modules of a circuit. Each module is processed by at most one
// goroutine at a time, so passes stay single-threaded; parallelism
// exists only across modules.
package passmgr

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
	"github.com/Dobios/circt/internal/observ"
	"github.com/Dobios/circt/internal/passes"
)

// Pipeline is an ordered list of instantiated passes.
type Pipeline struct {
	list []passes.Pass
}

// New instantiates a pipeline from pass names, in order.
// Unknown names are an error.
func New(names []string) (*Pipeline, error) {
	p := &Pipeline{list: make([]passes.Pass, 0, len(names))}
	for _, name := range names {
		factory, ok := passes.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown pass %q (known: %v)", name, passes.Names())
		}
		p.list = append(p.list, factory())
	}
	return p, nil
}

// Names returns the pass names in pipeline order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.list))
	for i, ps := range p.list {
		out[i] = ps.Name()
	}
	return out
}

// Len returns the number of passes in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.list)
}

// RunModule executes the pipeline on one module. The reporter collects
// pass diagnostics; timer, when non-nil, records one phase per pass.
func (p *Pipeline) RunModule(ctx context.Context, m *fir.Module, r diag.Reporter, timer *observ.Timer) error {
	for _, ps := range p.list {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := -1
		if timer != nil {
			idx = timer.Begin(ps.Name())
		}
		err := ps.Run(ctx, m, r)
		if timer != nil {
			timer.End(idx, m.Name)
		}
		if err != nil {
			return fmt.Errorf("pass %q on module %q: %w", ps.Name(), m.Name, err)
		}
	}
	return nil
}

// RunCircuit executes the pipeline on every module of the circuit,
// jobs modules at a time (0 means GOMAXPROCS). Diagnostics and timings
// are merged back in module declaration order, so the result is
// deterministic regardless of scheduling.
func (p *Pipeline) RunCircuit(ctx context.Context, c *fir.Circuit, bag *diag.Bag, timer *observ.Timer, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	bags := make([]*diag.Bag, len(c.Modules))
	timers := make([]*observ.Timer, len(c.Modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, m := range c.Modules {
		i, m := i, m
		bags[i] = diag.NewBag(bag.Cap())
		if timer != nil {
			timers[i] = observ.NewTimer()
		}
		g.Go(func() error {
			return p.RunModule(gctx, m, diag.NewBagReporter(bags[i]), timers[i])
		})
	}
	err := g.Wait()

	for i := range c.Modules {
		bag.Merge(bags[i])
		if timer != nil {
			timer.Merge(timers[i])
		}
	}
	return err
}
