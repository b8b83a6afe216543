package passes

import (
	"context"
	"strconv"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
)

// fooWires renames every wire in a module to foo_<n>, walking the op
// tree in document order with one counter for the whole module, wires
// nested in when regions included. The rename ignores original names,
// so running it twice yields the same result.
type fooWires struct{}

func init() {
	Register("foo-wires", func() Pass { return &fooWires{} })
}

func (*fooWires) Name() string { return "foo-wires" }

func (*fooWires) Run(_ context.Context, m *fir.Module, _ diag.Reporter) error {
	nWires := 0
	fir.WalkWires(m, func(w *fir.Wire) {
		w.Name = "foo_" + strconv.Itoa(nWires)
		nWires++
	})
	return nil
}
