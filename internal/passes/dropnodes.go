package passes

import (
	"context"
	"strings"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
)

// dropNodes removes node ops whose name starts with "_", the usual
// convention for compiler-generated temporaries. All other ops keep
// their relative order.
type dropNodes struct{}

func init() {
	Register("drop-nodes", func() Pass { return &dropNodes{} })
}

func (*dropNodes) Name() string { return "drop-nodes" }

func (*dropNodes) Run(_ context.Context, m *fir.Module, _ diag.Reporter) error {
	m.Body = dropInBlock(m.Body)
	return nil
}

func dropInBlock(b fir.Block) fir.Block {
	out := b[:0]
	for _, op := range b {
		if n, ok := op.(*fir.Node); ok && strings.HasPrefix(n.Name, "_") {
			continue
		}
		if w, ok := op.(*fir.When); ok {
			w.Then = dropInBlock(w.Then)
			w.Else = dropInBlock(w.Else)
		}
		out = append(out, op)
	}
	return out
}
