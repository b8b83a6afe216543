package passes

import (
	"context"
	"fmt"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
)

// checkConnects verifies that every reference in a connect resolves to
// a declared port, wire, reg, node or instance of the module. It never
// mutates the IR; findings go to the reporter as diagnostics.
type checkConnects struct{}

func init() {
	Register("check-connects", func() Pass { return &checkConnects{} })
}

func (*checkConnects) Name() string { return "check-connects" }

func (*checkConnects) Run(_ context.Context, m *fir.Module, r diag.Reporter) error {
	declared := map[string]bool{}
	for _, p := range m.Ports {
		declared[p.Name] = true
	}
	fir.Walk(m, func(op fir.Op) {
		switch x := op.(type) {
		case *fir.Wire:
			declared[x.Name] = true
		case *fir.Reg:
			declared[x.Name] = true
		case *fir.Node:
			declared[x.Name] = true
		case *fir.Instance:
			declared[x.Name] = true
		}
	})

	check := func(ref fir.Ref, op fir.Op) {
		if !declared[ref.Base] {
			diag.ReportError(r, diag.VerifyUnresolvedRef, op.OpSpan(),
				fmt.Sprintf("reference to undeclared name %q", ref.Base))
		}
	}

	fir.Walk(m, func(op fir.Op) {
		c, ok := op.(*fir.Connect)
		if !ok {
			return
		}
		check(c.Dest, c)
		fir.WalkRefs(c.Src, func(ref fir.Ref) { check(ref, c) })
		if src, ok := c.Src.(fir.Ref); ok && src == c.Dest {
			diag.ReportWarning(r, diag.VerifySelfConnect, c.Span,
				fmt.Sprintf("%q is connected to itself", c.Dest))
		}
	})
	return nil
}
