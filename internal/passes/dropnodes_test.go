package passes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Dobios/circt/internal/fir"
)

func TestDropNodes(t *testing.T) {
	m := &fir.Module{
		Name: "Top",
		Body: fir.Block{
			&fir.Node{Name: "_t0", Expr: fir.Ref{Base: "a"}},
			&fir.Wire{Name: "a", Type: fir.UIntType{Width: 8}},
			&fir.Node{Name: "keep", Expr: fir.Ref{Base: "a"}},
			&fir.When{
				Cond: fir.Ref{Base: "en"},
				Then: fir.Block{
					&fir.Node{Name: "_t1", Expr: fir.Ref{Base: "a"}},
					&fir.Connect{Dest: fir.Ref{Base: "a"}, Src: fir.Ref{Base: "keep"}},
				},
			},
		},
	}
	runPass(t, "drop-nodes", m)

	var kept []string
	fir.Walk(m, func(op fir.Op) {
		switch x := op.(type) {
		case *fir.Node:
			kept = append(kept, "node:"+x.Name)
		case *fir.Wire:
			kept = append(kept, "wire:"+x.Name)
		case *fir.When:
			kept = append(kept, "when")
		case *fir.Connect:
			kept = append(kept, "connect")
		}
	})
	want := []string{"wire:a", "node:keep", "when", "connect"}
	if diff := cmp.Diff(want, kept); diff != "" {
		t.Errorf("remaining ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDropNodes_NoTemporaries(t *testing.T) {
	m := &fir.Module{
		Name: "Top",
		Body: fir.Block{
			&fir.Node{Name: "n", Expr: fir.Ref{Base: "a"}},
		},
	}
	runPass(t, "drop-nodes", m)
	if len(m.Body) != 1 {
		t.Errorf("body length = %d, want 1", len(m.Body))
	}
}
