package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
	"github.com/Dobios/circt/internal/source"
)

func parseString(t *testing.T, input string) (*fir.Circuit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fir", []byte(input))
	bag := diag.NewBag(16)
	c := ParseFile(fs.Get(id), diag.NewBagReporter(bag))
	return c, bag
}

var ignoreSpans = cmpopts.IgnoreTypes(source.Span{})

func TestParse_FullCircuit(t *testing.T) {
	input := `circuit Top:
  module Top:
    input clk : Clock
    output out : UInt<8>
    wire a : UInt<8>
    reg r : UInt<8>, clk
    node n = and(a, UInt<8>(1))
    inst sub of Child
    when a:
      out <= r
    else:
      out <= a
  module Child:
    input in : UInt<8>
`
	c, bag := parseString(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	want := &fir.Circuit{
		Name: "Top",
		Modules: []*fir.Module{
			{
				Name: "Top",
				Ports: []fir.Port{
					{Name: "clk", Dir: fir.In, Type: fir.ClockType{}},
					{Name: "out", Dir: fir.Out, Type: fir.UIntType{Width: 8}},
				},
				Body: fir.Block{
					&fir.Wire{Name: "a", Type: fir.UIntType{Width: 8}},
					&fir.Reg{Name: "r", Type: fir.UIntType{Width: 8}, Clk: "clk"},
					&fir.Node{Name: "n", Expr: fir.PrimOp{Op: "and", Args: []fir.Expr{
						fir.Ref{Base: "a"},
						fir.Lit{Value: 1, Type: fir.UIntType{Width: 8}},
					}}},
					&fir.Instance{Name: "sub", Module: "Child"},
					&fir.When{
						Cond: fir.Ref{Base: "a"},
						Then: fir.Block{&fir.Connect{Dest: fir.Ref{Base: "out"}, Src: fir.Ref{Base: "r"}}},
						Else: fir.Block{&fir.Connect{Dest: fir.Ref{Base: "out"}, Src: fir.Ref{Base: "a"}}},
					},
				},
			},
			{
				Name:  "Child",
				Ports: []fir.Port{{Name: "in", Dir: fir.In, Type: fir.UIntType{Width: 8}}},
			},
		},
	}
	if diff := cmp.Diff(want, c, ignoreSpans); diff != "" {
		t.Errorf("circuit mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RoundTripsThroughPrinter(t *testing.T) {
	input := `circuit Top:
  module Top:
    input clk : Clock
    output out : SInt<4>
    wire a : SInt<4>
    when a:
      wire b : SInt<4>
      b <= a
    out <= a
    printf(clk, "a=%d", a)
`
	c1, bag := parseString(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	printed := fir.Print(c1)
	c2, bag2 := parseString(t, printed)
	if bag2.HasErrors() {
		t.Fatalf("reparse diagnostics: %+v\nprinted:\n%s", bag2.Items(), printed)
	}
	if diff := cmp.Diff(c1, c2, ignoreSpans); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_InstancePortConnect(t *testing.T) {
	input := `circuit Top:
  module Top:
    wire a : UInt<1>
    inst sub of Child
    sub.in <= a
  module Child:
    input in : UInt<1>
`
	c, bag := parseString(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	conn := c.Modules[0].Body[2].(*fir.Connect)
	if conn.Dest.Base != "sub" || conn.Dest.Field != "in" {
		t.Errorf("dest = %+v, want sub.in", conn.Dest)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diag.Code
	}{
		{
			name:     "missing circuit keyword",
			input:    "module Top:\n",
			wantCode: diag.SynExpectKeyword,
		},
		{
			name:     "wire without type",
			input:    "circuit T:\n  module T:\n    wire a :\n",
			wantCode: diag.SynExpectType,
		},
		{
			name:     "missing colon after name",
			input:    "circuit T\n",
			wantCode: diag.SynExpectColon,
		},
		{
			name:     "duplicate module",
			input:    "circuit T:\n  module M:\n  module M:\n",
			wantCode: diag.SynDuplicateModule,
		},
		{
			name:     "else without when",
			input:    "circuit T:\n  module T:\n    wire a : UInt<1>\n    else:\n",
			wantCode: diag.SynUnexpectedToken,
		},
		{
			name:     "inconsistent indentation",
			input:    "circuit T:\n  module T:\n    wire a : UInt<1>\n      wire b : UInt<1>\n",
			wantCode: diag.SynBadIndent,
		},
		{
			name:     "connect missing source",
			input:    "circuit T:\n  module T:\n    out <=\n",
			wantCode: diag.SynExpectExpression,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseString(t, tt.input)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("expected code %v, got %+v", tt.wantCode, bag.Items())
			}
		})
	}
}

func TestParse_RecoversAfterBadLine(t *testing.T) {
	input := `circuit T:
  module T:
    wire a :
    wire b : UInt<1>
`
	c, bag := parseString(t, input)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics for the bad wire")
	}
	if c == nil || len(c.Modules) != 1 {
		t.Fatal("lost the module after a bad line")
	}
	if len(c.Modules[0].Body) != 1 {
		t.Fatalf("body = %d ops, want the surviving wire only", len(c.Modules[0].Body))
	}
	w := c.Modules[0].Body[0].(*fir.Wire)
	if w.Name != "b" {
		t.Errorf("surviving wire = %q, want b", w.Name)
	}
}

func TestParse_NoCircuitHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"comments only", "; placeholder\n\n; still nothing\n"},
		{"blank lines", "\n\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bag := parseString(t, tt.input)
			if c != nil {
				t.Errorf("circuit = %+v, want nil", c)
			}
			if !bag.HasErrors() {
				t.Fatal("expected a missing-header diagnostic")
			}
			if got := bag.Items()[0].Code; got != diag.SynExpectKeyword {
				t.Errorf("code = %v, want %v", got, diag.SynExpectKeyword)
			}
		})
	}
}
