package fir

import (
	"github.com/Dobios/circt/internal/source"
)

// Block is an ordered sequence of ops. Module bodies and the branches
// of When ops are blocks.
type Block []Op

// Op is the closed union of IR operations. Ops are always handled by
// pointer so passes can mutate them in place.
type Op interface {
	opKind()
	// OpSpan returns the op's source location; zero for ops built
	// programmatically.
	OpSpan() source.Span
}

// Wire declares a named signal.
type Wire struct {
	Name string
	Type Type
	Span source.Span
}

func (*Wire) opKind() {}

func (w *Wire) OpSpan() source.Span { return w.Span }

// Reg declares a named register clocked by the signal Clk refers to.
type Reg struct {
	Name string
	Type Type
	Clk  string
	Span source.Span
}

func (*Reg) opKind() {}

func (r *Reg) OpSpan() source.Span { return r.Span }

// Node binds a name to the value of an expression.
type Node struct {
	Name string
	Expr Expr
	Span source.Span
}

func (*Node) opKind() {}

func (n *Node) OpSpan() source.Span { return n.Span }

// Connect drives Dest from Src.
type Connect struct {
	Dest Ref
	Src  Expr
	Span source.Span
}

func (*Connect) opKind() {}

func (c *Connect) OpSpan() source.Span { return c.Span }

// Instance instantiates another module of the circuit under a local name.
type Instance struct {
	Name   string
	Module string
	Span   source.Span
}

func (*Instance) opKind() {}

func (i *Instance) OpSpan() source.Span { return i.Span }

// When executes Then while Cond is high, Else otherwise.
// Else may be empty.
type When struct {
	Cond Expr
	Then Block
	Else Block
	Span source.Span
}

func (*When) opKind() {}

func (w *When) OpSpan() source.Span { return w.Span }

// Printf emits a simulation-time formatted print on each clock edge.
type Printf struct {
	Clk    string
	Format string
	Args   []Expr
	Span   source.Span
}

func (*Printf) opKind() {}

func (p *Printf) OpSpan() source.Span { return p.Span }
