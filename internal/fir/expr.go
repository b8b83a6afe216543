package fir

import (
	"strconv"
	"strings"
)

// Expr is the closed union of right-hand-side expressions.
type Expr interface {
	exprKind()
	String() string
}

// Ref names a signal: a port, wire, reg, node, or an instance port via
// Field ("inst.port"). Base is the identifier connect verification
// resolves against.
type Ref struct {
	Base  string
	Field string
}

func (Ref) exprKind() {}

func (r Ref) String() string {
	if r.Field != "" {
		return r.Base + "." + r.Field
	}
	return r.Base
}

// Lit is an integer literal with an explicit ground type.
type Lit struct {
	Value uint64
	Type  Type
}

func (Lit) exprKind() {}

func (l Lit) String() string {
	if l.Type == nil {
		return strconv.FormatUint(l.Value, 10)
	}
	return l.Type.String() + "(" + strconv.FormatUint(l.Value, 10) + ")"
}

// PrimOp applies a named primitive (and, or, not, add, ...) to arguments.
type PrimOp struct {
	Op   string
	Args []Expr
}

func (PrimOp) exprKind() {}

func (p PrimOp) String() string {
	var b strings.Builder
	b.WriteString(p.Op)
	b.WriteByte('(')
	for i, a := range p.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// WalkRefs calls fn for every Ref mentioned in e, in left-to-right order.
func WalkRefs(e Expr, fn func(Ref)) {
	switch x := e.(type) {
	case Ref:
		fn(x)
	case PrimOp:
		for _, a := range x.Args {
			WalkRefs(a, fn)
		}
	}
}
