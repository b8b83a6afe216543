package fir

// Walk visits every op in the module body in pre-order document order:
// an op is visited before the ops nested in its regions, and the Then
// block of a When before its Else block.
func Walk(m *Module, fn func(Op)) {
	walkBlock(m.Body, fn)
}

func walkBlock(b Block, fn func(Op)) {
	for _, op := range b {
		fn(op)
		if w, ok := op.(*When); ok {
			walkBlock(w.Then, fn)
			walkBlock(w.Else, fn)
		}
	}
}

// WalkWires visits every wire declaration in traversal order, including
// wires nested inside When regions.
func WalkWires(m *Module, fn func(*Wire)) {
	Walk(m, func(op Op) {
		if w, ok := op.(*Wire); ok {
			fn(w)
		}
	})
}

// CountOps returns the number of ops in the module body, regions included.
func CountOps(m *Module) int {
	n := 0
	Walk(m, func(Op) { n++ })
	return n
}
