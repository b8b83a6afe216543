package fir

import (
	"fmt"
	"strings"
)

const indentStep = "  "

// Print renders the circuit in the textual form the parser accepts.
// Output is deterministic: it depends only on the IR structure.
func Print(c *Circuit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "circuit %s:\n", c.Name)
	for _, m := range c.Modules {
		printModule(&b, m, 1)
	}
	return b.String()
}

// PrintModule renders a single module at top level.
func PrintModule(m *Module) string {
	var b strings.Builder
	printModule(&b, m, 0)
	return b.String()
}

func printModule(b *strings.Builder, m *Module, depth int) {
	ind := strings.Repeat(indentStep, depth)
	fmt.Fprintf(b, "%smodule %s:\n", ind, m.Name)
	for _, p := range m.Ports {
		fmt.Fprintf(b, "%s%s%s %s : %s\n", ind, indentStep, p.Dir, p.Name, p.Type)
	}
	printBlock(b, m.Body, depth+1)
}

func printBlock(b *strings.Builder, block Block, depth int) {
	ind := strings.Repeat(indentStep, depth)
	for _, op := range block {
		switch x := op.(type) {
		case *Wire:
			fmt.Fprintf(b, "%swire %s : %s\n", ind, x.Name, x.Type)
		case *Reg:
			fmt.Fprintf(b, "%sreg %s : %s, %s\n", ind, x.Name, x.Type, x.Clk)
		case *Node:
			fmt.Fprintf(b, "%snode %s = %s\n", ind, x.Name, x.Expr)
		case *Connect:
			fmt.Fprintf(b, "%s%s <= %s\n", ind, x.Dest, x.Src)
		case *Instance:
			fmt.Fprintf(b, "%sinst %s of %s\n", ind, x.Name, x.Module)
		case *When:
			fmt.Fprintf(b, "%swhen %s:\n", ind, x.Cond)
			printBlock(b, x.Then, depth+1)
			if len(x.Else) > 0 {
				fmt.Fprintf(b, "%selse:\n", ind)
				printBlock(b, x.Else, depth+1)
			}
		case *Printf:
			fmt.Fprintf(b, "%sprintf(%s, %q", ind, x.Clk, x.Format)
			for _, a := range x.Args {
				fmt.Fprintf(b, ", %s", a)
			}
			fmt.Fprintf(b, ")\n")
		}
	}
}
