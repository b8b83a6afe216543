// Package fir defines the hardware intermediate representation: a
// circuit of modules whose bodies are trees of declaration and
// statement ops. Op and type kinds are closed tagged unions in the
// marker-method style, so passes can filter a heterogeneous op tree
// with plain type switches.
package fir

import (
	"fmt"

	"github.com/Dobios/circt/internal/source"
)

// Circuit is the top-level compilation unit: a named list of modules.
// The first module whose name matches the circuit name is the top.
type Circuit struct {
	Name    string
	Modules []*Module
	Span    source.Span
}

// Top returns the top module, or nil if the circuit has none.
func (c *Circuit) Top() *Module {
	for _, m := range c.Modules {
		if m.Name == c.Name {
			return m
		}
	}
	return nil
}

// FindModule returns the module with the given name, or nil.
func (c *Circuit) FindModule(name string) *Module {
	for _, m := range c.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Module is one hardware module: a port list and a body of ops.
type Module struct {
	Name  string
	Ports []Port
	Body  Block
	Span  source.Span
}

// Direction distinguishes input from output ports.
type Direction uint8

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == Out {
		return "output"
	}
	return "input"
}

// Port is a named, directed module boundary signal.
type Port struct {
	Name string
	Dir  Direction
	Type Type
	Span source.Span
}

// Type is the closed union of ground types.
type Type interface {
	typeKind()
	String() string
}

// UIntType is an unsigned integer of a fixed bit width.
type UIntType struct {
	Width uint32
}

func (UIntType) typeKind() {}

func (t UIntType) String() string {
	return fmt.Sprintf("UInt<%d>", t.Width)
}

// SIntType is a signed integer of a fixed bit width.
type SIntType struct {
	Width uint32
}

func (SIntType) typeKind() {}

func (t SIntType) String() string {
	return fmt.Sprintf("SInt<%d>", t.Width)
}

// ClockType is the clock ground type.
type ClockType struct{}

func (ClockType) typeKind() {}

func (ClockType) String() string {
	return "Clock"
}

// ResetType is the synchronous reset ground type.
type ResetType struct{}

func (ResetType) typeKind() {}

func (ResetType) String() string {
	return "Reset"
}
