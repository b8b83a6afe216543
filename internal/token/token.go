// Package token defines the lexical vocabulary of the FIRRTL-like
// text format understood by the frontend.
package token

import (
	"github.com/Dobios/circt/internal/source"
)

// Kind classifies a token.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Int
	String

	Colon
	Comma
	Less
	Greater
	LParen
	RParen
	Equal
	Dot
	Connect // "<="

	KwCircuit
	KwModule
	KwInput
	KwOutput
	KwWire
	KwReg
	KwNode
	KwInst
	KwOf
	KwWhen
	KwElse
	KwPrintf
	KwUInt
	KwSInt
	KwClock
	KwReset
)

var kindNames = map[Kind]string{
	EOF:       "EOF",
	Ident:     "identifier",
	Int:       "integer",
	String:    "string",
	Colon:     ":",
	Comma:     ",",
	Less:      "<",
	Greater:   ">",
	LParen:    "(",
	RParen:    ")",
	Equal:     "=",
	Dot:       ".",
	Connect:   "<=",
	KwCircuit: "circuit",
	KwModule:  "module",
	KwInput:   "input",
	KwOutput:  "output",
	KwWire:    "wire",
	KwReg:     "reg",
	KwNode:    "node",
	KwInst:    "inst",
	KwOf:      "of",
	KwWhen:    "when",
	KwElse:    "else",
	KwPrintf:  "printf",
	KwUInt:    "UInt",
	KwSInt:    "SInt",
	KwClock:   "Clock",
	KwReset:   "Reset",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"circuit": KwCircuit,
	"module":  KwModule,
	"input":   KwInput,
	"output":  KwOutput,
	"wire":    KwWire,
	"reg":     KwReg,
	"node":    KwNode,
	"inst":    KwInst,
	"of":      KwOf,
	"when":    KwWhen,
	"else":    KwElse,
	"printf":  KwPrintf,
	"UInt":    KwUInt,
	"SInt":    KwSInt,
	"Clock":   KwClock,
	"Reset":   KwReset,
}

// Lookup maps an identifier to its keyword kind, or Ident.
func Lookup(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// Token is one lexeme with its source span.
// Text is set for identifiers, integers and strings.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is one of the reserved words.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwCircuit
}
