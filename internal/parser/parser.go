// Package parser turns the line-oriented text format into fir IR.
//
// The grammar is declaration-oriented, so the parser builds ops
// directly without an intermediate AST. Problems are reported through
// a diag.Reporter and parsing continues on the next line, so one bad
// line does not hide the rest of the file.
package parser

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
	"github.com/Dobios/circt/internal/lexer"
	"github.com/Dobios/circt/internal/source"
	"github.com/Dobios/circt/internal/token"
)

// Parser consumes the lexer's line stream.
type Parser struct {
	file     *source.File
	lines    []lexer.Line
	pos      int
	reporter diag.Reporter
}

// ParseFile lexes and parses one source file into a circuit.
// A nil circuit always comes with at least one reported diagnostic;
// partial results are returned alongside the diagnostics otherwise.
func ParseFile(file *source.File, reporter diag.Reporter) *fir.Circuit {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	lines := lexer.New(file, reporter).Lex()
	p := &Parser{file: file, lines: lines, reporter: reporter}
	return p.parseCircuit()
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.lines)
}

func (p *Parser) peek() *lexer.Line {
	if p.eof() {
		return nil
	}
	return &p.lines[p.pos]
}

func (p *Parser) next() *lexer.Line {
	ln := p.peek()
	if ln != nil {
		p.pos++
	}
	return ln
}

func (p *Parser) parseCircuit() *fir.Circuit {
	ln := p.next()
	if ln == nil {
		diag.ReportError(p.reporter, diag.SynExpectKeyword,
			source.Span{File: p.file.ID},
			"expected 'circuit' at the top of the file")
		return nil
	}
	lc := newLineCursor(ln, p.reporter)
	if !lc.expect(token.KwCircuit) {
		return nil
	}
	name, ok := lc.expectIdent()
	if !ok {
		return nil
	}
	lc.expect(token.Colon)

	c := &fir.Circuit{Name: name, Span: ln.Span}
	seen := map[string]bool{}
	for !p.eof() {
		ml := p.peek()
		if ml.Indent <= ln.Indent {
			diag.ReportError(p.reporter, diag.SynBadIndent, ml.Span,
				"expected an indented module declaration")
			p.next()
			continue
		}
		m := p.parseModule()
		if m == nil {
			continue
		}
		if seen[m.Name] {
			diag.ReportError(p.reporter, diag.SynDuplicateModule, m.Span,
				fmt.Sprintf("module %q is declared twice", m.Name))
			continue
		}
		seen[m.Name] = true
		c.Modules = append(c.Modules, m)
	}
	return c
}

func (p *Parser) parseModule() *fir.Module {
	ln := p.next()
	lc := newLineCursor(ln, p.reporter)
	if !lc.expect(token.KwModule) {
		return nil
	}
	name, ok := lc.expectIdent()
	if !ok {
		return nil
	}
	lc.expect(token.Colon)

	m := &fir.Module{Name: name, Span: ln.Span}

	// Ports come first; the first non-port line switches to the body.
	for !p.eof() && p.peek().Indent > ln.Indent {
		kind := p.peek().Toks[0].Kind
		if kind != token.KwInput && kind != token.KwOutput {
			break
		}
		if port, ok := p.parsePort(); ok {
			m.Ports = append(m.Ports, port)
		}
	}
	m.Body = p.parseBlock(ln.Indent)
	return m
}

func (p *Parser) parsePort() (fir.Port, bool) {
	ln := p.next()
	lc := newLineCursor(ln, p.reporter)
	dir := fir.In
	if lc.at(token.KwOutput) {
		dir = fir.Out
	}
	lc.bump()
	name, ok := lc.expectIdent()
	if !ok {
		return fir.Port{}, false
	}
	if !lc.expect(token.Colon) {
		return fir.Port{}, false
	}
	typ, ok := lc.parseType()
	if !ok {
		return fir.Port{}, false
	}
	return fir.Port{Name: name, Dir: dir, Type: typ, Span: ln.Span}, true
}

// parseBlock consumes ops while lines stay deeper than parentIndent.
// The first line fixes the block's indentation; deeper lines belong to
// nested regions and shallower ones end the block.
func (p *Parser) parseBlock(parentIndent int) fir.Block {
	var block fir.Block
	blockIndent := -1
	for !p.eof() {
		ln := p.peek()
		if ln.Indent <= parentIndent {
			return block
		}
		if blockIndent < 0 {
			blockIndent = ln.Indent
		}
		if ln.Indent != blockIndent {
			diag.ReportError(p.reporter, diag.SynBadIndent, ln.Span,
				fmt.Sprintf("inconsistent indentation: got %d, block uses %d", ln.Indent, blockIndent))
			p.next()
			continue
		}
		if ln.Toks[0].Kind == token.KwElse {
			// A when consumes its own else right after the then
			// block, so an else seen here has no matching when.
			diag.ReportError(p.reporter, diag.SynUnexpectedToken, ln.Span,
				"else without a matching when")
			p.next()
			continue
		}
		if op := p.parseOp(); op != nil {
			block = append(block, op)
		}
	}
	return block
}

func (p *Parser) parseOp() fir.Op {
	ln := p.next()
	lc := newLineCursor(ln, p.reporter)

	switch lc.peek().Kind {
	case token.KwWire:
		lc.bump()
		name, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		if !lc.expect(token.Colon) {
			return nil
		}
		typ, ok := lc.parseType()
		if !ok {
			return nil
		}
		return &fir.Wire{Name: name, Type: typ, Span: ln.Span}

	case token.KwReg:
		lc.bump()
		name, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		if !lc.expect(token.Colon) {
			return nil
		}
		typ, ok := lc.parseType()
		if !ok {
			return nil
		}
		if !lc.expect(token.Comma) {
			return nil
		}
		clk, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		return &fir.Reg{Name: name, Type: typ, Clk: clk, Span: ln.Span}

	case token.KwNode:
		lc.bump()
		name, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		if !lc.expect(token.Equal) {
			return nil
		}
		expr, ok := lc.parseExpr()
		if !ok {
			return nil
		}
		return &fir.Node{Name: name, Expr: expr, Span: ln.Span}

	case token.KwInst:
		lc.bump()
		name, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		if !lc.expect(token.KwOf) {
			return nil
		}
		mod, ok := lc.expectIdent()
		if !ok {
			return nil
		}
		return &fir.Instance{Name: name, Module: mod, Span: ln.Span}

	case token.KwWhen:
		lc.bump()
		cond, ok := lc.parseExpr()
		if !ok {
			return nil
		}
		lc.expect(token.Colon)
		w := &fir.When{Cond: cond, Span: ln.Span}
		w.Then = p.parseBlock(ln.Indent)
		if !p.eof() {
			el := p.peek()
			if el.Indent == ln.Indent && el.Toks[0].Kind == token.KwElse {
				p.next()
				elc := newLineCursor(el, p.reporter)
				elc.bump()
				elc.expect(token.Colon)
				w.Else = p.parseBlock(ln.Indent)
			}
		}
		return w

	case token.KwPrintf:
		lc.bump()
		return lc.parsePrintf(ln.Span)

	case token.Ident:
		// A line starting with an identifier is a connect.
		dest, ok := lc.parseRef()
		if !ok {
			return nil
		}
		if !lc.expect(token.Connect) {
			return nil
		}
		src, ok := lc.parseExpr()
		if !ok {
			return nil
		}
		return &fir.Connect{Dest: dest, Src: src, Span: ln.Span}

	default:
		diag.ReportError(p.reporter, diag.SynUnexpectedToken, ln.Span,
			fmt.Sprintf("unexpected %s at start of statement", lc.peek().Kind))
		return nil
	}
}

// lineCursor walks the tokens of one line.
type lineCursor struct {
	toks     []token.Token
	pos      int
	span     source.Span
	reporter diag.Reporter
}

func newLineCursor(ln *lexer.Line, reporter diag.Reporter) *lineCursor {
	return &lineCursor{toks: ln.Toks, span: ln.Span, reporter: reporter}
}

func (lc *lineCursor) peek() token.Token {
	if lc.pos >= len(lc.toks) {
		return token.Token{Kind: token.EOF, Span: source.Span{File: lc.span.File, Start: lc.span.End, End: lc.span.End}}
	}
	return lc.toks[lc.pos]
}

func (lc *lineCursor) bump() token.Token {
	t := lc.peek()
	if lc.pos < len(lc.toks) {
		lc.pos++
	}
	return t
}

func (lc *lineCursor) at(kind token.Kind) bool {
	return lc.peek().Kind == kind
}

func (lc *lineCursor) expect(kind token.Kind) bool {
	if lc.at(kind) {
		lc.bump()
		return true
	}
	code := diag.SynUnexpectedToken
	switch kind {
	case token.Colon:
		code = diag.SynExpectColon
	case token.KwCircuit, token.KwModule, token.KwOf:
		code = diag.SynExpectKeyword
	}
	diag.ReportError(lc.reporter, code, lc.peek().Span,
		fmt.Sprintf("expected %q, got %q", kind, lc.peek().Kind))
	return false
}

func (lc *lineCursor) expectIdent() (string, bool) {
	if lc.at(token.Ident) {
		return lc.bump().Text, true
	}
	diag.ReportError(lc.reporter, diag.SynExpectIdentifier, lc.peek().Span,
		fmt.Sprintf("expected identifier, got %q", lc.peek().Kind))
	return "", false
}

func (lc *lineCursor) expectInt() (uint64, bool) {
	if !lc.at(token.Int) {
		diag.ReportError(lc.reporter, diag.SynExpectWidth, lc.peek().Span,
			fmt.Sprintf("expected integer, got %q", lc.peek().Kind))
		return 0, false
	}
	t := lc.bump()
	v, err := strconv.ParseUint(t.Text, 10, 64)
	if err != nil {
		diag.ReportError(lc.reporter, diag.SynExpectWidth, t.Span,
			fmt.Sprintf("integer %q out of range", t.Text))
		return 0, false
	}
	return v, true
}

// parseType parses UInt<w>, SInt<w>, Clock or Reset.
func (lc *lineCursor) parseType() (fir.Type, bool) {
	switch lc.peek().Kind {
	case token.KwUInt, token.KwSInt:
		signed := lc.bump().Kind == token.KwSInt
		if !lc.expect(token.Less) {
			return nil, false
		}
		w, ok := lc.expectInt()
		if !ok {
			return nil, false
		}
		if !lc.expect(token.Greater) {
			return nil, false
		}
		width, err := safecast.Conv[uint32](w)
		if err != nil {
			diag.ReportError(lc.reporter, diag.SynExpectWidth, lc.peek().Span,
				fmt.Sprintf("width %d out of range", w))
			return nil, false
		}
		if signed {
			return fir.SIntType{Width: width}, true
		}
		return fir.UIntType{Width: width}, true
	case token.KwClock:
		lc.bump()
		return fir.ClockType{}, true
	case token.KwReset:
		lc.bump()
		return fir.ResetType{}, true
	default:
		diag.ReportError(lc.reporter, diag.SynExpectType, lc.peek().Span,
			fmt.Sprintf("expected a type, got %q", lc.peek().Kind))
		return nil, false
	}
}

// parseExpr parses a reference, a literal or a primop application.
func (lc *lineCursor) parseExpr() (fir.Expr, bool) {
	switch lc.peek().Kind {
	case token.KwUInt, token.KwSInt:
		typ, ok := lc.parseType()
		if !ok {
			return nil, false
		}
		if !lc.expect(token.LParen) {
			return nil, false
		}
		v, ok := lc.expectInt()
		if !ok {
			return nil, false
		}
		if !lc.expect(token.RParen) {
			return nil, false
		}
		return fir.Lit{Value: v, Type: typ}, true

	case token.Int:
		v, _ := lc.expectInt()
		return fir.Lit{Value: v}, true

	case token.Ident:
		name := lc.bump().Text
		if lc.at(token.LParen) {
			lc.bump()
			prim := fir.PrimOp{Op: name}
			for !lc.at(token.RParen) && !lc.at(token.EOF) {
				arg, ok := lc.parseExpr()
				if !ok {
					return nil, false
				}
				prim.Args = append(prim.Args, arg)
				if lc.at(token.Comma) {
					lc.bump()
				}
			}
			if !lc.expect(token.RParen) {
				return nil, false
			}
			return prim, true
		}
		ref := fir.Ref{Base: name}
		if lc.at(token.Dot) {
			lc.bump()
			field, ok := lc.expectIdent()
			if !ok {
				return nil, false
			}
			ref.Field = field
		}
		return ref, true

	default:
		diag.ReportError(lc.reporter, diag.SynExpectExpression, lc.peek().Span,
			fmt.Sprintf("expected an expression, got %q", lc.peek().Kind))
		return nil, false
	}
}

// parseRef parses a plain reference (connect destination).
func (lc *lineCursor) parseRef() (fir.Ref, bool) {
	name, ok := lc.expectIdent()
	if !ok {
		return fir.Ref{}, false
	}
	ref := fir.Ref{Base: name}
	if lc.at(token.Dot) {
		lc.bump()
		field, ok := lc.expectIdent()
		if !ok {
			return fir.Ref{}, false
		}
		ref.Field = field
	}
	return ref, true
}

// parsePrintf parses printf(clk, "format", args...).
func (lc *lineCursor) parsePrintf(span source.Span) fir.Op {
	if !lc.expect(token.LParen) {
		return nil
	}
	clk, ok := lc.expectIdent()
	if !ok {
		return nil
	}
	if !lc.expect(token.Comma) {
		return nil
	}
	if !lc.at(token.String) {
		diag.ReportError(lc.reporter, diag.SynUnexpectedToken, lc.peek().Span,
			"printf format must be a string literal")
		return nil
	}
	format := lc.bump().Text
	pf := &fir.Printf{Clk: clk, Format: format, Span: span}
	for lc.at(token.Comma) {
		lc.bump()
		arg, ok := lc.parseExpr()
		if !ok {
			return nil
		}
		pf.Args = append(pf.Args, arg)
	}
	if !lc.expect(token.RParen) {
		return nil
	}
	return pf
}
