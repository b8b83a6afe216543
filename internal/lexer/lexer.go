// Package lexer tokenizes the FIRRTL-like text format.
//
// The format is line-oriented: indentation opens and closes blocks, so
// the lexer groups tokens by line and records each line's indentation
// instead of emitting a flat token stream.
package lexer

import (
	"fmt"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/source"
	"github.com/Dobios/circt/internal/token"
)

// Line is one significant source line: its indentation in spaces and
// the tokens on it. Blank and comment-only lines are skipped.
type Line struct {
	Indent int
	Toks   []token.Token
	Span   source.Span
}

// Lexer scans one file into lines of tokens.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// Lex scans the whole file. Lexical problems are reported through the
// reporter; scanning continues on the next line after an error.
func (lx *Lexer) Lex() []Line {
	var lines []Line
	for !lx.cursor.EOF() {
		line, ok := lx.scanLine()
		if ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// scanLine consumes one physical line. The bool result is false for
// blank or comment-only lines.
func (lx *Lexer) scanLine() (Line, bool) {
	indent := lx.scanIndent()

	var toks []token.Token
	for {
		ch := lx.cursor.Peek()
		switch {
		case ch == 0:
			goto done
		case ch == '\n':
			lx.cursor.Bump()
			goto done
		case ch == ';':
			lx.skipToEOL()
			goto done
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.cursor.Bump()
		case isIdentStart(ch):
			toks = append(toks, lx.scanIdentOrKeyword())
		case isDigit(ch):
			toks = append(toks, lx.scanNumber())
		case ch == '"':
			toks = append(toks, lx.scanString())
		default:
			if tok, ok := lx.scanPunct(); ok {
				toks = append(toks, tok)
			}
		}
	}

done:
	if len(toks) == 0 {
		return Line{}, false
	}
	span := toks[0].Span
	for _, t := range toks[1:] {
		span = span.Cover(t.Span)
	}
	return Line{Indent: indent, Toks: toks, Span: span}, true
}

// scanIndent counts leading spaces. Tabs are reported once per line and
// counted as a single column to keep offsets sane.
func (lx *Lexer) scanIndent() int {
	indent := 0
	reportedTab := false
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lx.cursor.Bump()
			indent++
		case '\t':
			at := lx.cursor.Offset()
			lx.cursor.Bump()
			if !reportedTab {
				diag.ReportError(lx.reporter, diag.LexTabIndent,
					lx.cursor.SpanFrom(at), "tab characters are not allowed in indentation")
				reportedTab = true
			}
			indent++
		default:
			return indent
		}
	}
}

func (lx *Lexer) skipToEOL() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Offset()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(start)
	kind := token.Lookup(text)
	tok := token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
	if kind == token.Ident {
		tok.Text = text
	}
	return tok
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Offset()
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// An identifier tail glued to digits is a malformed number, not two
	// tokens.
	if isIdentStart(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexBadNumber, sp,
			fmt.Sprintf("malformed number %q", lx.cursor.Slice(start)))
		return token.Token{Kind: token.Int, Span: sp, Text: "0"}
	}
	return token.Token{
		Kind: token.Int,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.Slice(start),
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Offset()
	lx.cursor.Bump() // opening quote
	var out []byte
	for {
		ch := lx.cursor.Peek()
		if ch == 0 || ch == '\n' {
			sp := lx.cursor.SpanFrom(start)
			diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp, "unterminated string")
			return token.Token{Kind: token.String, Span: sp, Text: string(out)}
		}
		lx.cursor.Bump()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			switch esc := lx.cursor.Bump(); esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"', '\\':
				out = append(out, esc)
			default:
				out = append(out, '\\', esc)
			}
			continue
		}
		out = append(out, ch)
	}
	return token.Token{
		Kind: token.String,
		Span: lx.cursor.SpanFrom(start),
		Text: string(out),
	}
}

// scanPunct scans a punctuation token. Unknown characters are reported
// and skipped; the bool result is false for them.
func (lx *Lexer) scanPunct() (token.Token, bool) {
	start := lx.cursor.Offset()
	if lx.cursor.Peek() == '<' && lx.cursor.PeekAt(1) == '=' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return token.Token{Kind: token.Connect, Span: lx.cursor.SpanFrom(start)}, true
	}
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '<':
		kind = token.Less
	case '>':
		kind = token.Greater
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '=':
		kind = token.Equal
	case '.':
		kind = token.Dot
	default:
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp,
			fmt.Sprintf("unknown character %q", ch))
		return token.Token{}, false
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}, true
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
