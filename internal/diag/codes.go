package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are reserved per phase:
// 1xxx lexer, 2xxx parser, 3xxx verification passes.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexBadNumber          Code = 1002
	LexUnterminatedString Code = 1003
	LexTabIndent          Code = 1004

	// Syntactic
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectColon      Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynExpectKeyword    Code = 2006
	SynBadIndent        Code = 2007
	SynExpectWidth      Code = 2008
	SynDuplicateModule  Code = 2009

	// Verification
	VerifyUnresolvedRef Code = 3001
	VerifySelfConnect   Code = 3002
)

func (c Code) String() string {
	return fmt.Sprintf("F%04d", uint16(c))
}
