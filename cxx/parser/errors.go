package parser

import "fmt"

// ParseError is the single structured failure produced by this package.
// Loc points at the token that triggered the failure, or at the opening
// of an unterminated scope.
type ParseError struct {
	Msg string
	Loc Position
}

func (e *ParseError) Error() string {
	if e.Loc.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Loc.Line, e.Loc.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg)
}

func errorAt(loc Position, format string, args ...any) *ParseError {
	return &ParseError{
		Msg: fmt.Sprintf(format, args...),
		Loc: loc,
	}
}
