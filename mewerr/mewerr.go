// Package mewerr defines the error type shared by the lexer, parser and
// evaluator. Every engine failure is one of five kinds carrying an optional
// source location.
package mewerr

import "fmt"

type Kind int

const (
	SyntaxError Kind = iota
	RuntimeError
	TypeError
	NameError
	IOError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "Syntax Error"
	case RuntimeError:
		return "Runtime Error"
	case TypeError:
		return "Type Error"
	case NameError:
		return "Name Error"
	default:
		return "IO Error"
	}
}

// Location is a 1-based source position. The zero value means the position
// is unknown.
type Location struct {
	Line   int
	Column int
}

func (l Location) Known() bool { return l.Line > 0 }

type Error struct {
	Kind Kind
	Msg  string
	Loc  Location
}

func (e *Error) Error() string {
	if e.Loc.Known() {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Loc.Line, e.Loc.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func Syntax(format string, args ...interface{}) *Error {
	return &Error{Kind: SyntaxError, Msg: fmt.Sprintf(format, args...)}
}

func SyntaxAt(line, column int, format string, args ...interface{}) *Error {
	return &Error{Kind: SyntaxError, Msg: fmt.Sprintf(format, args...), Loc: Location{line, column}}
}

func Runtime(format string, args ...interface{}) *Error {
	return &Error{Kind: RuntimeError, Msg: fmt.Sprintf(format, args...)}
}

func Type(format string, args ...interface{}) *Error {
	return &Error{Kind: TypeError, Msg: fmt.Sprintf(format, args...)}
}

func Name(format string, args ...interface{}) *Error {
	return &Error{Kind: NameError, Msg: fmt.Sprintf(format, args...)}
}

func IO(format string, args ...interface{}) *Error {
	return &Error{Kind: IOError, Msg: fmt.Sprintf(format, args...)}
}
