// Package diag provides the diagnostic types shared across the assembler:
// positions, errors, warnings, and a per-run accumulator. It is grounded on
// the teacher's parser.ErrorList design, generalized so that each assembler
// Context owns its own list rather than a process-global one.
package diag

import "fmt"

// Position identifies a source location for diagnostics and listings.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Kind categorizes a diagnostic for tests and for filtering.
type Kind int

const (
	KindLexical Kind = iota
	KindParse
	KindSymbol
	KindExpression
	KindDirective
	KindConditional
	KindMacro
	KindLoop
	KindInclude
	KindRange
	KindCPU
	KindUser
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindParse:
		return "parse"
	case KindSymbol:
		return "symbol"
	case KindExpression:
		return "expression"
	case KindDirective:
		return "directive"
	case KindConditional:
		return "conditional"
	case KindMacro:
		return "macro"
	case KindLoop:
		return "loop"
	case KindInclude:
		return "include"
	case KindRange:
		return "range"
	case KindCPU:
		return "cpu"
	case KindUser:
		return "user"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a single diagnostic tied to a source position.
type Error struct {
	Pos     Position
	Message string
	Context string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s\n  %s", e.Pos, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Warning is a non-fatal diagnostic.
type Warning struct {
	Pos     Position
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// MaxErrors is the default ceiling after which assembly aborts with a
// "too many errors" diagnostic, matching spec section 7's propagation policy.
const MaxErrors = 200

// List accumulates errors and warnings for a single assembly run. It is
// never shared between concurrent Contexts; each engine.Context owns one.
type List struct {
	Errors   []*Error
	Warnings []Warning
	MaxCount int
	aborted  bool
}

// NewList returns a List with the default error ceiling.
func NewList() *List {
	return &List{MaxCount: MaxErrors}
}

// AddError records an error at pos. Once MaxCount is reached, further calls
// are no-ops except for the final synthetic "too many errors" entry.
func (l *List) AddError(pos Position, kind Kind, format string, args ...any) {
	if l.aborted {
		return
	}
	if len(l.Errors) >= l.MaxCount {
		l.aborted = true
		l.Errors = append(l.Errors, &Error{Pos: pos, Kind: kind, Message: "too many errors, aborting"})
		return
	}
	l.Errors = append(l.Errors, &Error{Pos: pos, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// AddWarning records a warning; warnings never count against MaxCount.
func (l *List) AddWarning(pos Position, format string, args ...any) {
	l.Warnings = append(l.Warnings, Warning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error was recorded.
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Error implements the error interface by rendering every accumulated error.
func (l *List) Error() string {
	if len(l.Errors) == 0 {
		return ""
	}
	s := ""
	for i, e := range l.Errors {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}
