package script

import "fmt"

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// NoMatchingRoles: a modifier or weight changer target matched no role.
	NoMatchingRoles ErrorKind = iota + 1
	// UnknownDirective: unknown modifier name or malformed weight symbol.
	UnknownDirective
	// InvalidArgument: missing expression, bad number or division by zero.
	InvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case NoMatchingRoles:
		return "no matching roles"
	case UnknownDirective:
		return "unknown directive"
	case InvalidArgument:
		return "invalid argument"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports why a script line was rejected.
type ParseError struct {
	Kind ErrorKind
	// Line is 1-based; zero when the error is not tied to a line.
	Line int
	// Expr is the offending expression or directive text.
	Expr    string
	Message string
}

// Sentinels for errors.Is.
var (
	ErrNoMatchingRoles  = &ParseError{Kind: NoMatchingRoles}
	ErrUnknownDirective = &ParseError{Kind: UnknownDirective}
	ErrInvalidArgument  = &ParseError{Kind: InvalidArgument}
)

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Is matches any ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, line int, expr, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    line,
		Expr:    expr,
		Message: fmt.Sprintf(format, args...),
	}
}
