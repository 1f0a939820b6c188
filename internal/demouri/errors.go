package demouri

import "fmt"

// ErrorKind is the category of a malformed demo address
type ErrorKind int

const (
	// ErrKindEmpty indicates the address is an empty string
	ErrKindEmpty ErrorKind = iota
	// ErrKindMissingAt indicates there is no '@' between credentials and server
	ErrKindMissingAt
	// ErrKindMissingColon indicates a half has no ':' separator
	ErrKindMissingColon
	// ErrKindExtraSeparator indicates more than one '@', or more than one ':' in a half
	ErrKindExtraSeparator
	// ErrKindEmptyPart indicates user, host or port is empty
	ErrKindEmptyPart
	// ErrKindBadPort indicates the port is not a number in 1..65535
	ErrKindBadPort
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindEmpty:
		return "empty address"
	case ErrKindMissingAt:
		return "missing '@'"
	case ErrKindMissingColon:
		return "missing ':'"
	case ErrKindExtraSeparator:
		return "extra separator"
	case ErrKindEmptyPart:
		return "empty part"
	case ErrKindBadPort:
		return "bad port"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error describes why a demo address could not be decomposed
type Error struct {
	Kind ErrorKind // What was wrong
	Part string    // Which part ("credentials", "server", "user", "host", "port")
	Err  error     // Underlying error (port parsing)
}

// Error implements the error interface. The address itself is never included
// because it carries a password.
func (e *Error) Error() string {
	msg := "invalid demo address: " + e.Kind.String()
	if e.Part != "" {
		msg += " in " + e.Part
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a demo address error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
