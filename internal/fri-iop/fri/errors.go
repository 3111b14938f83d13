package fri

import "fmt"

// Kind classifies a failure mode returned from this package's public
// operations. Every error this package returns is an *Error carrying
// one of these three kinds, mirroring the teacher's VMError/ErrorCode
// pairing in pkg/vybium-starks-vm/errors.go.
type Kind int

const (
	// SerializationError marks a proof buffer that is too short, an
	// encoded field element out of range, or a transcript schedule
	// disagreement.
	SerializationError Kind = iota

	// InvalidProof marks a failed Merkle verification, a failed fold
	// equation, or a failed terminal constant-polynomial check.
	InvalidProof

	// ConfigError marks a requested root of unity that does not exist,
	// a fold challenge that coincides with a domain element, or an
	// invalid protocol configuration.
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case SerializationError:
		return "SerializationError"
	case InvalidProof:
		return "InvalidProof"
	case ConfigError:
		return "ConfigError"
	default:
		return "UnknownError"
	}
}

// Error is the single error type this package returns.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fri-iop %s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("fri-iop %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewSentinel builds a bare *Error of the given kind suitable for use
// as an errors.Is comparison target.
func NewSentinel(kind Kind) *Error { return &Error{Kind: kind} }
