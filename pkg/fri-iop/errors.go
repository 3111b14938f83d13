package friiop

import "github.com/vybium/fri-iop/internal/fri-iop/fri"

// Kind classifies a failure mode returned from this package's
// operations.
type Kind = fri.Kind

// The three error kinds the FRI protocol can produce.
const (
	SerializationError = fri.SerializationError
	InvalidProof       = fri.InvalidProof
	ConfigError        = fri.ConfigError
)

// Error is the single error type this package returns, carrying a Kind
// and an optional wrapped cause.
type Error = fri.Error

// NewSentinel builds a bare *Error of the given kind suitable for use
// as an errors.Is comparison target, e.g.
// errors.Is(err, friiop.NewSentinel(friiop.InvalidProof)).
func NewSentinel(kind Kind) *Error { return fri.NewSentinel(kind) }
