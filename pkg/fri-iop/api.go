package friiop

import (
	"io"

	"github.com/vybium/fri-iop/internal/fri-iop/core"
	"github.com/vybium/fri-iop/internal/fri-iop/fri"
)

// Prover generates FRI proofs against a fixed configuration.
type Prover struct {
	inner *fri.Prover
}

// NewProver builds a Prover, rejecting a malformed configuration.
func NewProver(cfg *Config) (*Prover, error) {
	inner, err := fri.NewProver(cfg)
	if err != nil {
		return nil, err
	}
	return &Prover{inner: inner}, nil
}

// Prove generates a FRI proof for poly, whose degree must be less than
// 2^Config.D. Returns the proof bytes and the initial commitment C_0
// the verifier must be given out of band.
func (p *Prover) Prove(poly *PolynomialCoefficient) ([]byte, Hash, error) {
	return p.inner.Prove(poly)
}

// Verifier checks FRI proofs against a fixed configuration.
type Verifier struct {
	inner *fri.Verifier
}

// NewVerifier builds a Verifier, rejecting a malformed configuration.
func NewVerifier(cfg *Config) (*Verifier, error) {
	inner, err := fri.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Verifier{inner: inner}, nil
}

// Verify checks proof against the initial commitment c0, returning nil
// on acceptance and an *Error on rejection.
func (v *Verifier) Verify(proof []byte, c0 Hash) error {
	return v.inner.Verify(proof, c0)
}

// Prove is a convenience wrapper building a one-shot Prover for cfg.
func Prove(cfg *Config, poly *PolynomialCoefficient) ([]byte, Hash, error) {
	prover, err := NewProver(cfg)
	if err != nil {
		return nil, Hash{}, err
	}
	return prover.Prove(poly)
}

// Verify is a convenience wrapper building a one-shot Verifier for cfg.
func Verify(cfg *Config, proof []byte, c0 Hash) error {
	verifier, err := NewVerifier(cfg)
	if err != nil {
		return err
	}
	return verifier.Verify(proof, c0)
}

// RandomPolynomial draws a uniformly random coefficient-form polynomial
// of the given degree from rng, over the package's fixed field.
func RandomPolynomial(rng io.Reader, degree int) (*PolynomialCoefficient, error) {
	return core.RandomPolynomial(rng, core.Prime, degree)
}
