package friiop

import (
	"github.com/vybium/fri-iop/internal/fri-iop/commitment"
	"github.com/vybium/fri-iop/internal/fri-iop/core"
)

// Hash is the vector commitment's canonical 32-byte root encoding.
type Hash = commitment.Hash

// HashFromBytes reads a Hash out of a 32-byte big-endian slice.
func HashFromBytes(b []byte) (Hash, error) { return commitment.HashFromBytes(b) }

// FieldElement is an element of the fixed prime field the protocol
// runs over.
type FieldElement = core.FieldElement

// PolynomialCoefficient is a polynomial in coefficient form.
type PolynomialCoefficient = core.PolynomialCoefficient

// Field is the package-wide prime field every polynomial and commitment
// leaf is defined over.
var Field = core.Prime

// NewPolynomialCoefficient builds a coefficient-form polynomial of the
// given degree.
func NewPolynomialCoefficient(degree int, coefficients []*FieldElement) (*PolynomialCoefficient, error) {
	return core.NewPolynomialCoefficient(degree, coefficients)
}

// Tree is an authenticated Merkle vector commitment over a leaf set.
type Tree = commitment.Tree

// CommitLeaves builds a Tree over leaves using the package's default
// hash (the same sha3-based hash the prover and verifier commit with).
func CommitLeaves(leaves [][]byte) (*Tree, error) {
	return commitment.Commit(commitment.HashSHA3, leaves)
}
