package core

import (
	"fmt"
	"io"
)

// PolynomialCoefficient is a polynomial in coefficient form,
// (c0, ..., cd), with an explicit degree d. len(Coefficients) >= d+1 is
// an invariant of every value this package constructs.
type PolynomialCoefficient struct {
	degree       int
	coefficients []*FieldElement
}

// NewPolynomialCoefficient builds a coefficient-form polynomial of the
// given degree from coefficients. len(coefficients) must be >= degree+1.
func NewPolynomialCoefficient(degree int, coefficients []*FieldElement) (*PolynomialCoefficient, error) {
	if degree < 0 {
		return nil, fmt.Errorf("core: polynomial degree must be non-negative, got %d", degree)
	}
	if len(coefficients) < degree+1 {
		return nil, fmt.Errorf("core: need at least %d coefficients for degree %d, got %d", degree+1, degree, len(coefficients))
	}
	return &PolynomialCoefficient{degree: degree, coefficients: coefficients}, nil
}

// RandomPolynomial draws a uniformly random coefficient-form polynomial
// of the given degree, grounded on original_source's
// PolynomialCoefficient::random_poly.
func RandomPolynomial(rng io.Reader, field *Field, degree int) (*PolynomialCoefficient, error) {
	coeffs := make([]*FieldElement, degree+1)
	for i := range coeffs {
		c, err := field.Rand(rng)
		if err != nil {
			return nil, fmt.Errorf("core: random polynomial: %w", err)
		}
		coeffs[i] = c
	}
	return NewPolynomialCoefficient(degree, coeffs)
}

// Degree returns the polynomial's declared degree.
func (p *PolynomialCoefficient) Degree() int { return p.degree }

// Coefficient returns the coefficient of x^i, or nil if i is out of range.
func (p *PolynomialCoefficient) Coefficient(i int) *FieldElement {
	if i < 0 || i >= len(p.coefficients) {
		return nil
	}
	return p.coefficients[i]
}

// Eval evaluates the polynomial at x by Horner's method.
func (p *PolynomialCoefficient) Eval(x *FieldElement) *FieldElement {
	field := x.Field()
	result := field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// PolynomialPoints is an evaluation table for a polynomial of claimed
// degree `degree` over the domain ⟨ω⟩ = {ω^0, ..., ω^(N-1)},
// N = (degree+1)*rate. Per the design notes, the table is held as a
// contiguous ordinal-indexed vector rather than an x->y map plus a
// bidirectional ordinal lookup: every call site in this package already
// knows the ordinal it wants, so the bimap the original source used is
// pure overhead here.
type PolynomialPoints struct {
	degree int
	omega  *FieldElement // primitive N-th root of unity
	values []*FieldElement
}

// Degree returns the input polynomial's degree, not the domain size.
func (pp *PolynomialPoints) Degree() int { return pp.degree }

// Size returns the domain size N = (degree+1)*rate.
func (pp *PolynomialPoints) Size() int { return len(pp.values) }

// Omega returns the primitive N-th root of unity generating the domain.
func (pp *PolynomialPoints) Omega() *FieldElement { return pp.omega }

// At returns P(ω^i), the value at ordinal i.
func (pp *PolynomialPoints) At(i int) *FieldElement { return pp.values[i%len(pp.values)] }

// DomainElement returns ω^i, recomputed on demand via repeated squaring.
func (pp *PolynomialPoints) DomainElement(i int) *FieldElement {
	n := len(pp.values)
	i = ((i % n) + n) % n
	field := pp.omega.Field()
	result := field.One()
	base := pp.omega
	e := i
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// FFT evaluates a coefficient-form polynomial over the smooth domain
// ⟨ω⟩, ω = root_of_unity(N), N = (degree+1)*rate, via an iterative
// radix-2 Cooley-Tukey transform: coefficients are zero-padded to
// length N, bit-reversed in place, then combined bottom-up with
// twiddle factors — the classic in-place FFT, generalized here from a
// recursive even/odd-split-and-recombine version into an explicit
// iterative form.
func (p *PolynomialCoefficient) FFT(rate uint64) (*PolynomialPoints, error) {
	if rate == 0 || (rate&(rate-1)) != 0 {
		return nil, fmt.Errorf("core: FFT rate must be a power of two >= 1, got %d", rate)
	}
	n := uint64(p.degree+1) * rate
	field := fieldOf(p.coefficients)
	if field == nil {
		return nil, fmt.Errorf("core: cannot FFT a polynomial with no coefficients")
	}

	omega, err := field.RootOfUnity(n)
	if err != nil {
		return nil, fmt.Errorf("core: FFT: %w", err)
	}

	values := make([]*FieldElement, n)
	for i := range values {
		if uint64(i) < uint64(len(p.coefficients)) {
			values[i] = p.coefficients[i]
		} else {
			values[i] = field.Zero()
		}
	}

	bitReverse(values)
	if err := radix2(values, omega); err != nil {
		return nil, fmt.Errorf("core: FFT: %w", err)
	}

	return &PolynomialPoints{degree: p.degree, omega: omega, values: values}, nil
}

func fieldOf(elems []*FieldElement) *Field {
	for _, e := range elems {
		if e != nil {
			return e.Field()
		}
	}
	return nil
}

// bitReverse permutes values into bit-reversed order in place; len(values)
// must be a power of two.
func bitReverse(values []*FieldElement) {
	n := len(values)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

// radix2 runs the butterfly passes of an in-place iterative Cooley-Tukey
// NTT over values (already bit-reversed), using omega as the primitive
// len(values)-th root of unity (or its inverse, for an inverse transform —
// the caller picks which by the root it passes in).
func radix2(values []*FieldElement, omega *FieldElement) error {
	n := len(values)
	field := omega.Field()
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		// w is a primitive size-th root of unity: omega^(n/size), since
		// omega has order n.
		w := powInt(omega, n/size)
		for start := 0; start < n; start += size {
			wi := field.One()
			for k := 0; k < half; k++ {
				a := values[start+k]
				b := values[start+k+half].Mul(wi)
				values[start+k] = a.Add(b)
				values[start+k+half] = a.Sub(b)
				wi = wi.Mul(w)
			}
		}
	}
	return nil
}

// powInt returns base^e via square-and-multiply, e >= 0.
func powInt(base *FieldElement, e int) *FieldElement {
	field := base.Field()
	result := field.One()
	b := base
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		e >>= 1
	}
	return result
}

// Fold is the essential FRI primitive: given the evaluation table
// q over a domain of size N with primitive root ω, and a challenge α,
// it returns the evaluation table q' of declared degree floor(d/2) over
// the halved domain {ω^(2i)}, ω' = ω^2, where
//
//	q'(x^2) = (q(x)*(x+α) + q(-x)*(x-α)) / (2x)
//
// Fails with ConfigError-shaped error if α coincides with any domain
// element, since that root would cancel out of later fold-consistency
// checks.
func (pp *PolynomialPoints) Fold(alpha *FieldElement) (*PolynomialPoints, error) {
	n := pp.Size()
	if n%2 != 0 {
		return nil, fmt.Errorf("core: cannot fold a domain of odd size %d", n)
	}
	half := n / 2
	field := pp.omega.Field()
	two := field.FromU64(2)

	nextOmega := pp.omega.Mul(pp.omega)
	nextValues := make([]*FieldElement, half)

	for i := 0; i < half; i++ {
		x := pp.DomainElement(i)
		negX := pp.DomainElement(i + half)
		if alpha.Equals(x) || alpha.Equals(negX) {
			return nil, fmt.Errorf("core: fold challenge coincides with a domain element at ordinal %d", i)
		}

		qx := pp.At(i)
		qNegX := pp.At(i + half)

		numerator := qx.Mul(x.Add(alpha)).Add(qNegX.Mul(x.Sub(alpha)))
		denominator := x.Mul(two)
		value, err := numerator.Div(denominator)
		if err != nil {
			return nil, fmt.Errorf("core: fold: %w", err)
		}
		nextValues[i] = value
	}

	return &PolynomialPoints{degree: pp.degree / 2, omega: nextOmega, values: nextValues}, nil
}

// IFFT recovers a coefficient-form polynomial from its evaluation table,
// via the inverse of FFT (conjugate transform scaled by N^-1). Nothing
// in the prover or verifier path calls it, but a conforming polynomial
// layer provides it, and the round-trip property in the test suite
// exercises it directly.
func (pp *PolynomialPoints) IFFT() (*PolynomialCoefficient, error) {
	n := pp.Size()
	field := pp.omega.Field()

	invOmega, err := pp.omega.Inverse()
	if err != nil {
		return nil, fmt.Errorf("core: IFFT: %w", err)
	}
	invN, err := field.FromU64(uint64(n)).Inverse()
	if err != nil {
		return nil, fmt.Errorf("core: IFFT: %w", err)
	}

	values := make([]*FieldElement, n)
	copy(values, pp.values)

	bitReverse(values)
	if err := radix2(values, invOmega); err != nil {
		return nil, fmt.Errorf("core: IFFT: %w", err)
	}
	for i := range values {
		values[i] = values[i].Mul(invN)
	}

	degree := len(values) - 1
	for degree > 0 && values[degree].IsZero() {
		degree--
	}
	return NewPolynomialCoefficient(degree, values)
}
