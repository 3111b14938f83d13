// Package core implements the prime-field layer and the polynomial
// coefficient/evaluation forms the FRI protocol is built on.
package core

import (
	"fmt"
	"io"

	"github.com/holiman/uint256"
)

// BabyBearModulus is the STARK-friendly prime 15*2^27+1 = 2013265921,
// with 2-adicity 27. Prime is built from it at package init.
const BabyBearModulus uint64 = 2013265921

// Prime is the single process-wide field this package exposes: FRI
// needs one smooth field, not a family of them.
var Prime *Field

func init() {
	f, err := NewField(uint256.NewInt(BabyBearModulus))
	if err != nil {
		panic(fmt.Sprintf("core: failed to initialize Prime field: %v", err))
	}
	Prime = f
}

// Field is a fixed prime field used throughout the protocol.
type Field struct {
	modulus *uint256.Int

	// twoAdicOrder is s where modulus-1 = oddPart * 2^s.
	twoAdicOrder int
	// twoAdicGenerator has multiplicative order exactly 2^twoAdicOrder;
	// root_of_unity(2^k) = twoAdicGenerator^(2^(twoAdicOrder-k)).
	twoAdicGenerator *uint256.Int

	byteWidth int
}

// FieldElement is a residue mod Field.modulus.
type FieldElement struct {
	field *Field
	value uint256.Int
}

// NewField builds a prime field from its modulus. modulus must be prime
// for the field operations (inverse, root_of_unity) to be meaningful;
// that primality is a precondition this constructor does not check, the
// same way the teacher's core.NewField trusts its caller.
func NewField(modulus *uint256.Int) (*Field, error) {
	if modulus.IsZero() || modulus.Eq(uint256.NewInt(1)) {
		return nil, fmt.Errorf("core: modulus must be greater than 1")
	}

	one := uint256.NewInt(1)
	oddPart := new(uint256.Int).Sub(modulus, one)
	order := 0
	two := uint256.NewInt(2)
	for isEven(oddPart, two) {
		oddPart.Rsh(oddPart, 1)
		order++
	}

	nonResidue, err := findNonResidue(modulus)
	if err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}

	generator := modPow(nonResidue, oddPart, modulus)
	if generator.Eq(one) {
		return nil, fmt.Errorf("core: modulus has unexpectedly small 2-adic subgroup")
	}

	width := (bitLen(modulus) + 7) / 8

	return &Field{
		modulus:          modulus,
		twoAdicOrder:     order,
		twoAdicGenerator: generator,
		byteWidth:        width,
	}, nil
}

// isEven reports whether x is divisible by two, given two = uint256.NewInt(2).
func isEven(x, two *uint256.Int) bool {
	var r uint256.Int
	r.Mod(x, two)
	return r.IsZero()
}

// bitLen returns the number of bits needed to represent x.
func bitLen(x *uint256.Int) int {
	n := 0
	t := new(uint256.Int).Set(x)
	for !t.IsZero() {
		t.Rsh(t, 1)
		n++
	}
	return n
}

// findNonResidue returns the smallest small integer that is a quadratic
// non-residue mod p, used to seed the 2-adic subgroup generator.
func findNonResidue(p *uint256.Int) (*uint256.Int, error) {
	exp := new(uint256.Int).Sub(p, uint256.NewInt(1))
	exp.Rsh(exp, 1)
	one := uint256.NewInt(1)
	for candidate := uint64(2); candidate < 1_000_000; candidate++ {
		c := uint256.NewInt(candidate)
		if c.Cmp(p) >= 0 {
			break
		}
		legendre := modPow(c, exp, p)
		if !legendre.Eq(one) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no quadratic non-residue found below 1e6")
}

// modPow computes base^exp mod m using square-and-multiply over uint256.
func modPow(base, exp, m *uint256.Int) *uint256.Int {
	result := uint256.NewInt(1)
	b := new(uint256.Int).Mod(base, m)
	e := new(uint256.Int).Set(exp)
	zero := new(uint256.Int)
	two := uint256.NewInt(2)
	for e.Cmp(zero) > 0 {
		var bit uint256.Int
		bit.Mod(e, two)
		if !bit.IsZero() {
			result = new(uint256.Int).MulMod(result, b, m)
		}
		b = new(uint256.Int).MulMod(b, b, m)
		e.Rsh(e, 1)
	}
	return result
}

// ByteWidth is ceil(log2(p)/8), the canonical fixed encoding width |F|.
func (f *Field) ByteWidth() int { return f.byteWidth }

// Modulus returns a copy of the field's prime modulus.
func (f *Field) Modulus() *uint256.Int { return new(uint256.Int).Set(f.modulus) }

// Equals reports whether two Field values describe the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Eq(other.modulus)
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement {
	return &FieldElement{field: f}
}

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement {
	e := &FieldElement{field: f}
	e.value.SetOne()
	return e
}

// FromU64 builds a field element from a uint64, reducing mod p.
func (f *Field) FromU64(v uint64) *FieldElement {
	e := &FieldElement{field: f}
	e.value.SetUint64(v)
	e.value.Mod(&e.value, f.modulus)
	return e
}

// Rand draws a uniformly random field element from rng.
func (f *Field) Rand(rng io.Reader) (*FieldElement, error) {
	buf := make([]byte, f.byteWidth+8) // extra bytes to thin out modulo bias
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("core: reading randomness: %w", err)
	}
	return f.FromBEBytesModOrder(buf), nil
}

// RootOfUnity returns a primitive n-th root of unity, where n must be a
// power of two dividing the field's 2-adic order. Fails otherwise.
func (f *Field) RootOfUnity(n uint64) (*FieldElement, error) {
	if n == 0 || (n&(n-1)) != 0 {
		return nil, fmt.Errorf("core: root_of_unity(%d): n must be a power of two", n)
	}
	k := 0
	for t := n; t > 1; t >>= 1 {
		k++
	}
	if k > f.twoAdicOrder {
		return nil, fmt.Errorf("core: root_of_unity(%d): exceeds 2-adic order 2^%d", n, f.twoAdicOrder)
	}
	shift := uint(f.twoAdicOrder - k)
	exp := new(uint256.Int).Lsh(uint256.NewInt(1), shift)
	e := &FieldElement{field: f}
	e.value.Set(modPow(f.twoAdicGenerator, exp, f.modulus))
	return e, nil
}

// Field returns the field this element belongs to.
func (e *FieldElement) Field() *Field { return e.field }

func (e *FieldElement) checkCompatible(other *FieldElement) {
	if !e.field.Equals(other.field) {
		panic("core: operands from different fields")
	}
}

// Add returns e + other.
func (e *FieldElement) Add(other *FieldElement) *FieldElement {
	e.checkCompatible(other)
	r := &FieldElement{field: e.field}
	r.value.AddMod(&e.value, &other.value, e.field.modulus)
	return r
}

// Sub returns e - other.
func (e *FieldElement) Sub(other *FieldElement) *FieldElement {
	e.checkCompatible(other)
	r := &FieldElement{field: e.field}
	// uint256 has no native SubMod; normalize by hand to stay non-negative.
	if e.value.Cmp(&other.value) >= 0 {
		r.value.Sub(&e.value, &other.value)
	} else {
		diff := new(uint256.Int).Sub(&other.value, &e.value)
		r.value.Sub(e.field.modulus, diff)
	}
	return r
}

// Mul returns e * other.
func (e *FieldElement) Mul(other *FieldElement) *FieldElement {
	e.checkCompatible(other)
	r := &FieldElement{field: e.field}
	r.value.MulMod(&e.value, &other.value, e.field.modulus)
	return r
}

// Double returns e + e.
func (e *FieldElement) Double() *FieldElement {
	return e.Add(e)
}

// Neg returns the additive inverse of e.
func (e *FieldElement) Neg() *FieldElement {
	r := &FieldElement{field: e.field}
	if e.value.IsZero() {
		return r
	}
	r.value.Sub(e.field.modulus, &e.value)
	return r
}

// Inverse returns the multiplicative inverse of e, computed as
// e^(p-2) mod p via Fermat's little theorem. Fails on zero.
func (e *FieldElement) Inverse() (*FieldElement, error) {
	if e.value.IsZero() {
		return nil, fmt.Errorf("core: inverse of zero is undefined")
	}
	exp := new(uint256.Int).Sub(e.field.modulus, uint256.NewInt(2))
	r := &FieldElement{field: e.field}
	r.value.Set(modPow(&e.value, exp, e.field.modulus))
	return r, nil
}

// Div returns e / other, failing if other is zero.
func (e *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	e.checkCompatible(other)
	inv, err := other.Inverse()
	if err != nil {
		return nil, fmt.Errorf("core: division: %w", err)
	}
	return e.Mul(inv), nil
}

// Equals reports value equality within the same field.
func (e *FieldElement) Equals(other *FieldElement) bool {
	if !e.field.Equals(other.field) {
		return false
	}
	return e.value.Eq(&other.value)
}

// IsZero reports whether e is the additive identity.
func (e *FieldElement) IsZero() bool { return e.value.IsZero() }

// ToBEBytes encodes e as big-endian bytes, left-padded to width. width
// must be at least Field.ByteWidth().
func (e *FieldElement) ToBEBytes(width int) []byte {
	full := e.value.Bytes32()
	if width > 32 {
		out := make([]byte, width)
		copy(out[width-32:], full[:])
		return out
	}
	return append([]byte(nil), full[32-width:]...)
}

// FromBEBytesModOrder reduces an arbitrary-length big-endian byte string
// mod the field's prime. An encoding at or above the modulus is
// silently wrapped rather than rejected, matching the original Rust
// source's from_be_bytes_mod_order; callers that must reject an
// out-of-range canonical encoding as SerializationError need to check
// the input against ByteWidth/Modulus themselves before calling this.
func (f *Field) FromBEBytesModOrder(b []byte) *FieldElement {
	e := &FieldElement{field: f}
	// uint256.Int.SetBytes accepts at most 32 bytes, so a longer buffer
	// is reduced byte by byte, Horner-style: v = v*256 + b[i] (mod p).
	if len(b) > 32 {
		radix := uint256.NewInt(256)
		for _, c := range b {
			e.value.MulMod(&e.value, radix, f.modulus)
			e.value.AddMod(&e.value, uint256.NewInt(uint64(c)), f.modulus)
		}
		return e
	}
	v := new(uint256.Int).SetBytes(b)
	v.Mod(v, f.modulus)
	e.value.Set(v)
	return e
}

// String renders the element's decimal value, for debugging.
func (e *FieldElement) String() string {
	return e.value.Dec()
}
