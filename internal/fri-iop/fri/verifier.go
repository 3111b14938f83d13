package fri

import (
	"encoding/binary"

	"github.com/vybium/fri-iop/internal/fri-iop/commitment"
	"github.com/vybium/fri-iop/internal/fri-iop/core"
	"github.com/vybium/fri-iop/internal/fri-iop/transcript"
)

// Verifier re-derives every challenge from a proof buffer and checks
// every Merkle path and fold equation against it.
type Verifier struct {
	cfg *Config
}

// NewVerifier builds a Verifier, rejecting a malformed configuration.
func NewVerifier(cfg *Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg}, nil
}

// Verify checks proof against the initial commitment c0, returning nil
// on acceptance and a *Error (InvalidProof, SerializationError, or
// ConfigError) on rejection.
func (v *Verifier) Verify(proof []byte, c0 commitment.Hash) error {
	cfg := v.cfg
	field := core.Prime
	width := field.ByteWidth()

	schedule := BuildSchedule(cfg, width)

	// A configuration mismatch between prover and verifier must be
	// distinguishable at transcript creation, not deep inside a Merkle
	// or fold check (§8 scenario 6, §9): the schedule's total absorbed
	// byte count is fixed entirely by D, rate and queries, so compare it
	// against the actual proof length before reading a single byte.
	if want := schedule.TotalAbsorbBytes(); len(proof) != want {
		return newError(SerializationError, nil, "proof length %d does not match the %d bytes this configuration's schedule expects", len(proof), want)
	}

	vt := transcript.ToVerifier(schedule, proof)

	c0Bytes, err := vt.NextBytes(32, "public commitment C_0")
	if err != nil {
		return newError(SerializationError, err, "reading C_0")
	}
	gotC0, err := commitment.HashFromBytes(c0Bytes)
	if err != nil {
		return newError(SerializationError, err, "decoding C_0")
	}
	if gotC0 != c0 {
		return newError(SerializationError, nil, "proof's leading commitment does not match caller-supplied C_0")
	}
	if err := vt.Ratchet(); err != nil {
		return newError(SerializationError, err, "initial ratchet")
	}

	n0 := uint64(1<<uint(cfg.D)) * cfg.Rate
	omega, err := field.RootOfUnity(n0)
	if err != nil {
		return newError(ConfigError, err, "deriving initial domain root of unity")
	}

	currentCommitment := c0
	ni := int(n0)
	two := field.FromU64(2)

	var lastFoldValue *core.FieldElement

	for i := 0; i < cfg.D; i++ {
		alphaBytes, err := vt.ChallengeBytes(width, "folding randomness")
		if err != nil {
			return newError(SerializationError, err, "round %d: squeezing folding randomness", i)
		}
		alpha := field.FromBEBytesModOrder(alphaBytes)

		cNextBytes, err := vt.NextBytes(32, "fold commitment")
		if err != nil {
			return newError(SerializationError, err, "round %d: reading fold commitment", i)
		}
		cNext, err := commitment.HashFromBytes(cNextBytes)
		if err != nil {
			return newError(SerializationError, err, "round %d: decoding fold commitment", i)
		}

		pathLen := log2(uint64(ni))

		for q := 0; q < int(cfg.Queries[i]); q++ {
			idxBytes, err := vt.ChallengeBytes(2, "query index")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: squeezing index", i, q)
			}
			j0 := int(binary.BigEndian.Uint16(idxBytes)) % ni
			j1 := (j0 + ni/2) % ni
			jFold := (2 * j0 % ni) / 2

			leaf0Bytes, err := vt.NextBytes(width, "leaf0 value")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading leaf0 value", i, q)
			}
			leaf0PathBytes, err := vt.NextBytes(32*pathLen, "leaf0 proof")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading leaf0 proof", i, q)
			}
			leaf0Path, err := decodePath(leaf0PathBytes, j0)
			if err != nil {
				return err
			}
			if !commitment.Verify(hasher, currentCommitment, leaf0Bytes, leaf0Path) {
				return newError(InvalidProof, nil, "round %d query %d: leaf0 Merkle path failed", i, q)
			}

			leaf1Bytes, err := vt.NextBytes(width, "leaf1 value")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading leaf1 value", i, q)
			}
			leaf1PathBytes, err := vt.NextBytes(32*pathLen, "leaf1 proof")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading leaf1 proof", i, q)
			}
			leaf1Path, err := decodePath(leaf1PathBytes, j1)
			if err != nil {
				return err
			}
			if !commitment.Verify(hasher, currentCommitment, leaf1Bytes, leaf1Path) {
				return newError(InvalidProof, nil, "round %d query %d: leaf1 Merkle path failed", i, q)
			}

			foldBytes, err := vt.NextBytes(width, "fold leaf value")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading fold leaf value", i, q)
			}
			foldPathBytes, err := vt.NextBytes(32*(pathLen-1), "fold leaf proof")
			if err != nil {
				return newError(SerializationError, err, "round %d query %d: reading fold leaf proof", i, q)
			}
			foldPath, err := decodePath(foldPathBytes, jFold)
			if err != nil {
				return err
			}
			if !commitment.Verify(hasher, cNext, foldBytes, foldPath) {
				return newError(InvalidProof, nil, "round %d query %d: fold leaf Merkle path failed", i, q)
			}

			x := powInt(field, omega, j0*(1<<uint(i)))
			leaf0Val := field.FromBEBytesModOrder(leaf0Bytes)
			leaf1Val := field.FromBEBytesModOrder(leaf1Bytes)
			foldVal := field.FromBEBytesModOrder(foldBytes)

			numerator := leaf0Val.Mul(x.Add(alpha)).Add(leaf1Val.Mul(x.Sub(alpha)))
			denominator := x.Mul(two)
			expected, err := numerator.Div(denominator)
			if err != nil {
				return newError(ConfigError, err, "round %d query %d: fold-equation denominator is zero", i, q)
			}
			if !foldVal.Equals(expected) {
				return newError(InvalidProof, nil, "round %d query %d: fold equation failed", i, q)
			}

			lastFoldValue = foldVal
		}

		currentCommitment = cNext
		ni /= 2
	}

	if lastFoldValue == nil {
		return newError(ConfigError, nil, "no queries were made; cannot perform terminal check")
	}

	constantPoly, err := core.NewPolynomialCoefficient(0, []*core.FieldElement{lastFoldValue})
	if err != nil {
		return newError(ConfigError, err, "building terminal constant polynomial")
	}
	constantPoints, err := constantPoly.FFT(cfg.Rate)
	if err != nil {
		return newError(ConfigError, err, "evaluating terminal constant polynomial")
	}
	terminalTree, err := commitment.Commit(hasher, leavesOf(constantPoints, width))
	if err != nil {
		return newError(ConfigError, err, "committing terminal constant polynomial")
	}
	if terminalTree.Root() != currentCommitment {
		return newError(InvalidProof, nil, "terminal constant-polynomial commitment mismatch")
	}

	return nil
}

// powInt returns base^e in field, via square-and-multiply, e >= 0.
func powInt(field *core.Field, base *core.FieldElement, e int) *core.FieldElement {
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
