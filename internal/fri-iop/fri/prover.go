package fri

import (
	"encoding/binary"

	"github.com/vybium/fri-iop/internal/fri-iop/commitment"
	"github.com/vybium/fri-iop/internal/fri-iop/core"
	"github.com/vybium/fri-iop/internal/fri-iop/transcript"
)

// Prover drives the D folding rounds of the protocol against a single
// configuration, reusable across many Prove calls.
type Prover struct {
	cfg *Config
}

// NewProver builds a Prover, rejecting a malformed configuration.
func NewProver(cfg *Config) (*Prover, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Prover{cfg: cfg}, nil
}

// leavesOf encodes a PolynomialPoints table as big-endian field-element
// leaves in ordinal order, the ordering a vector commitment requires.
func leavesOf(pp *core.PolynomialPoints, width int) [][]byte {
	leaves := make([][]byte, pp.Size())
	for i := range leaves {
		leaves[i] = pp.At(i).ToBEBytes(width)
	}
	return leaves
}

// Prove generates a FRI proof for poly, whose degree must be < 2^D.
// Returns the proof bytes and the initial commitment C_0 the verifier
// must be given out of band.
func (p *Prover) Prove(poly *core.PolynomialCoefficient) ([]byte, commitment.Hash, error) {
	cfg := p.cfg
	maxDegree := (1 << uint(cfg.D)) - 1
	if poly.Degree() > maxDegree {
		return nil, commitment.Hash{}, newError(ConfigError, nil, "polynomial degree %d exceeds 2^D-1=%d for D=%d", poly.Degree(), maxDegree, cfg.D)
	}

	field := core.Prime
	width := field.ByteWidth()

	// Zero-pad to degree 2^D-1 so the initial evaluation domain is
	// exactly 2^D*rate regardless of the caller's actual polynomial
	// degree.
	padded := make([]*core.FieldElement, maxDegree+1)
	for i := range padded {
		if c := poly.Coefficient(i); c != nil {
			padded[i] = c
		} else {
			padded[i] = field.Zero()
		}
	}
	paddedPoly, err := core.NewPolynomialCoefficient(maxDegree, padded)
	if err != nil {
		return nil, commitment.Hash{}, newError(ConfigError, err, "padding polynomial to degree %d", maxDegree)
	}

	current, err := paddedPoly.FFT(cfg.Rate)
	if err != nil {
		return nil, commitment.Hash{}, newError(ConfigError, err, "initial FFT")
	}

	currentTree, err := commitment.Commit(hasher, leavesOf(current, width))
	if err != nil {
		return nil, commitment.Hash{}, newError(ConfigError, err, "committing initial evaluations")
	}
	c0 := currentTree.Root()

	schedule := BuildSchedule(cfg, width)
	pt := transcript.ToProver(schedule)

	if err := pt.AddBytes(c0.Bytes(), "public commitment C_0"); err != nil {
		return nil, commitment.Hash{}, newError(SerializationError, err, "absorbing C_0")
	}
	if err := pt.Ratchet(); err != nil {
		return nil, commitment.Hash{}, newError(SerializationError, err, "initial ratchet")
	}

	for i := 0; i < cfg.D; i++ {
		ni := current.Size()

		alphaBytes, err := pt.ChallengeBytes(width, "folding randomness")
		if err != nil {
			return nil, commitment.Hash{}, newError(SerializationError, err, "round %d: squeezing folding randomness", i)
		}
		alpha := field.FromBEBytesModOrder(alphaBytes)

		folded, err := current.Fold(alpha)
		if err != nil {
			return nil, commitment.Hash{}, newError(ConfigError, err, "round %d: fold", i)
		}

		foldedTree, err := commitment.Commit(hasher, leavesOf(folded, width))
		if err != nil {
			return nil, commitment.Hash{}, newError(ConfigError, err, "round %d: committing folded evaluations", i)
		}
		cNext := foldedTree.Root()

		if err := pt.AddBytes(cNext.Bytes(), "fold commitment"); err != nil {
			return nil, commitment.Hash{}, newError(SerializationError, err, "round %d: absorbing fold commitment", i)
		}

		for q := 0; q < int(cfg.Queries[i]); q++ {
			idxBytes, err := pt.ChallengeBytes(2, "query index")
			if err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: squeezing index", i, q)
			}
			j0 := int(binary.BigEndian.Uint16(idxBytes)) % ni
			j1 := (j0 + ni/2) % ni
			jFold := (2 * j0 % ni) / 2

			leaf0Value := current.At(j0)
			leaf0Path, err := currentTree.Open(j0)
			if err != nil {
				return nil, commitment.Hash{}, newError(ConfigError, err, "round %d query %d: opening leaf0", i, q)
			}
			leaf1Value := current.At(j1)
			leaf1Path, err := currentTree.Open(j1)
			if err != nil {
				return nil, commitment.Hash{}, newError(ConfigError, err, "round %d query %d: opening leaf1", i, q)
			}
			foldValue := folded.At(jFold)
			foldPath, err := foldedTree.Open(jFold)
			if err != nil {
				return nil, commitment.Hash{}, newError(ConfigError, err, "round %d query %d: opening fold leaf", i, q)
			}

			if err := pt.AddBytes(leaf0Value.ToBEBytes(width), "leaf0 value"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing leaf0 value", i, q)
			}
			if err := pt.AddBytes(encodePath(leaf0Path), "leaf0 proof"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing leaf0 proof", i, q)
			}
			if err := pt.AddBytes(leaf1Value.ToBEBytes(width), "leaf1 value"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing leaf1 value", i, q)
			}
			if err := pt.AddBytes(encodePath(leaf1Path), "leaf1 proof"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing leaf1 proof", i, q)
			}
			if err := pt.AddBytes(foldValue.ToBEBytes(width), "fold leaf value"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing fold leaf value", i, q)
			}
			if err := pt.AddBytes(encodePath(foldPath), "fold leaf proof"); err != nil {
				return nil, commitment.Hash{}, newError(SerializationError, err, "round %d query %d: absorbing fold leaf proof", i, q)
			}
		}

		current = folded
		currentTree = foldedTree
	}

	proof, err := pt.Finish()
	if err != nil {
		return nil, commitment.Hash{}, newError(SerializationError, err, "finishing transcript")
	}
	return proof, c0, nil
}
