package fri

import (
	"github.com/vybium/fri-iop/internal/fri-iop/commitment"
)

// hasher is the vector-commitment hash this package uses for both the
// leaf hash and the two-to-one compressor. An algebraic CRH with its
// own setup parameters is out of scope here; this repository commits
// instead with the sha3 hash already wired into the transcript sponge,
// so prover and verifier share it trivially without any setup phase.
var hasher = commitment.HashSHA3

// encodePath serialises an opening path as the flat concatenation of
// its sibling hashes, 32 bytes each.
func encodePath(p commitment.Path) []byte {
	out := make([]byte, 0, 32*len(p.Siblings))
	for _, s := range p.Siblings {
		out = append(out, s.Bytes()...)
	}
	return out
}

// decodePath reconstructs an opening path from its flat byte encoding
// and the leaf index it was opened at.
func decodePath(data []byte, leafIndex int) (commitment.Path, error) {
	if len(data)%32 != 0 {
		return commitment.Path{}, newError(SerializationError, nil, "opening path length %d is not a multiple of 32", len(data))
	}
	n := len(data) / 32
	siblings := make([]commitment.Hash, n)
	for i := 0; i < n; i++ {
		h, err := commitment.HashFromBytes(data[i*32 : (i+1)*32])
		if err != nil {
			return commitment.Path{}, newError(SerializationError, err, "decoding opening path sibling %d", i)
		}
		siblings[i] = h
	}
	return commitment.Path{LeafIndex: leafIndex, Siblings: siblings}, nil
}
