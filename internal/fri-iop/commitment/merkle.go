// Package commitment implements the vector-commitment layer: a binary
// Merkle tree over field-element leaves with authenticated openings,
// grounded on the teacher's core.MerkleTree but generalized over a
// pluggable Hasher so the same tree type can run on either of this
// repository's two wired hash backends.
package commitment

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/zeebo/blake3"
)

// Hash is the tree's canonical 32-byte group encoding.
type Hash [32]byte

// Bytes returns the hash's big-endian byte encoding.
func (h Hash) Bytes() []byte { return h[:] }

// HashFromBytes reads a Hash out of a 32-byte big-endian slice.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != 32 {
		return h, fmt.Errorf("commitment: hash must be exactly 32 bytes, got %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Hasher supplies the two abstract capabilities a vector commitment
// needs: a collision-resistant leaf hash from a byte string to a group
// element, and a two-to-one compressor from two group elements to one.
// Both are instantiated here as 32-byte hash outputs.
type Hasher interface {
	// HashLeaf maps an encoded field element to a leaf hash.
	HashLeaf(data []byte) Hash
	// Compress maps a left/right pair of node hashes to their parent.
	Compress(left, right Hash) Hash
}

// sha3Hasher is the teacher's own hash choice (x/crypto/sha3), reused
// here for both the leaf hash and the compressor.
type sha3Hasher struct{}

// HashSHA3 is the SHA3-256-backed Hasher.
var HashSHA3 Hasher = sha3Hasher{}

func (sha3Hasher) HashLeaf(data []byte) Hash {
	h := sha3.Sum256(append([]byte{0x00}, data...))
	return Hash(h)
}

func (sha3Hasher) Compress(left, right Hash) Hash {
	buf := make([]byte, 0, 65)
	buf = append(buf, 0x01)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	h := sha3.Sum256(buf)
	return Hash(h)
}

// blake3Hasher is an alternate leaf/inner hash exercising the pack's
// blake3 dependency through the same Hasher contract.
type blake3Hasher struct{}

// HashBLAKE3 is the BLAKE3-backed Hasher.
var HashBLAKE3 Hasher = blake3Hasher{}

func (blake3Hasher) HashLeaf(data []byte) Hash {
	h := blake3.New()
	h.Write([]byte{0x00})
	h.Write(data)
	var out Hash
	h.Digest().Read(out[:])
	return out
}

func (blake3Hasher) Compress(left, right Hash) Hash {
	h := blake3.New()
	h.Write([]byte{0x01})
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	h.Digest().Read(out[:])
	return out
}

// Tree is an authenticated Merkle tree of fan-in 2 over leaves that are
// canonical byte encodings of field elements. Leaf at ordinal i
// MUST be the polynomial's evaluation at ω^i; the tree itself is
// agnostic to that convention and simply commits the leaves in the
// order given.
type Tree struct {
	hasher Hasher
	levels [][]Hash // levels[0] = leaf hashes, levels[last] = {root}
}

// Commit builds a Tree over leaves (canonical field-element encodings),
// hashing and compressing upward to a root. An odd node at any level is
// paired with itself, matching the teacher's core.NewMerkleTree.
func Commit(hasher Hasher, leaves [][]byte) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("commitment: cannot commit an empty leaf set")
	}

	leafHashes := make([]Hash, len(leaves))
	for i, leaf := range leaves {
		leafHashes[i] = hasher.HashLeaf(leaf)
	}

	levels := [][]Hash{leafHashes}
	current := leafHashes
	for len(current) > 1 {
		next := make([]Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, hasher.Compress(current[i], current[i+1]))
			} else {
				next = append(next, hasher.Compress(current[i], current[i]))
			}
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{hasher: hasher, levels: levels}, nil
}

// Root returns the tree's 32-byte root.
func (t *Tree) Root() Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// LeafCount returns the number of leaves committed.
func (t *Tree) LeafCount() int { return len(t.levels[0]) }

// Path is an opening path: (leaf_sibling_hash, auth_path[0..k],
// leaf_index), k = ceil(log2(leafCount))-1.
type Path struct {
	LeafIndex int
	// Siblings holds one hash per tree level, bottom to top: the leaf's
	// sibling hash first, then each inner node's sibling up to (but
	// excluding) the root.
	Siblings []Hash
}

// Len reports the number of hashes in the path.
func (p Path) Len() int { return len(p.Siblings) }

// Open returns the opening path for leaf index i.
func (t *Tree) Open(i int) (Path, error) {
	if i < 0 || i >= len(t.levels[0]) {
		return Path{}, fmt.Errorf("commitment: leaf index %d out of range [0, %d)", i, len(t.levels[0]))
	}

	siblings := make([]Hash, 0, len(t.levels)-1)
	idx := i
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		var sibling Hash
		if idx%2 == 0 {
			if idx+1 < len(nodes) {
				sibling = nodes[idx+1]
			} else {
				sibling = nodes[idx]
			}
		} else {
			sibling = nodes[idx-1]
		}
		siblings = append(siblings, sibling)
		idx /= 2
	}

	return Path{LeafIndex: i, Siblings: siblings}, nil
}

// Verify recomputes the root from leafValue and path and compares it
// to root, using hasher for both the leaf hash and the compressor.
func Verify(hasher Hasher, root Hash, leafValue []byte, path Path) bool {
	current := hasher.HashLeaf(leafValue)
	idx := path.LeafIndex
	for _, sibling := range path.Siblings {
		if idx%2 == 0 {
			current = hasher.Compress(current, sibling)
		} else {
			current = hasher.Compress(sibling, current)
		}
		idx /= 2
	}
	return current == root
}
