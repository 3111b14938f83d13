// Package transcript implements the Fiat-Shamir duplex sponge both the
// prover and verifier drive against a shared DomainSeparator schedule.
// The sponge chaining itself generalizes the teacher's
// utils.Channel.hash(state||data) pattern (sha3-backed) into the three
// primitives the schedule allows: absorb, squeeze, ratchet.
package transcript

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const stateSize = 32

// domain-separation tags for the four internal sponge transitions;
// keeps absorb, squeeze-expansion, post-squeeze state update and
// ratchet from ever colliding with one another under the hash.
const (
	tagAbsorb        byte = 0x01
	tagSqueezeBlock  byte = 0x02
	tagSqueezeUpdate byte = 0x03
	tagRatchet       byte = 0x04
)

func absorbState(state [stateSize]byte, data []byte) [stateSize]byte {
	buf := make([]byte, 0, 1+stateSize+len(data))
	buf = append(buf, tagAbsorb)
	buf = append(buf, state[:]...)
	buf = append(buf, data...)
	return sha3.Sum256(buf)
}

func squeezeBytes(state [stateSize]byte, n int) ([]byte, [stateSize]byte) {
	out := make([]byte, 0, n+stateSize)
	var counter [8]byte
	var ctr uint64
	for len(out) < n {
		binary.BigEndian.PutUint64(counter[:], ctr)
		buf := make([]byte, 0, 1+stateSize+8)
		buf = append(buf, tagSqueezeBlock)
		buf = append(buf, state[:]...)
		buf = append(buf, counter[:]...)
		block := sha3.Sum256(buf)
		out = append(out, block[:]...)
		ctr++
	}
	next := sha3.Sum256(append([]byte{tagSqueezeUpdate}, state[:]...))
	return out[:n], next
}

func ratchetState(state [stateSize]byte) [stateSize]byte {
	return sha3.Sum256(append([]byte{tagRatchet}, state[:]...))
}

// initialState seeds the sponge from the schedule's domain-separation
// label, so two schedules with different labels start from different
// states even before any absorb happens.
func initialState(label string) [stateSize]byte {
	return sha3.Sum256(append([]byte{0x00}, []byte(label)...))
}

// ProverTranscript is the prover-side half of a duplex sponge: it can
// absorb prover messages and squeeze challenges, emitting every
// absorbed byte to an append-only proof buffer.
type ProverTranscript struct {
	cursor *cursor
	state  [stateSize]byte
	proof  []byte
}

// ToProver builds a ProverTranscript that will walk d's schedule.
func ToProver(d *DomainSeparator) *ProverTranscript {
	return &ProverTranscript{
		cursor: newCursor(d),
		state:  initialState(d.Label()),
	}
}

// AddBytes absorbs data, which must match the schedule's next
// absorb(len(data), label) step, and appends it to the proof buffer.
func (t *ProverTranscript) AddBytes(data []byte, label string) error {
	if err := t.cursor.next(OpAbsorb, len(data), label); err != nil {
		return err
	}
	t.state = absorbState(t.state, data)
	t.proof = append(t.proof, data...)
	return nil
}

// ChallengeBytes squeezes n bytes of challenge, which must match the
// schedule's next squeeze(n, label) step.
func (t *ProverTranscript) ChallengeBytes(n int, label string) ([]byte, error) {
	if err := t.cursor.next(OpSqueeze, n, label); err != nil {
		return nil, err
	}
	out, next := squeezeBytes(t.state, n)
	t.state = next
	return out, nil
}

// Ratchet re-keys the sponge without absorbing new data, matching the
// schedule's next ratchet step.
func (t *ProverTranscript) Ratchet() error {
	if err := t.cursor.next(OpRatchet, 0, ""); err != nil {
		return err
	}
	t.state = ratchetState(t.state)
	return nil
}

// Finish returns the accumulated proof bytes. Fails if the schedule has
// unconsumed steps remaining.
func (t *ProverTranscript) Finish() ([]byte, error) {
	if !t.cursor.done() {
		return nil, fmt.Errorf("transcript: finish called with %d unconsumed schedule steps", len(t.cursor.ops)-t.cursor.pos)
	}
	return append([]byte(nil), t.proof...), nil
}

// VerifierTranscript is the verifier-side half: it reads bytes out of a
// fixed proof buffer in place of the prover's absorbs, while squeezing
// challenges identically.
type VerifierTranscript struct {
	cursor *cursor
	state  [stateSize]byte
	proof  []byte
	offset int
}

// ToVerifier builds a VerifierTranscript over proof, walking d's schedule.
func ToVerifier(d *DomainSeparator, proof []byte) *VerifierTranscript {
	return &VerifierTranscript{
		cursor: newCursor(d),
		state:  initialState(d.Label()),
		proof:  proof,
	}
}

// PublicBytes absorbs data that both parties already know out of band
// (never serialized into the proof buffer), matching the schedule's
// next absorb(len(data), label) step.
func (t *VerifierTranscript) PublicBytes(data []byte, label string) error {
	if err := t.cursor.next(OpAbsorb, len(data), label); err != nil {
		return err
	}
	t.state = absorbState(t.state, data)
	return nil
}

// NextBytes reads n bytes off the proof buffer, mirroring the prover's
// absorb of the corresponding message, matching the schedule's next
// absorb(n, label) step.
func (t *VerifierTranscript) NextBytes(n int, label string) ([]byte, error) {
	if err := t.cursor.next(OpAbsorb, n, label); err != nil {
		return nil, err
	}
	if t.offset+n > len(t.proof) {
		return nil, fmt.Errorf("transcript: proof buffer too short reading %q: need %d bytes at offset %d, have %d", label, n, t.offset, len(t.proof))
	}
	data := t.proof[t.offset : t.offset+n]
	t.offset += n
	t.state = absorbState(t.state, data)
	return data, nil
}

// ChallengeBytes squeezes n bytes of challenge, matching the schedule's
// next squeeze(n, label) step.
func (t *VerifierTranscript) ChallengeBytes(n int, label string) ([]byte, error) {
	if err := t.cursor.next(OpSqueeze, n, label); err != nil {
		return nil, err
	}
	out, next := squeezeBytes(t.state, n)
	t.state = next
	return out, nil
}

// Ratchet re-keys the sponge, matching the schedule's next ratchet step.
func (t *VerifierTranscript) Ratchet() error {
	if err := t.cursor.next(OpRatchet, 0, ""); err != nil {
		return err
	}
	t.state = ratchetState(t.state)
	return nil
}

// Remaining returns the number of proof-buffer bytes the verifier has
// not read yet (zero once the entire buffer is consumed). Not required
// by the schedule itself, but useful for callers that want to reject
// trailing garbage bytes.
func (t *VerifierTranscript) Remaining() int { return len(t.proof) - t.offset }
