package transcript

import "testing"

func buildTestSchedule() *DomainSeparator {
	d := NewDomainSeparator("test/v1")
	d.Absorb(32, "root")
	d.Ratchet()
	d.Squeeze(4, "challenge")
	d.Absorb(4, "value")
	return d
}

func TestProverVerifierAgree(t *testing.T) {
	d := buildTestSchedule()
	pt := ToProver(d)

	root := make([]byte, 32)
	for i := range root {
		root[i] = byte(i)
	}
	if err := pt.AddBytes(root, "root"); err != nil {
		t.Fatalf("AddBytes(root): %v", err)
	}
	if err := pt.Ratchet(); err != nil {
		t.Fatalf("Ratchet: %v", err)
	}
	challenge, err := pt.ChallengeBytes(4, "challenge")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}
	value := []byte{1, 2, 3, 4}
	if err := pt.AddBytes(value, "value"); err != nil {
		t.Fatalf("AddBytes(value): %v", err)
	}
	proof, err := pt.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(proof) != 32+4 {
		t.Fatalf("proof length = %d, want %d", len(proof), 36)
	}

	vt := ToVerifier(buildTestSchedule(), proof)
	gotRoot, err := vt.NextBytes(32, "root")
	if err != nil {
		t.Fatalf("NextBytes(root): %v", err)
	}
	if string(gotRoot) != string(root) {
		t.Fatal("verifier read a different root than the prover wrote")
	}
	if err := vt.Ratchet(); err != nil {
		t.Fatalf("Ratchet: %v", err)
	}
	gotChallenge, err := vt.ChallengeBytes(4, "challenge")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}
	if string(gotChallenge) != string(challenge) {
		t.Fatal("verifier derived a different challenge than the prover")
	}
	gotValue, err := vt.NextBytes(4, "value")
	if err != nil {
		t.Fatalf("NextBytes(value): %v", err)
	}
	if string(gotValue) != string(value) {
		t.Fatal("verifier read a different value than the prover wrote")
	}
	if vt.Remaining() != 0 {
		t.Fatalf("verifier has %d unconsumed proof bytes", vt.Remaining())
	}
}

func TestScheduleMismatchRejected(t *testing.T) {
	d := NewDomainSeparator("test/v1")
	d.Absorb(32, "root")
	pt := ToProver(d)

	if err := pt.AddBytes(make([]byte, 16), "root"); err == nil {
		t.Fatal("expected schedule mismatch error for wrong length")
	}
}

func TestSqueezeBeforeAbsorbRejected(t *testing.T) {
	d := NewDomainSeparator("test/v1")
	d.Absorb(32, "root")
	d.Squeeze(4, "challenge")
	pt := ToProver(d)

	if _, err := pt.ChallengeBytes(4, "challenge"); err == nil {
		t.Fatal("expected schedule mismatch: absorb(root) must come first")
	}
}

func TestDifferentLabelsYieldDifferentStates(t *testing.T) {
	d1 := NewDomainSeparator("config-A")
	d1.Squeeze(4, "x")
	d2 := NewDomainSeparator("config-B")
	d2.Squeeze(4, "x")

	c1, err := ToProver(d1).ChallengeBytes(4, "x")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}
	c2, err := ToProver(d2).ChallengeBytes(4, "x")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}
	if string(c1) == string(c2) {
		t.Fatal("distinct configuration labels produced the same challenge")
	}
}

func TestPublicBytesMatchesProverAbsorption(t *testing.T) {
	// A value both parties already know out of band is never written
	// into the proof buffer; the verifier supplies it via PublicBytes
	// instead of reading it back with NextBytes. It must still leave
	// the sponge in the same state the prover's AddBytes of the same
	// bytes would have, so that later squeezed challenges agree.
	publicValue := []byte{9, 8, 7, 6}

	proverSide := NewDomainSeparator("test/v1")
	proverSide.Absorb(4, "public value")
	proverSide.Squeeze(4, "challenge")
	pt := ToProver(proverSide)
	if err := pt.AddBytes(publicValue, "public value"); err != nil {
		t.Fatalf("AddBytes: %v", err)
	}
	wantChallenge, err := pt.ChallengeBytes(4, "challenge")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}

	verifierSide := NewDomainSeparator("test/v1")
	verifierSide.Absorb(4, "public value")
	verifierSide.Squeeze(4, "challenge")
	vt := ToVerifier(verifierSide, nil)
	if err := vt.PublicBytes(publicValue, "public value"); err != nil {
		t.Fatalf("PublicBytes: %v", err)
	}
	gotChallenge, err := vt.ChallengeBytes(4, "challenge")
	if err != nil {
		t.Fatalf("ChallengeBytes: %v", err)
	}
	if string(gotChallenge) != string(wantChallenge) {
		t.Fatal("PublicBytes absorption diverged from the prover's AddBytes absorption")
	}
}

func TestPublicBytesRejectsScheduleMismatch(t *testing.T) {
	d := NewDomainSeparator("test/v1")
	d.Absorb(4, "public value")
	vt := ToVerifier(d, nil)

	if err := vt.PublicBytes(make([]byte, 8), "public value"); err == nil {
		t.Fatal("expected schedule mismatch error for wrong length")
	}
}

func TestNextBytesRejectsShortProof(t *testing.T) {
	d := NewDomainSeparator("test/v1")
	d.Absorb(32, "root")
	vt := ToVerifier(d, make([]byte, 10))

	if _, err := vt.NextBytes(32, "root"); err == nil {
		t.Fatal("expected error reading past the end of a short proof buffer")
	}
}

func TestFinishRejectsUnconsumedSchedule(t *testing.T) {
	d := NewDomainSeparator("test/v1")
	d.Absorb(32, "root")
	d.Ratchet()
	pt := ToProver(d)
	if err := pt.AddBytes(make([]byte, 32), "root"); err != nil {
		t.Fatalf("AddBytes: %v", err)
	}
	if _, err := pt.Finish(); err == nil {
		t.Fatal("expected Finish to reject an unconsumed ratchet step")
	}
}
