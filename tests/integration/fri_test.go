package integration_test

import (
	"crypto/rand"
	"testing"

	friiop "github.com/vybium/fri-iop/pkg/fri-iop"
)

// TestFRIProveVerifyEndToEnd exercises the public API exactly as an
// external caller would: configure, prove, verify. Tampered proofs are
// covered by TestFRITamperedProofRejected.
func TestFRIProveVerifyEndToEnd(t *testing.T) {
	t.Log("=== FRI end-to-end: prove and verify a random polynomial ===")

	cfg := friiop.DefaultConfig()
	maxDegree := (1 << uint(cfg.D)) - 1

	poly, err := friiop.RandomPolynomial(rand.Reader, maxDegree)
	if err != nil {
		t.Fatalf("RandomPolynomial: %v", err)
	}

	proof, c0, err := friiop.Prove(cfg, poly)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	t.Logf("proof size: %d bytes", len(proof))

	if err := friiop.Verify(cfg, proof, c0); err != nil {
		t.Fatalf("Verify rejected an honest proof: %v", err)
	}
}

func TestFRITamperedProofRejected(t *testing.T) {
	cfg := friiop.DefaultConfig()
	maxDegree := (1 << uint(cfg.D)) - 1

	poly, err := friiop.RandomPolynomial(rand.Reader, maxDegree)
	if err != nil {
		t.Fatalf("RandomPolynomial: %v", err)
	}
	proof, c0, err := friiop.Prove(cfg, poly)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tampered := append([]byte(nil), proof...)
	tampered[0] ^= 0xff
	if err := friiop.Verify(cfg, tampered, c0); err == nil {
		t.Fatal("Verify accepted a proof tampered in its leading commitment byte")
	}

	tampered = append([]byte(nil), proof...)
	tampered[len(tampered)-1] ^= 0xff
	if err := friiop.Verify(cfg, tampered, c0); err == nil {
		t.Fatal("Verify accepted a proof tampered in its trailing byte")
	}
}

func TestFRIWrongCommitmentRejected(t *testing.T) {
	cfg := friiop.DefaultConfig()
	maxDegree := (1 << uint(cfg.D)) - 1

	poly, err := friiop.RandomPolynomial(rand.Reader, maxDegree)
	if err != nil {
		t.Fatalf("RandomPolynomial: %v", err)
	}
	proof, _, err := friiop.Prove(cfg, poly)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	var wrongC0 friiop.Hash
	if err := friiop.Verify(cfg, proof, wrongC0); err == nil {
		t.Fatal("Verify accepted a proof against an unrelated commitment")
	}
}

// TestFRICrossConfigurationRejected confirms a proof produced under one
// configuration is rejected by a verifier built from a different one,
// matching the domain-separated transcript every configuration commits
// to.
func TestFRICrossConfigurationRejected(t *testing.T) {
	proverCfg := &friiop.Config{D: 3, Rate: 4, Queries: []uint32{2, 2, 2}}
	verifierCfg := &friiop.Config{D: 3, Rate: 8, Queries: []uint32{2, 2, 2}}

	poly, err := friiop.RandomPolynomial(rand.Reader, (1<<proverCfg.D)-1)
	if err != nil {
		t.Fatalf("RandomPolynomial: %v", err)
	}

	proof, c0, err := friiop.Prove(proverCfg, poly)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := friiop.Verify(verifierCfg, proof, c0); err == nil {
		t.Fatal("Verify accepted a proof produced under a mismatched configuration")
	}
}
