// Package friiop is the public API for a Fast Reed-Solomon IOP of
// Proximity (FRI) proximity-proof system: a prover commits to a
// polynomial's evaluations on a smooth domain and, through D rounds of
// folding, convinces a verifier that the committed values lie close to
// a low-degree polynomial, all non-interactively via a Fiat-Shamir
// transcript.
//
// # Quick start
//
// Proving and verifying a polynomial's low-degree-ness:
//
//	cfg := friiop.DefaultConfig()
//	poly, err := friiop.RandomPolynomial(rand.Reader, 7)
//	prover, err := friiop.NewProver(cfg)
//	proof, c0, err := prover.Prove(poly)
//
//	verifier, err := friiop.NewVerifier(cfg)
//	err = verifier.Verify(proof, c0)
//	if err != nil {
//		// rejected
//	}
//
// # Architecture
//
//   - pkg/fri-iop/: this package, a stable public surface.
//   - internal/fri-iop/core: prime-field arithmetic and the
//     polynomial coefficient/evaluation representations, including FFT
//     and the fold primitive.
//   - internal/fri-iop/commitment: the Merkle vector-commitment layer.
//   - internal/fri-iop/transcript: the Fiat-Shamir duplex sponge and
//     its domain-separator schedule.
//   - internal/fri-iop/fri: the prover and verifier themselves.
//
// Implementation details under internal/ can change without breaking
// this package's API.
package friiop
