package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"time"

	friiop "github.com/vybium/fri-iop/pkg/fri-iop"
)

func main() {
	degree := flag.Int("degree", 0, "degree of the random polynomial to prove (default: the largest degree the configuration allows)")
	flag.Parse()

	cfg := friiop.DefaultConfig()
	maxDegree := (1 << uint(cfg.D)) - 1
	if *degree <= 0 {
		*degree = maxDegree
	}
	if *degree > maxDegree {
		log.Fatalf("degree %d exceeds the maximum %d for D=%d folding rounds", *degree, maxDegree, cfg.D)
	}

	fmt.Printf("configuration: D=%d rounds, rate=%d, queries/round=%v (~%.1f conjectured bits of soundness)\n",
		cfg.D, cfg.Rate, cfg.Queries, cfg.ConjecturedSoundnessBits())

	poly, err := friiop.RandomPolynomial(rand.Reader, *degree)
	if err != nil {
		log.Fatalf("generating random polynomial: %v", err)
	}
	fmt.Printf("polynomial degree: %d\n", *degree)

	prover, err := friiop.NewProver(cfg)
	if err != nil {
		log.Fatalf("building prover: %v", err)
	}

	start := time.Now()
	proof, c0, err := prover.Prove(poly)
	if err != nil {
		log.Fatalf("proving: %v", err)
	}
	proveElapsed := time.Since(start)
	fmt.Printf("proof generated: %d bytes in %s\n", len(proof), proveElapsed)

	verifier, err := friiop.NewVerifier(cfg)
	if err != nil {
		log.Fatalf("building verifier: %v", err)
	}

	start = time.Now()
	verifyErr := verifier.Verify(proof, c0)
	verifyElapsed := time.Since(start)

	if verifyErr != nil {
		fmt.Printf("verification: REJECTED in %s (%v)\n", verifyElapsed, verifyErr)
		log.Fatal("proof rejected")
	}
	fmt.Printf("verification: ACCEPTED in %s\n", verifyElapsed)
}
