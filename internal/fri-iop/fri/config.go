package fri

import "math"

// Config is the protocol configuration surface: the number of folding
// rounds, the blowup rate, and the per-round query counts.
type Config struct {
	// D is the number of folding rounds; the source polynomial's
	// degree must be < 2^D.
	D int
	// Rate is the blowup factor, a power of two >= 2.
	Rate uint64
	// Queries holds one query count per round, len(Queries) == D.
	Queries []uint32
}

// DefaultConfig returns a modest configuration suitable for examples
// and tests: D=3 folding rounds, rate=8, three queries per round.
func DefaultConfig() *Config {
	return &Config{
		D:       3,
		Rate:    8,
		Queries: []uint32{3, 3, 3},
	}
}

// Validate checks the configuration's shape, returning a ConfigError
// wrapping the first violation found.
func (c *Config) Validate() error {
	if c.D <= 0 {
		return newError(ConfigError, nil, "D must be positive, got %d", c.D)
	}
	if c.Rate < 2 || (c.Rate&(c.Rate-1)) != 0 {
		return newError(ConfigError, nil, "rate must be a power of two >= 2, got %d", c.Rate)
	}
	if len(c.Queries) != c.D {
		return newError(ConfigError, nil, "queries must have exactly D=%d entries, got %d", c.D, len(c.Queries))
	}
	for i, q := range c.Queries {
		if q == 0 {
			return newError(ConfigError, nil, "queries[%d] must be positive", i)
		}
	}
	return nil
}

// ConjecturedSoundnessBits estimates the protocol's conjectured
// security level in bits, informational only and not consulted by
// Prove/Verify. Each query against a domain blown up by `rate`
// contributes roughly -log2(1/rate) bits of soundness; this sums each
// round's contribution, the conservative per-round (not amortized)
// estimate.
func (c *Config) ConjecturedSoundnessBits() float64 {
	perQueryBits := -math.Log2(1.0 / float64(c.Rate))
	total := 0.0
	for _, q := range c.Queries {
		total += perQueryBits * float64(q)
	}
	return total
}
