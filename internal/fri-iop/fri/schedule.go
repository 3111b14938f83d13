package fri

import (
	"fmt"

	"github.com/vybium/fri-iop/internal/fri-iop/transcript"
)

// log2 returns k such that 2^k == n. For an n that is not a power of two
// it returns floor(log2(n)); callers here only ever pass rate/domain
// sizes already validated as powers of two.
func log2(n uint64) int {
	k := 0
	for t := n; t > 1; t >>= 1 {
		k++
	}
	return k
}

// BuildSchedule constructs the domain-separator program for the given
// configuration and field byte width. The label folds in D, rate and
// every per-round query count, so two configurations that disagree in
// any of those produce distinct schedules and therefore distinct
// transcripts, independent of anything this function's caller absorbs
// later.
func BuildSchedule(cfg *Config, fieldByteWidth int) *transcript.DomainSeparator {
	label := fmt.Sprintf("fri-iop/D=%d/rate=%d/queries=%v/|F|=%d", cfg.D, cfg.Rate, cfg.Queries, fieldByteWidth)
	d := transcript.NewDomainSeparator(label)

	d.Absorb(32, "public commitment C_0")
	d.Ratchet()

	logRate := log2(cfg.Rate)
	for i := 0; i < cfg.D; i++ {
		d.Squeeze(fieldByteWidth, "folding randomness")
		d.Absorb(32, "fold commitment")

		pathLen := (cfg.D - i) + logRate
		for q := 0; q < int(cfg.Queries[i]); q++ {
			d.Squeeze(2, "query index")
			d.Absorb(fieldByteWidth, "leaf0 value")
			d.Absorb(32*pathLen, "leaf0 proof")
			d.Absorb(fieldByteWidth, "leaf1 value")
			d.Absorb(32*pathLen, "leaf1 proof")
			d.Absorb(fieldByteWidth, "fold leaf value")
			d.Absorb(32*(pathLen-1), "fold leaf proof")
		}
	}

	return d
}
