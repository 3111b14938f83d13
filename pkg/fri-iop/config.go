package friiop

import "github.com/vybium/fri-iop/internal/fri-iop/fri"

// Config is the protocol configuration surface.
type Config = fri.Config

// DefaultConfig returns a modest configuration suitable for examples
// and tests: D=3 folding rounds, rate=8, three queries per round.
func DefaultConfig() *Config { return fri.DefaultConfig() }
