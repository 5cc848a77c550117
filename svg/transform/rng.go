package transform

// pcg32 is a minimal PCG XSH-RR 32-bit generator (O'Neill, 2014). No
// package in the example corpus ships a PCG implementation (math/rand's
// algorithm is unspecified and not reproducible across the Go versions
// the spec's determinism guarantee needs), so this is hand-rolled from
// the public algorithm description rather than adapted from a dependency.
type pcg32 struct {
	state, inc uint64
}

const (
	pcgMultiplier = 6364136223846793005
	pcgDefaultInc = 1442695040888963407
)

// newPCG32 seeds the generator the way the reference implementation
// does: one throwaway step folds the seed into the state before any
// output is produced.
func newPCG32(seed, seq uint64) *pcg32 {
	g := &pcg32{state: 0, inc: (seq << 1) | 1}
	g.next32()
	g.state += seed
	g.next32()
	return g
}

func (g *pcg32) next32() uint32 {
	old := g.state
	g.state = old*pcgMultiplier + g.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// float32 returns a uniform value in [0,1).
func (g *pcg32) float32() float32 {
	return float32(g.next32()>>8) / float32(1<<24)
}

// intRange returns a uniform integer in [lo, hi] inclusive.
func (g *pcg32) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint32(hi-lo) + 1
	return lo + int(g.next32()%span)
}
