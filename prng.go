package calculus

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// lfsrState is the m=4 register state shared by every generator in the
// PRNG, grounded on original_source/calculus/lfsr.h's u32x4.
type lfsrState [4]uint32

// lfsr is a single linear-feedback shift register over GF(p^4), the scalar
// (non-SIMD) path of original_source/calculus/lfsr.h's LFSR<p, m> template.
type lfsr struct {
	p     uint32
	k     lfsrState
	state lfsrState
}

func newLFSR(p uint32, k lfsrState) *lfsr {
	return &lfsr{p: p, k: k}
}

func (g *lfsr) setState(st lfsrState) { g.state = st }
func (g *lfsr) getState() lfsrState   { return g.state }
func (g *lfsr) getCell(idx int) uint32 {
	return g.state[idx]
}

// next advances the generator by one tick, feeding input into the register.
func (g *lfsr) next(input uint32) {
	mv := g.state[3]
	for i := 3; i > 0; i-- {
		g.state[i] = (g.state[i-1] + mv*g.k[i]) % g.p
	}
	g.state[0] = (input + mv*g.k[0]) % g.p
}

// The four fixed feedback coefficient vectors and primes, lifted verbatim
// from original_source/calculus/random_gen.h. Their period is approximately
// 2^64.7, chosen by the original's authors for a long non-cryptographic
// period from small LFSRs; see the package doc's Non-goal on
// cryptographic-grade randomness.
const (
	prngP1 = 23
	prngP2 = 19
)

var (
	prngK1 = lfsrState{1, 2, 5, 0}
	prngK2 = lfsrState{2, 2, 4, 1}
	prngK3 = lfsrState{1, 3, 10, 2}
	prngK4 = lfsrState{2, 2, 0, 4}
)

// PRNG combines four independent LFSR generators into a single 64-bit
// output stream via cross-feeding and a nibble-interleaved bit assembly,
// grounded on random_gen.h's gens struct.
type PRNG struct {
	gp1, gp2, gp3, gp4 *lfsr
	x1, x2, x3, x4     uint32
}

// NewPRNG builds a PRNG with the fixed K1..K4 coefficients, seeded with
// fresh, non-cryptographic entropy (wall-clock time XORed with a one-time
// crypto/rand nonce — see DESIGN.md's Open Question resolution on why the
// original's pointer-address entropy has no Go equivalent). Use Seed for a
// deterministic, reproducible state (e.g. in tests).
func NewPRNG() *PRNG {
	g := &PRNG{
		gp1: newLFSR(prngP1, prngK1),
		gp2: newLFSR(prngP1, prngK2),
		gp3: newLFSR(prngP2, prngK3),
		gp4: newLFSR(prngP2, prngK4),
	}
	g.Seed(freshSeed())
	return g
}

func freshSeed() lfsrState {
	var nonce [8]byte
	_, _ = rand.Read(nonce[:])
	n := binary.LittleEndian.Uint64(nonce[:])
	t := uint64(time.Now().UnixNano())
	mix := t ^ n
	return lfsrState{
		uint32(mix) % prngP1,
		uint32(mix>>16) % prngP1,
		uint32(mix>>32) % prngP2,
		uint32(mix>>48) % prngP2,
	}
}

// Seed deterministically (re)initializes all four generators from st,
// running the same 3*m saturation loop as the original's gens::seed.
func (g *PRNG) Seed(st lfsrState) {
	g.gp1.setState(st)
	g.gp2.setState(st)
	g.gp3.setState(st)
	g.gp4.setState(st)
	g.x1, g.x2, g.x3, g.x4 = 1, 1, 1, 1
	const i1, j1, i2, j2 = 0, 3, 2, 1
	for i := 0; i < 3*4; i++ {
		g.gp1.next(g.x2)
		g.gp2.next(g.x1)
		g.gp3.next(g.x4)
		g.gp4.next(g.x3)
		g.x1 = g.gp1.getCell(i1)
		g.x2 = g.gp2.getCell(j1)
		g.x3 = g.gp3.getCell(i2)
		g.x4 = g.gp4.getCell(j2)
	}
}

// NextU64 produces the next 64-bit pseudo-random word, the direct port of
// gens::next_u64.
func (g *PRNG) NextU64() uint64 {
	const i1, j1, i2, j2 = 0, 3, 2, 1
	var x uint64
	for i := 0; i < 4; i++ {
		g.gp1.next(g.x2)
		g.gp2.next(g.x1)
		g.gp3.next(g.x4)
		g.gp4.next(g.x3)
		g.x1 = g.gp1.getCell(i1)
		g.x2 = g.gp2.getCell(j1)
		g.x3 = g.gp3.getCell(i2)
		g.x4 = g.gp4.getCell(j2)

		st := g.gp1.getState()
		st = xorState(st, g.gp2.getState())
		st = xorState(st, g.gp3.getState())
		st = xorState(st, g.gp4.getState())

		high := lfsrState{st[0] / 16, st[1] / 16, st[2] / 16, st[3] / 16}
		st = lfsrState{st[0] % 16, st[1] % 16, st[2] % 16, st[3] % 16}

		x <<= 4
		x |= uint64(st[0])
		x ^= uint64(high[1])
		x <<= 4
		x |= uint64(st[2])
		x ^= uint64(high[0])
		x <<= 4
		x |= uint64(st[3])
		x ^= uint64(high[2])
		x <<= 4
		x |= uint64(st[1])
		x ^= uint64(high[3])
	}
	return x
}

func xorState(a, b lfsrState) lfsrState {
	return lfsrState{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// NextU128 draws a 128-bit non-negative value from two NextU64 calls,
// convenience used by Factorizer/NumberTheory when a witness or candidate
// needs the full 128-bit range.
func (g *PRNG) NextU128() U128 {
	return U128{Lo: Low64(g.NextU64()), Hi: Low64(g.NextU64())}
}
