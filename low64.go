package calculus

import "math/bits"

// Low64 is a 64-bit unsigned half-word: the building block U128 composes
// two of into a 128-bit magnitude. It exists as its own type (rather than a
// bare uint64 used inline) so the rest of the package has one place that
// owns the half-word operator set, matching the teacher's half/full-width
// split in u128.go.
type Low64 uint64

// MaxLow64 is the all-ones half-word, the half-width analogue of MaxU128.
const MaxLow64 Low64 = 1<<64 - 1

// Add returns x+y and the carry out of bit 63.
func (x Low64) Add(y Low64) (sum Low64, carry Low64) {
	s, c := bits.Add64(uint64(x), uint64(y), 0)
	return Low64(s), Low64(c)
}

// Sub returns x-y and the borrow out of bit 63.
func (x Low64) Sub(y Low64) (diff Low64, borrow Low64) {
	d, b := bits.Sub64(uint64(x), uint64(y), 0)
	return Low64(d), Low64(b)
}

// Mul returns the full 128-bit product of x and y as (hi, lo).
func (x Low64) Mul(y Low64) (hi, lo Low64) {
	h, l := bits.Mul64(uint64(x), uint64(y))
	return Low64(h), Low64(l)
}

// QuoRem divides x by y. It panics if y is zero: a literal zero divisor at
// this layer is a programmer error, not a representable singular result.
func (x Low64) QuoRem(y Low64) (q, r Low64) {
	if y == 0 {
		panic("calculus: Low64 division by zero")
	}
	return Low64(uint64(x) / uint64(y)), Low64(uint64(x) % uint64(y))
}

// Mod10 returns x mod 10 as an int, matching the original's mod10().
func (x Low64) Mod10() int {
	return int(uint64(x) % 10)
}

func (x Low64) Neg() Low64 { return -x }

func (x Low64) And(y Low64) Low64 { return x & y }
func (x Low64) Or(y Low64) Low64  { return x | y }
func (x Low64) Xor(y Low64) Low64 { return x ^ y }
func (x Low64) Not() Low64        { return ^x }

func (x Low64) Lsh(n uint) Low64 {
	if n >= 64 {
		return 0
	}
	return x << n
}

func (x Low64) Rsh(n uint) Low64 {
	if n >= 64 {
		return 0
	}
	return x >> n
}

// CountLeadingZeros returns the number of leading zero bits, matching the
// original's countl_zero().
func (x Low64) CountLeadingZeros() int {
	return bits.LeadingZeros64(uint64(x))
}

func (x Low64) IsZero() bool { return x == 0 }

func (x Low64) Cmp(y Low64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
