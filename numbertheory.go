package calculus

// NumberTheory groups the shared arithmetic primitives the factorization
// engine is built from: modular multiplication/exponentiation, gcd,
// integer square root, quadratic residues, and Miller-Rabin primality.
// Grounded on _examples/original_source/calculus/u128_utils.h/.cpp.
//
// It holds only a PRNG reference (Miller-Rabin needs random witnesses); all
// methods are otherwise pure functions of their arguments.
type NumberTheory struct {
	rng *PRNG
}

// NewNumberTheory builds a NumberTheory helper drawing witnesses from rng.
func NewNumberTheory(rng *PRNG) *NumberTheory {
	return &NumberTheory{rng: rng}
}

// Gcd returns the greatest common divisor of x and y via Euclid's
// algorithm, using U128's authorial division operator throughout.
func Gcd(x, y U128) U128 {
	x, y = x.Abs(), y.Abs()
	if x.Equal(y) {
		return x
	}
	if x.GreaterThanOrEqual(y) {
		for !y.IsZero() {
			yCopy := y
			_, y = x.QuoRem(y)
			x = yCopy
		}
		return x
	}
	for !x.IsZero() {
		xCopy := x
		_, x = y.QuoRem(x)
		y = xCopy
	}
	return y
}

// ModMul returns (x*y) mod m via an exact 256-bit intermediate product.
func (*NumberTheory) ModMul(x, y, m U128) U128 {
	return ModMul256(x, y, m)
}

// ModPow returns (base^exp) mod m by binary exponentiation built on ModMul.
func (nt *NumberTheory) ModPow(base, exp, m U128) U128 {
	result := OneU128
	_, base = base.QuoRem(m)
	for !exp.IsZero() {
		if exp.Lo&1 == 1 {
			result = nt.ModMul(result, base, m)
		}
		exp = exp.Div10Shift1()
		base = nt.ModMul(base, base, m)
	}
	return result
}

// Div10Shift1 is an arithmetic-right-shift-by-one helper used only by
// ModPow's exponent walk (exp >>= 1); named distinctly from U128's Div10 so
// callers can't confuse "divide by 10" with "halve".
func (x U128) Div10Shift1() U128 {
	lo := (x.Lo >> 1) | (Low64(x.Hi&1) << 63)
	hi := x.Hi >> 1
	return U128{Lo: lo, Hi: hi}
}

// NumOfDigits returns the decimal digit count of x, minimum 1.
func NumOfDigits(x U128) int {
	i := 0
	for !x.IsZero() {
		x = x.Div10()
		i++
	}
	if i == 0 {
		return 1
	}
	return i
}

// Isqrt returns floor(sqrt(x)) via Newton's method, tracking the last two
// iterates to break oscillation exactly as the original does, plus whether
// the result is an exact square root.
func Isqrt(x U128) (result U128, exact bool) {
	if x.IsZero() {
		return x, true
	}
	bitsLen := x.BitLen()
	result = OneU128
	result = shiftLeftU128(result, uint(bitsLen/2))
	var prev, prevPrev U128
	for {
		prevPrev = prev
		prev = result
		quotient, remainder := x.QuoRem(result)
		sum := result.Add(quotient)
		result, _ = sum.QuoRemLow64(2)
		if result.Equal(prev) {
			return result, remainder.IsZero() && quotient.Equal(result)
		}
		if result.Equal(prevPrev) {
			if result.LessThan(prev) {
				return result, false
			}
			return prev, false
		}
	}
}

func shiftLeftU128(v U128, n uint) U128 {
	if n == 0 {
		return v
	}
	if n >= 128 {
		return ZeroU128
	}
	if n < 64 {
		hi := v.Hi.Lsh(n).Or(v.Lo.Rsh(64 - n))
		lo := v.Lo.Lsh(n)
		return U128{Lo: lo, Hi: hi}
	}
	return U128{Lo: 0, Hi: v.Lo.Lsh(n - 64)}
}

// IsQuadraticResidue reports whether x is a quadratic residue mod p, by
// incremental enumeration (y^2 = (y-1)^2 + 2y - 1) matching the original.
func IsQuadraticResidue(x, p U128) bool {
	_, rx := x.QuoRem(p)
	y2 := ZeroU128
	for y := ZeroU128; y.LessThan(p); y = y.Add(OneU128) {
		_, ry2 := y2.QuoRem(p)
		if ry2.Equal(rx) {
			return true
		}
		y2 = y2.Add(y.Add(y).Add(OneU128))
	}
	return false
}

// SqrtMod returns both square roots of x mod p (equal if only one exists),
// by the same incremental enumeration as IsQuadraticResidue.
func SqrtMod(x, p U128) (U128, U128) {
	var result [2]U128
	idx := 0
	_, rx := x.QuoRem(p)
	y2 := ZeroU128
	for y := ZeroU128; y.LessThan(p); y = y.Add(OneU128) {
		_, ry2 := y2.QuoRem(p)
		if ry2.Equal(rx) {
			result[idx] = y
			idx++
		}
		y2 = y2.Add(y.Add(y).Add(OneU128))
		if idx == 2 {
			break
		}
	}
	if idx == 1 {
		result[1] = result[0]
	}
	return result[0], result[1]
}

// MillerTest runs one round of the Miller-Rabin witness test with d (the
// odd part of n-1) and a random base drawn from the PRNG.
func (nt *NumberTheory) MillerTest(d, n U128) bool {
	x := nt.rng.NextU128()
	nMinus3 := n.Sub(U128FromUint64(3))
	_, x = x.QuoRem(nMinus3)
	x = x.Add(U128FromUint64(2))
	x = nt.ModPow(x, d, n)
	nMinus1 := n.Sub(OneU128)
	if x.Equal(OneU128) || x.Equal(nMinus1) {
		return true
	}
	for !d.Equal(nMinus1) {
		x = nt.ModPow(x, U128FromUint64(2), n)
		d = d.Mul(U128FromUint64(2))
		if x.Equal(OneU128) {
			return false
		}
		if x.Equal(nMinus1) {
			return true
		}
	}
	return false
}

// IsPrime reports whether x is probably prime using k rounds of
// Miller-Rabin, after stripping trivial even/small cases.
func (nt *NumberTheory) IsPrime(x U128, k int) bool {
	if x.LessThan(U128FromUint64(2)) || x.Equal(U128FromUint64(4)) {
		return false
	}
	if x.LessThan(U128FromUint64(4)) {
		return true
	}
	if x.Lo&1 == 0 {
		return false
	}
	d := x.Sub(OneU128)
	for d.Lo&1 == 0 {
		d = d.Div10Shift1()
	}
	for i := 0; i < k; i++ {
		if !nt.MillerTest(d, x) {
			return false
		}
	}
	return true
}
