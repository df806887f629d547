package calculus

import "strings"

// U128 is a 128-bit integer built from two Low64 halves, an explicit Sign,
// and an explicit Singular flag. Grounded on
// _examples/original_source/calculus/u128.h, the type actually exercised by
// Decimal in the original (as opposed to the pure-magnitude illustration
// type in u128.hpp, used there only to demonstrate the division algorithm
// in isolation) — so both the sign/singular discipline and the division
// algorithm below are ported from u128.h directly.
type U128 struct {
	Lo, Hi   Low64
	Sign     Sign
	Singular Singular
}

// MaxU128 is the largest finite, positive U128 value: 2^128 - 1.
var MaxU128 = U128{Lo: MaxLow64, Hi: MaxLow64}

// Zero, One and UnitNeg mirror the original's get_zero/get_unit/get_unit_neg.
var (
	ZeroU128    = U128{}
	OneU128     = U128{Lo: 1}
	UnitNegU128 = U128{Lo: 1, Sign: NegativeSign}
)

// U128FromUint64 builds a non-negative U128 from a plain machine integer.
func U128FromUint64(v uint64) U128 {
	return U128{Lo: Low64(v)}
}

// U128FromParts builds a U128 from explicit halves and sign.
func U128FromParts(lo, hi Low64, sign Sign) U128 {
	return U128{Lo: lo, Hi: hi, Sign: sign}
}

// U128Overflow returns the canonical overflow singular value.
func U128Overflow() U128 { return U128{Singular: Overflow()} }

// U128NaN returns the canonical NaN singular value.
func U128NaN() U128 { return U128{Singular: NaN()} }

func (x U128) IsSingular() bool { return x.Singular.Any() }
func (x U128) IsOverflow() bool { return x.Singular.IsOverflow() }
func (x U128) IsNaN() bool      { return x.Singular.IsNaN() }

// IsZero reports whether x is numerically zero. Canonical zero has no
// sign: the sign bit is ignored here by design (see DESIGN.md).
func (x U128) IsZero() bool {
	return x.Lo == 0 && x.Hi == 0 && !x.IsSingular()
}

func (x U128) IsNegative() bool {
	return !x.IsZero() && x.Sign.IsNegative() && !x.IsSingular()
}

func (x U128) IsPositive() bool {
	return !x.IsZero() && !x.Sign.IsNegative() && !x.IsSingular()
}

func (x U128) IsNonNegative() bool {
	return x.IsPositive() || x.IsZero()
}

// SetOverflow returns a copy of x flagged as overflowed.
func (x U128) SetOverflow() U128 {
	x.Singular = x.Singular.SetOverflow()
	return x
}

// SetNaN returns a copy of x flagged as NaN.
func (x U128) SetNaN() U128 {
	x.Singular = x.Singular.SetNaN()
	return x
}

// Neg flips the sign. Canonical zero stays signless.
func (x U128) Neg() U128 {
	if x.IsZero() || x.IsSingular() {
		return x
	}
	x.Sign = x.Sign.Neg()
	return x
}

// Abs clears the sign bit.
func (x U128) Abs() U128 {
	x.Sign = PositiveSign
	return x
}

// Equal reports numeric equality. Per the singular-value contract, it is
// always false if either side is singular.
func (x U128) Equal(y U128) bool {
	if x.IsSingular() || y.IsSingular() {
		return false
	}
	c, _ := x.Cmp(y)
	return c == 0
}

// Cmp compares x and y, returning ok=false (unordered) if either is
// singular.
func (x U128) Cmp(y U128) (cmp int, ok bool) {
	if x.IsSingular() || y.IsSingular() {
		return 0, false
	}
	xNeg, yNeg := x.IsNegative(), y.IsNegative()
	if xNeg == yNeg {
		hc := x.Hi.Cmp(y.Hi)
		if xNeg {
			hc = -hc
		}
		if hc != 0 {
			return hc, true
		}
		lc := x.Lo.Cmp(y.Lo)
		if xNeg {
			lc = -lc
		}
		return lc, true
	}
	if xNeg {
		return -1, true
	}
	return 1, true
}

func (x U128) LessThan(y U128) bool {
	c, ok := x.Cmp(y)
	return ok && c < 0
}

func (x U128) GreaterThanOrEqual(y U128) bool {
	c, ok := x.Cmp(y)
	return ok && c >= 0
}

// Add returns x+y, following u128.h's sign-aware addition: equal signs add
// magnitudes and report overflow on carry out of the top bit; differing
// signs route to subtraction of magnitudes.
func (x U128) Add(y U128) U128 {
	if x.IsSingular() {
		return x
	}
	if y.IsSingular() {
		x.Singular = y.Singular
		return x
	}
	if x.IsNegative() && !y.IsNegative() {
		x.Sign = PositiveSign
		return y.Sub(x)
	}
	if !x.IsNegative() && y.IsNegative() {
		y.Sign = PositiveSign
		return x.Sub(y)
	}
	lo, c1 := x.Lo.Add(y.Lo)
	hi, c2 := x.Hi.Add(y.Hi)
	hi2, c3 := hi.Add(c1)
	result := U128{Lo: lo, Hi: hi2}
	if c2 != 0 || c3 != 0 {
		result.Singular = Overflow()
	}
	if x.Sign.IsNegative() && y.Sign.IsNegative() {
		result.Sign = NegativeSign
	}
	return result
}

// Sub returns x-y.
func (x U128) Sub(y U128) U128 {
	if x.IsSingular() {
		return x
	}
	if y.IsSingular() {
		x.Singular = y.Singular
		return x
	}
	if x.IsNegative() && !y.IsNegative() {
		y.Sign = NegativeSign
		return y.Add(x)
	}
	if !x.IsNegative() && y.IsNegative() {
		y.Sign = PositiveSign
		return x.Add(y)
	}
	if x.IsNegative() && y.IsNegative() {
		y.Sign = PositiveSign
		x.Sign = PositiveSign
		return y.Sub(x)
	}
	if x.IsZero() {
		return y.Neg()
	}
	borrow := x.Lo < y.Lo
	hasUnit := x.Hi > y.Hi
	lo := x.Lo - y.Lo
	hi := x.Hi - y.Hi
	if borrow && hasUnit {
		hi--
	}
	if borrow && !hasUnit {
		result := y.Sub(x)
		return result.Neg()
	}
	if !borrow && x.Hi < y.Hi {
		neg := -hi
		if lo != 0 {
			neg--
		}
		return U128{Lo: -lo, Hi: neg, Sign: NegativeSign}
	}
	return U128{Lo: lo, Hi: hi}
}

// mul64 multiplies two Low64 halves via Low64.Mul (math/bits.Mul64),
// producing the exact 128-bit product. A Low64*Low64 product always fits in
// 128 bits, so there is no overflow case here — kept as its own helper
// because u128.h's mult64 is reused both for full Mul and for the
// Mul-by-Low64 fast path.
func mul64(x, y Low64) U128 {
	hi, lo := x.Mul(y)
	return U128{Lo: lo, Hi: hi}
}

// MulLow64 multiplies x by a Low64 scalar, matching u128.h's operator*(ULOW).
func (x U128) MulLow64(y Low64) U128 {
	result := mul64(x.Lo, y)
	hiPart := mul64(x.Hi, y)
	overflow := hiPart.Hi != 0
	shifted := U128{Lo: 0, Hi: hiPart.Lo}
	result = result.Add(shifted)
	if !result.IsZero() {
		result.Sign = x.Sign
	} else {
		result.Sign = PositiveSign
	}
	if overflow {
		result = result.SetOverflow()
	}
	return result
}

// shl64 multiplies x by 2^64, the direct port of u128.h's free function
// shl64, used by the full U128*U128 multiply.
func shl64(x U128) U128 {
	result := U128{Lo: 0, Hi: x.Lo, Sign: x.Sign, Singular: x.Singular}
	if x.Hi != 0 && !x.IsSingular() {
		result = result.SetOverflow()
	}
	return result
}

// Mul multiplies two U128 values.
func (x U128) Mul(y U128) U128 {
	result := x.MulLow64(y.Lo)
	if result.IsSingular() {
		return result
	}
	result.Sign = x.Sign.Xor(y.Sign)
	hiContribution := x.MulLow64(y.Hi)
	if !hiContribution.IsZero() {
		hiContribution.Sign = result.Sign
	}
	return result.Add(shl64(hiContribution))
}

// Div10 divides x by 10, the special-cased division used to build the
// decimal string representation.
func (x U128) Div10() U128 {
	if x.IsSingular() {
		return x
	}
	sign := x.Sign
	x.Sign = PositiveSign
	const ten = Low64(10)
	q, r := x.Hi.QuoRem(ten)
	n := (MaxLow64/ten)*r + x.Lo/ten
	result := U128{Lo: n, Hi: q}
	tmp := result.MulLow64(ten)
	e := x.Sub(tmp)
	for e.Hi != 0 || e.Lo >= ten {
		q2, r2 := e.Hi.QuoRem(ten)
		n2 := (MaxLow64/ten)*r2 + e.Lo/ten
		step := U128{Lo: n2, Hi: q2}
		result = result.Add(step)
		e = e.Sub(step.MulLow64(ten))
	}
	result.Sign = sign
	return result
}

// Mod10 returns x mod 10, or -1 if x is singular.
func (x U128) Mod10() int {
	if x.IsSingular() {
		return -1
	}
	const multiplierMod10 = int(MaxLow64%10) + 1
	return (x.Lo.Mod10() + multiplierMod10*x.Hi.Mod10()) % 10
}

// QuoRemLow64 divides x by a nonzero Low64 y, the authorial iterative
// half-division: Q/R seeded from a high-word estimate, then corrected by
// repeatedly folding the residual error back in until it collapses to
// zero, exactly as u128.h's operator/(ULOW).
func (x U128) QuoRemLow64(y Low64) (U128, Low64) {
	if y == 0 {
		panic("calculus: U128 division by zero")
	}
	q, r := x.Hi.QuoRem(y)
	n := (MaxLow64/y)*r + x.Lo/y
	result := U128{Lo: n, Hi: q, Sign: x.Sign}
	e := x.Sub(result.MulLow64(y))
	for {
		q2, r2 := e.Hi.QuoRem(y)
		n2 := (MaxLow64/y)*r2 + e.Lo/y
		tmp := U128{Lo: n2, Hi: q2, Sign: e.Sign}
		if tmp.IsZero() {
			break
		}
		result = result.Add(tmp)
		e = e.Sub(tmp.MulLow64(y))
	}
	if e.IsNegative() {
		result = result.Sub(OneU128)
		e = e.Add(U128{Lo: y})
	}
	return result, e.Lo
}

// QuoRem divides x by the nonzero U128 y, the authorial estimate-then-
// correct algorithm for full 128-bit divisors, ported from u128.h's
// operator/(U128).
func (x U128) QuoRem(y U128) (U128, U128) {
	if y.IsZero() {
		panic("calculus: U128 division by zero")
	}
	if y.Hi == 0 {
		x.Sign = x.Sign.Xor(y.Sign)
		q, r := x.QuoRemLow64(y.Lo)
		return q, U128{Lo: r}
	}
	makeSignInverse := !x.Sign.Equal(y.Sign)
	x.Sign = PositiveSign
	y.Sign = PositiveSign

	q, r := x.Hi.QuoRem(y.Hi)
	delta := MaxLow64 - y.Lo
	deltaQ := mul64(delta, q)
	w1 := U128{Lo: 0, Hi: r}.Sub(U128{Lo: 0, Hi: q})
	w1 = w1.Add(deltaQ)
	var c1 Low64
	if y.Hi < MaxLow64 {
		c1 = y.Hi + 1
	} else {
		c1 = MaxLow64
	}
	w2 := MaxLow64 - delta/c1
	quotient, _ := w1.QuoRemLow64(w2)
	quotient, _ = quotient.QuoRemLow64(c1)
	result := U128{Lo: q}.Add(quotient)
	if makeSignInverse {
		result = result.Neg()
	}
	n := y.MulLow64(result.Lo)
	if makeSignInverse {
		n = n.Neg()
	}
	errTerm := x.Sub(n)
	more := errTerm.Sub(y)
	doInc := more.IsPositive()
	doDec := errTerm.IsNegative()
	for doInc || doDec {
		switch {
		case doInc:
			result = result.Add(OneU128)
		case doDec:
			result = result.Add(UnitNegU128)
		}
		if doDec {
			errTerm = errTerm.Add(y)
		}
		if doInc {
			errTerm = errTerm.Sub(y)
		}
		more = errTerm.Sub(y)
		doInc = more.IsPositive()
		doDec = errTerm.IsNegative()
	}
	return result, errTerm
}

// BitLen returns the number of bits needed to represent the magnitude.
func (x U128) BitLen() int {
	if x.Hi != 0 {
		return 128 - x.Hi.CountLeadingZeros()
	}
	return 64 - x.Lo.CountLeadingZeros()
}

func (x U128) CountLeadingZeros() int {
	if x.Hi == 0 {
		return 64 + x.Lo.CountLeadingZeros()
	}
	return x.Hi.CountLeadingZeros()
}

// String renders the decimal representation, "inf" for overflow and "" for
// NaN, matching u128.h's value().
func (x U128) String() string {
	if x.IsOverflow() {
		return "inf"
	}
	if x.IsNaN() {
		return ""
	}
	if x.IsZero() {
		return "0"
	}
	var b strings.Builder
	neg := x.IsNegative()
	for !x.IsZero() {
		d := x.Mod10()
		if d < 0 {
			break
		}
		b.WriteByte(byte('0' + d))
		x = x.Div10()
	}
	digits := []byte(b.String())
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
