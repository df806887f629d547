package calculus

import (
	"strings"
	"sync"
)

// MaxWidth is the largest allowed number of digits after the decimal
// separator, matching the original's hard clamp to single-digit widths.
const MaxWidth = 9

const maxDecimalStrLen = 80

var (
	widthMu     sync.RWMutex
	widthValue  = 3
	denominator = intPow10(3)
)

func intPow10(w int) U128 {
	result := OneU128
	ten := U128FromUint64(10)
	for i := 0; i < w; i++ {
		result = result.Mul(ten)
	}
	return result
}

// SetWidth sets the process-wide number of digits after the decimal
// separator and reports whether it actually changed; a width outside
// [0, MaxWidth] is rejected with ErrWidthOutOfRange. Every live Decimal's
// canonical string is only as current as the width at the time it was last
// formed — see the Pipeline's SyncWidth
// barrier for coordinating a width change across in-flight values.
func SetWidth(width int) (bool, error) {
	if width < 0 || width > MaxWidth {
		return false, ErrWidthOutOfRange
	}
	widthMu.Lock()
	defer widthMu.Unlock()
	changed := widthValue != width
	widthValue = width
	denominator = intPow10(width)
	return changed, nil
}

// Width returns the current process-wide decimal width.
func Width() int {
	widthMu.RLock()
	defer widthMu.RUnlock()
	return widthValue
}

// Denominator returns 10^Width as a U128.
func Denominator() U128 {
	widthMu.RLock()
	defer widthMu.RUnlock()
	return denominator
}

// Decimal is a fixed-point signed number: Integer + Nominator/D, where D is
// the process-wide denominator 10^Width. Its sign lives either in Integer
// ("strong negative", for values whose magnitude is at least 1) or in
// Nominator ("weak negative", for values strictly between -1 and 0) — never
// both at once. Grounded on
// _examples/original_source/calculus/decimal.h's Decimal class.
type Decimal struct {
	Integer            U128
	Nominator          U128
	ChangedDenominator U128
	str                string
}

// NewDecimalFromParts builds a Decimal from an integer and numerator part
// against the current process-wide denominator, then canonicalizes it via
// the same string round-trip the original performs.
func NewDecimalFromParts(integer, nominator U128) Decimal {
	return NewDecimalFromPartsWithDenominator(integer, nominator, UnitNegU128)
}

// NewDecimalFromPartsWithDenominator builds a Decimal against an explicit
// denominator (used by division results, whose natural denominator is the
// divisor rather than 10^Width).
func NewDecimalFromPartsWithDenominator(integer, nominator, changedDenominator U128) Decimal {
	d := Decimal{Integer: integer, Nominator: nominator, ChangedDenominator: changedDenominator}
	d.transformToString()
	d.transformToDecimal()
	return d
}

// ZeroDecimal returns the canonical zero.
func ZeroDecimal() Decimal {
	return NewDecimalFromPartsWithDenominator(ZeroU128, ZeroU128, Denominator())
}

// NaNDecimal returns the canonical not-a-number value.
func NaNDecimal() Decimal {
	return NewDecimalFromPartsWithDenominator(ZeroU128, ZeroU128, ZeroU128)
}

// InfDecimal returns the canonical overflow (infinity) value.
func InfDecimal() Decimal {
	return NewDecimalFromParts(UnitNegU128, UnitNegU128)
}

func undigit(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return 0
}

// transformToString normalizes the numerator against ChangedDenominator
// (folding any part of it that has accumulated past a whole unit back into
// Integer) and renders the canonical textual form into d.str. Grounded on
// decimal.h's TransformToString, including its side effect of rewriting
// mNominator/mChangedDenominator in place.
func (d *Decimal) transformToString() {
	if d.IsOverflowed() {
		d.str = "inf"
		return
	}
	if d.IsNotANumber() {
		d.str = ""
		return
	}
	if d.ChangedDenominator.Equal(UnitNegU128) {
		d.ChangedDenominator = Denominator()
	}
	r := d.Integer
	neg := d.IsNegative()
	if d.Nominator.Abs().GreaterThanOrEqual(d.ChangedDenominator) {
		tmp, _ := d.Nominator.QuoRem(d.ChangedDenominator)
		if neg {
			r = r.Sub(tmp)
		} else {
			r = r.Add(tmp)
		}
		if r.IsOverflow() {
			d.str = "inf"
			return
		}
		if d.Nominator.IsNonNegative() {
			d.Nominator = d.Nominator.Sub(d.ChangedDenominator.Mul(tmp))
		} else {
			d.Nominator = d.Nominator.Add(d.ChangedDenominator.Mul(tmp))
		}
	}
	fraction := d.Nominator.Abs()
	oldDenominator := intPow10(Width())
	if !oldDenominator.Equal(d.ChangedDenominator) {
		fraction = fraction.Mul(oldDenominator)
		fraction, _ = fraction.QuoRem(d.ChangedDenominator)
	}
	d.ChangedDenominator = Denominator()

	w := Width()
	separatorLen := 0
	if w >= 1 {
		separatorLen = 1
	}
	signLen := 0
	if neg {
		signLen = 1
	}
	required := NumOfDigits(r) + separatorLen + w + signLen

	r = r.Abs()
	if r.IsOverflow() {
		d.Integer = UnitNegU128
		d.Nominator = UnitNegU128
		d.str = "inf"
		return
	}

	buf := make([]byte, required)
	if neg {
		buf[0] = '-'
	}
	if r.IsZero() {
		buf[required-w-1-separatorLen] = '0'
	}
	for i := 0; !r.IsZero(); i++ {
		buf[required-w-1-separatorLen-i] = byte('0' + r.Mod10())
		r = r.Div10()
	}
	if separatorLen > 0 {
		buf[required-1-w] = ','
	}
	for i := 0; i < w; i++ {
		buf[required-1-i] = byte('0' + fraction.Mod10())
		fraction = fraction.Div10()
	}
	d.str = string(buf)
}

// transformToDecimal parses d.str back into canonical Integer/Nominator
// components against the current process-wide denominator, the inverse of
// transformToString. Grounded on decimal.h's TransformToDecimal.
func (d *Decimal) transformToDecimal() {
	if len(d.str) < 1 {
		d.Integer, d.Nominator, d.ChangedDenominator = ZeroU128, ZeroU128, ZeroU128
		return
	}
	if strings.HasPrefix(d.str, "inf") {
		d.Integer, d.Nominator = UnitNegU128, UnitNegU128
		return
	}
	d.Nominator = ZeroU128
	d.ChangedDenominator = Denominator()

	neg := d.str[0] == '-'
	idx := 0
	if neg {
		idx = 1
	}
	d.Integer = U128FromUint64(uint64(undigit(d.str[idx])))
	idx++

	overflow := false
	for idx < len(d.str) {
		c := d.str[idx]
		if c == '.' || c == ',' {
			break
		}
		tmp := d.Integer.Mul(U128FromUint64(10))
		if tmp.IsOverflow() {
			overflow = true
			break
		}
		d.Integer = tmp
		tmp2 := d.Integer.Add(U128FromUint64(uint64(undigit(c))))
		if tmp2.IsOverflow() {
			overflow = true
			break
		}
		d.Integer = tmp2
		idx++
	}
	if overflow {
		d.Integer, d.Nominator = UnitNegU128, UnitNegU128
		d.str = "inf"
		return
	}
	if neg {
		d.Integer = d.Integer.Neg()
	}
	if idx >= len(d.str) {
		return
	}
	idx++ // skip separator
	if idx >= len(d.str) {
		return
	}

	d.Nominator = d.Nominator.Add(U128FromUint64(uint64(undigit(d.str[idx]))))
	idx++
	width := Width()
	idxWidth := 1
	for idx < len(d.str) {
		if idxWidth >= width {
			break
		}
		d.Nominator = d.Nominator.Mul(U128FromUint64(10))
		d.Nominator = d.Nominator.Add(U128FromUint64(uint64(undigit(d.str[idx]))))
		idx++
		idxWidth++
	}
	for idxWidth < width {
		d.Nominator = d.Nominator.Mul(U128FromUint64(10))
		idxWidth++
	}
	if d.Integer.IsZero() && neg {
		d.Nominator = d.Nominator.Neg()
	}
}

func isDecimalDigit(c byte) bool { return c >= '0' && c <= '9' }

func validDecimalFormat(s string) bool {
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i >= len(s) || !isDecimalDigit(s[i]) {
		return false
	}
	sawSeparator := false
	sawDigitAfterSeparator := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case isDecimalDigit(c):
			if sawSeparator {
				sawDigitAfterSeparator = true
			}
		case c == '.' || c == ',':
			if sawSeparator {
				return false
			}
			sawSeparator = true
		default:
			return false
		}
	}
	return !sawSeparator || sawDigitAfterSeparator
}

// ParseDecimal parses a string of the form [-]digits[.|,]digits into a
// Decimal, rejecting empty input, input beyond the internal string cache's
// bound, and malformed input.
func ParseDecimal(s string) (Decimal, error) {
	if len(s) == 0 {
		return Decimal{}, ErrEmptyString
	}
	if len(s) > maxDecimalStrLen {
		return Decimal{}, ErrMaxStrLen
	}
	if !validDecimalFormat(s) {
		return Decimal{}, ErrInvalidFormat
	}
	d := Decimal{str: s}
	d.transformToDecimal()
	d.transformToString()
	return d, nil
}

// IsInteger reports whether the fractional part is exactly zero.
func (d Decimal) IsInteger() bool {
	return d.Nominator.IsZero() && d.ChangedDenominator.IsPositive()
}

// IsOverflowed reports whether d represents +/-infinity.
func (d Decimal) IsOverflowed() bool {
	return (d.Integer.IsNegative() && d.Nominator.IsNegative()) || d.Integer.IsOverflow() || d.Nominator.IsOverflow()
}

// IsNotANumber reports whether d represents NaN.
func (d Decimal) IsNotANumber() bool {
	return (d.Integer.IsZero() && d.Nominator.IsZero() && d.ChangedDenominator.IsZero()) || d.Integer.IsNaN() || d.Nominator.IsNaN()
}

// IsStrongNegative reports whether d is negative with magnitude >= 1 (sign
// carried by Integer).
func (d Decimal) IsStrongNegative() bool {
	return d.Integer.IsNegative() && d.Nominator.IsNonNegative() && d.ChangedDenominator.IsPositive()
}

// IsWeakNegative reports whether d is negative with magnitude < 1 (sign
// carried by Nominator).
func (d Decimal) IsWeakNegative() bool {
	return d.Integer.IsZero() && d.Nominator.IsNegative() && d.ChangedDenominator.IsPositive()
}

// IsNegative reports whether d is negative in either sense.
func (d Decimal) IsNegative() bool {
	return d.IsStrongNegative() || d.IsWeakNegative()
}

// IsZero reports whether d is exactly zero (and not NaN).
func (d Decimal) IsZero() bool {
	return d.Integer.IsZero() && d.Nominator.IsZero() && d.ChangedDenominator.IsPositive()
}

// String returns the canonical textual representation ("inf" for overflow,
// "" for NaN).
func (d Decimal) String() string { return d.str }

// Equal compares two Decimals by their canonical string, matching the
// original's operator== (string equality, not component equality).
func (d Decimal) Equal(other Decimal) bool { return d.str == other.str }

// Add returns d+other.
func (d Decimal) Add(other Decimal) Decimal {
	neg1, neg2 := d.IsNegative(), other.IsNegative()
	tmpInteger := d.Integer.Add(other.Integer)
	tmpNominator := d.Nominator.Add(other.Nominator)
	if tmpInteger.IsOverflow() || tmpNominator.IsOverflow() {
		return InfDecimal()
	}
	sum := tmpInteger
	f := d.Nominator.Abs().Add(other.Nominator.Abs())
	differSigns := neg1 != neg2
	if neg1 && !neg2 {
		f = other.Nominator.Abs().Sub(d.Nominator.Abs())
	}
	if !neg1 && neg2 {
		f = d.Nominator.Abs().Sub(other.Nominator.Abs())
	}
	if differSigns {
		switch {
		case f.IsNegative() && sum.IsNegative():
			f = f.Neg()
		case f.IsNegative() && sum.IsPositive():
			f = f.Add(Denominator())
			sum = sum.Sub(OneU128)
		case f.IsPositive() && sum.IsNegative():
			f = f.Sub(Denominator())
			sum = sum.Add(OneU128)
			if !sum.IsZero() {
				f = f.Abs()
			}
		}
	}
	if neg1 && neg2 && sum.IsZero() {
		f = f.Neg()
	}
	return NewDecimalFromParts(sum, f)
}

// Sub returns d-other.
func (d Decimal) Sub(other Decimal) Decimal {
	var nominator U128
	if other.Integer.IsZero() {
		nominator = other.Nominator.Neg()
	} else {
		nominator = other.Nominator
	}
	negated := NewDecimalFromParts(other.Integer.Neg(), nominator)
	return negated.Add(d)
}

// Mul returns d*other, dispatching on which operand is an integer and on
// the eight strong/weak sign combinations, mirroring decimal.h's
// operator*.
func (d Decimal) Mul(other Decimal) Decimal {
	if other.IsOverflowed() || d.IsOverflowed() {
		return InfDecimal()
	}
	if other.IsNotANumber() || d.IsNotANumber() {
		return NaNDecimal()
	}
	D := Denominator()
	integerPart := d.Integer.Mul(other.Integer)
	if integerPart.IsOverflow() {
		return InfDecimal()
	}
	if d.Nominator.IsZero() && other.Nominator.IsZero() {
		return NewDecimalFromParts(integerPart, ZeroU128)
	}

	neg1, neg2 := d.IsNegative(), other.IsNegative()
	var fractionPart U128

	applyCross := func(A U128) (Decimal, bool) {
		if A.IsOverflow() {
			return InfDecimal(), true
		}
		tmp, _ := A.QuoRem(D)
		integerPart = integerPart.Add(tmp)
		fractionPart = A.Sub(tmp.Mul(D))
		return Decimal{}, false
	}

	if d.Nominator.IsZero() && !other.Nominator.IsZero() {
		A := d.Integer.Abs().Mul(other.Nominator.Abs())
		if A.IsOverflow() {
			return InfDecimal()
		}
		tmp, _ := A.QuoRem(D)
		if neg1 != neg2 {
			integerPart = integerPart.Add(tmp.Neg())
		} else {
			integerPart = integerPart.Add(tmp)
		}
		fractionPart = A.Sub(tmp.Mul(D))
		if neg1 != neg2 && integerPart.IsZero() {
			fractionPart = fractionPart.Neg()
		}
		return NewDecimalFromParts(integerPart, fractionPart)
	}
	if !d.Nominator.IsZero() && other.Nominator.IsZero() {
		A := d.Nominator.Abs().Mul(other.Integer.Abs())
		if A.IsOverflow() {
			return InfDecimal()
		}
		tmp, _ := A.QuoRem(D)
		if neg1 != neg2 {
			integerPart = integerPart.Add(tmp.Neg())
		} else {
			integerPart = integerPart.Add(tmp)
		}
		fractionPart = A.Sub(tmp.Mul(D))
		if neg1 != neg2 && integerPart.IsZero() {
			fractionPart = fractionPart.Neg()
		}
		return NewDecimalFromParts(integerPart, fractionPart)
	}

	if !neg1 && !neg2 {
		cross, _ := d.Nominator.Mul(other.Nominator).QuoRem(D)
		A := d.Integer.Mul(other.Nominator).Add(d.Nominator.Mul(other.Integer)).Add(cross)
		if res, overflowed := applyCross(A); overflowed {
			return res
		}
	}
	if neg1 && neg2 {
		neg1Strong, neg2Strong := d.IsStrongNegative(), other.IsStrongNegative()
		neg1Weak, neg2Weak := d.IsWeakNegative(), other.IsWeakNegative()
		switch {
		case neg1Strong && neg2Strong:
			cross, _ := d.Nominator.Mul(other.Nominator).QuoRem(D)
			A := d.Integer.Abs().Mul(other.Nominator).Add(other.Integer.Abs().Mul(d.Nominator)).Add(cross)
			if res, overflowed := applyCross(A); overflowed {
				return res
			}
		case neg1Weak && neg2Strong:
			cross, _ := d.Nominator.Abs().Mul(other.Nominator).QuoRem(D)
			A := other.Integer.Abs().Mul(d.Nominator.Abs()).Add(cross)
			if res, overflowed := applyCross(A); overflowed {
				return res
			}
		case neg1Strong && neg2Weak:
			cross, _ := d.Nominator.Mul(other.Nominator.Abs()).QuoRem(D)
			A := d.Integer.Abs().Mul(other.Nominator.Abs()).Add(cross)
			if res, overflowed := applyCross(A); overflowed {
				return res
			}
		case neg1Weak && neg2Weak:
			A, _ := d.Nominator.Abs().Mul(other.Nominator.Abs()).QuoRem(D)
			if res, overflowed := applyCross(A); overflowed {
				return res
			}
		}
	}
	if neg1 && !neg2 {
		neg1Strong, neg1Weak := d.IsStrongNegative(), d.IsWeakNegative()
		if neg1Strong {
			cross, _ := d.Nominator.Mul(other.Nominator).QuoRem(D)
			A := d.Integer.Abs().Mul(other.Nominator).Add(other.Integer.Mul(d.Nominator)).Add(cross)
			if A.IsOverflow() {
				return InfDecimal()
			}
			tmp, _ := A.QuoRem(D)
			integerPart = integerPart.Abs().Add(tmp)
			fractionPart = A.Sub(tmp.Mul(D))
			integerPart = integerPart.Neg()
			if integerPart.IsZero() {
				fractionPart = fractionPart.Neg()
			}
		}
		if neg1Weak {
			cross, _ := d.Nominator.Abs().Mul(other.Nominator).QuoRem(D)
			A := other.Integer.Mul(d.Nominator.Abs()).Add(cross)
			if A.IsOverflow() {
				return InfDecimal()
			}
			tmp, _ := A.QuoRem(D)
			integerPart = tmp
			fractionPart = A.Sub(tmp.Mul(D))
			integerPart = integerPart.Neg()
			if integerPart.IsZero() {
				fractionPart = fractionPart.Neg()
			}
		}
	}
	if !neg1 && neg2 {
		neg2Strong, neg2Weak := other.IsStrongNegative(), other.IsWeakNegative()
		if neg2Strong {
			cross, _ := d.Nominator.Mul(other.Nominator).QuoRem(D)
			A := d.Integer.Mul(other.Nominator).Add(other.Integer.Abs().Mul(d.Nominator)).Add(cross)
			if A.IsOverflow() {
				return InfDecimal()
			}
			tmp, _ := A.QuoRem(D)
			integerPart = integerPart.Abs().Add(tmp)
			fractionPart = A.Sub(tmp.Mul(D))
			integerPart = integerPart.Neg()
			if integerPart.IsZero() {
				fractionPart = fractionPart.Neg()
			}
		}
		if neg2Weak {
			cross, _ := d.Nominator.Mul(other.Nominator.Abs()).QuoRem(D)
			A := d.Integer.Mul(other.Nominator.Abs()).Add(cross)
			if A.IsOverflow() {
				return InfDecimal()
			}
			tmp, _ := A.QuoRem(D)
			integerPart = tmp
			fractionPart = A.Sub(tmp.Mul(D))
			integerPart = integerPart.Neg()
			if integerPart.IsZero() {
				fractionPart = fractionPart.Neg()
			}
		}
	}
	return NewDecimalFromParts(integerPart, fractionPart)
}

// Quo returns d/other to the current process-wide width, dispatching on
// the same sign taxonomy as Mul. Grounded on decimal.h's operator/.
func (d Decimal) Quo(other Decimal) Decimal {
	if other.IsZero() && !d.IsZero() {
		return InfDecimal()
	}
	if other.IsZero() && d.IsZero() {
		return NaNDecimal()
	}
	if other.IsOverflowed() || d.IsOverflowed() {
		return InfDecimal()
	}
	if other.IsNotANumber() || d.IsNotANumber() {
		return NaNDecimal()
	}
	D := Denominator()
	neg1, neg2 := d.IsNegative(), other.IsNegative()

	negateIfCrossSign := func(integerPart, fractionPart U128) (U128, U128) {
		if neg1 != neg2 {
			if !integerPart.IsZero() {
				integerPart = integerPart.Neg()
			}
			if integerPart.IsZero() {
				fractionPart = fractionPart.Neg()
			}
		}
		return integerPart, fractionPart
	}

	if d.Nominator.IsZero() && other.Nominator.IsZero() {
		A, B := d.Integer.Abs(), other.Integer.Abs()
		integerPart, _ := A.QuoRem(B)
		fractionPart := A.Sub(integerPart.Mul(B))
		integerPart, fractionPart = negateIfCrossSign(integerPart, fractionPart)
		return NewDecimalFromPartsWithDenominator(integerPart, fractionPart, B)
	}
	if other.Nominator.IsZero() && !other.Integer.IsZero() {
		A, B := d.Integer.Abs(), other.Integer.Abs()
		divPart, modPart := A.QuoRem(B)
		modQ, _ := modPart.QuoRem(B)
		integerPart := divPart.Add(modQ)
		fractionPart, _ := d.Nominator.Abs().Add(modPart.Mul(D)).QuoRem(B)
		integerPart, fractionPart = negateIfCrossSign(integerPart, fractionPart)
		return NewDecimalFromParts(integerPart, fractionPart)
	}

	quoAB := func(A, B U128) Decimal {
		integerPart, _ := A.QuoRem(B)
		fractionPart := A.Sub(integerPart.Mul(B))
		return NewDecimalFromPartsWithDenominator(integerPart, fractionPart, B)
	}
	quoABNeg := func(A, B U128) Decimal {
		integerPart, _ := A.QuoRem(B)
		fractionPart := A.Sub(integerPart.Mul(B))
		integerPart = integerPart.Neg()
		if integerPart.IsZero() {
			fractionPart = fractionPart.Neg()
		}
		return NewDecimalFromPartsWithDenominator(integerPart, fractionPart, B)
	}

	if !neg1 && !neg2 {
		A := d.Integer.Mul(D).Add(d.Nominator)
		B := other.Integer.Mul(D).Add(other.Nominator)
		return quoAB(A, B)
	}
	if neg1 && neg2 {
		neg1Strong, neg2Strong := d.IsStrongNegative(), other.IsStrongNegative()
		neg1Weak, neg2Weak := d.IsWeakNegative(), other.IsWeakNegative()
		switch {
		case neg1Strong && neg2Strong:
			A := d.Integer.Abs().Mul(D).Add(d.Nominator)
			B := other.Integer.Abs().Mul(D).Add(other.Nominator)
			return quoAB(A, B)
		case neg1Weak && neg2Weak:
			integerPart, _ := d.Nominator.QuoRem(other.Nominator)
			A, B := d.Nominator.Abs(), other.Nominator.Abs()
			divPart, _ := A.QuoRem(B)
			fractionPart := A.Sub(divPart.Mul(B))
			return NewDecimalFromPartsWithDenominator(integerPart, fractionPart, B)
		case neg1Strong && neg2Weak:
			A := d.Integer.Abs().Mul(D).Add(d.Nominator)
			B := other.Nominator.Abs()
			return quoAB(A, B)
		case neg1Weak && neg2Strong:
			A := d.Nominator.Abs()
			B := other.Integer.Abs().Mul(D).Add(other.Nominator)
			return quoAB(A, B)
		}
	}
	if neg1 && !neg2 {
		if d.IsStrongNegative() {
			A := d.Integer.Abs().Mul(D).Add(d.Nominator)
			B := other.Integer.Mul(D).Add(other.Nominator)
			return quoABNeg(A, B)
		}
		A := d.Nominator.Abs()
		B := other.Integer.Mul(D).Add(other.Nominator)
		return quoABNeg(A, B)
	}
	if !neg1 && neg2 {
		if other.IsStrongNegative() {
			A := d.Integer.Mul(D).Add(d.Nominator)
			B := other.Integer.Abs().Mul(D).Add(other.Nominator)
			return quoABNeg(A, B)
		}
		A := d.Integer.Mul(D).Add(d.Nominator)
		B := other.Nominator.Abs()
		return quoABNeg(A, B)
	}
	return NaNDecimal()
}

// Sqrt returns the square root of d to the current process-wide width via
// NumberTheory's Isqrt over a D^2-scaled integer representation; it is a
// supplement the original's Decimal type does not itself offer (U128-level
// Isqrt is the original's only square root primitive).
func (d Decimal) Sqrt() (Decimal, error) {
	r, _, err := d.SqrtExact()
	return r, err
}

// SqrtExact is Sqrt plus the exactness flag Isqrt already tracks internally,
// mirroring the bool out-parameter the original's callers thread through
// calculator-level square root requests.
func (d Decimal) SqrtExact() (Decimal, bool, error) {
	if d.IsNegative() {
		return Decimal{}, false, ErrSqrtNegative
	}
	if d.IsNotANumber() {
		return NaNDecimal(), false, nil
	}
	if d.IsOverflowed() {
		return InfDecimal(), false, nil
	}
	D := Denominator()
	scaled := d.Integer.Mul(D).Add(d.Nominator)
	if scaled.IsOverflow() {
		return InfDecimal(), false, nil
	}
	product := scaled.Mul(D)
	if product.IsOverflow() {
		return InfDecimal(), false, nil
	}
	root, exact := Isqrt(product)
	integerPart, _ := root.QuoRem(D)
	fractionPart := root.Sub(integerPart.Mul(D))
	return NewDecimalFromParts(integerPart, fractionPart), exact, nil
}
