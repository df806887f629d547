package calculus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecimalRoundTrip(t *testing.T) {
	testcases := []string{"0,000", "1,000", "123,456", "-123,456", "0,001", "-0,001"}
	for _, s := range testcases {
		d, err := ParseDecimal(s)
		require.NoError(t, err, s)
		require.Equal(t, s, d.String(), "round-trip of %q", s)
	}
}

func TestParseDecimalAcceptsDotSeparatorButRendersComma(t *testing.T) {
	d, err := ParseDecimal("12.500")
	require.NoError(t, err)
	require.Equal(t, "12,500", d.String())
}

func TestParseDecimalRejectsEmpty(t *testing.T) {
	_, err := ParseDecimal("")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestParseDecimalRejectsMalformed(t *testing.T) {
	testcases := []string{"abc", "1.2.3", "-", "1-2", "."}
	for _, s := range testcases {
		_, err := ParseDecimal(s)
		require.ErrorIs(t, err, ErrInvalidFormat, s)
	}
}

func TestParseDecimalRejectsTooLong(t *testing.T) {
	s := make([]byte, maxDecimalStrLen+1)
	for i := range s {
		s[i] = '1'
	}
	_, err := ParseDecimal(string(s))
	require.ErrorIs(t, err, ErrMaxStrLen)
}

func TestSetWidthRejectsOutOfRange(t *testing.T) {
	_, err := SetWidth(-1)
	require.ErrorIs(t, err, ErrWidthOutOfRange)
	_, err = SetWidth(MaxWidth + 1)
	require.ErrorIs(t, err, ErrWidthOutOfRange)
}

func TestSetWidthChangesDenominator(t *testing.T) {
	defer func() { _, _ = SetWidth(3) }()

	changed, err := SetWidth(2)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, 2, Width())
	require.True(t, Denominator().Equal(U128FromUint64(100)))

	changed, err = SetWidth(2)
	require.NoError(t, err)
	require.False(t, changed, "setting the same width again should report no change")
}

func TestDecimalAddSameSign(t *testing.T) {
	a := mustParseT(t, "1,500")
	b := mustParseT(t, "2,250")
	require.Equal(t, "3,750", a.Add(b).String())

	na := mustParseT(t, "-1,500")
	nb := mustParseT(t, "-2,250")
	require.Equal(t, "-3,750", na.Add(nb).String())
}

func TestDecimalAddCrossSign(t *testing.T) {
	a := mustParseT(t, "5,000")
	b := mustParseT(t, "-2,500")
	require.Equal(t, "2,500", a.Add(b).String())
	require.Equal(t, "2,500", b.Add(a).String())

	c := mustParseT(t, "0,250")
	dd := mustParseT(t, "-0,750")
	require.Equal(t, "-0,500", c.Add(dd).String())
}

func TestDecimalSubtraction(t *testing.T) {
	a := mustParseT(t, "10,000")
	b := mustParseT(t, "3,250")
	require.Equal(t, "6,750", a.Sub(b).String())
	require.Equal(t, "-6,750", b.Sub(a).String())
}

func TestDecimalMulIntegers(t *testing.T) {
	a := mustParseT(t, "6")
	b := mustParseT(t, "7")
	require.Equal(t, "42,000", a.Mul(b).String())

	na := mustParseT(t, "-6")
	require.Equal(t, "-42,000", na.Mul(b).String())
	require.Equal(t, "36,000", na.Mul(na).String())
}

func TestDecimalMulFractional(t *testing.T) {
	a := mustParseT(t, "1,500")
	b := mustParseT(t, "2,000")
	require.Equal(t, "3,000", a.Mul(b).String())

	c := mustParseT(t, "0,500")
	dd := mustParseT(t, "0,500")
	require.Equal(t, "0,250", c.Mul(dd).String())
}

func TestDecimalMulWeakNegative(t *testing.T) {
	a := mustParseT(t, "-0,500")
	b := mustParseT(t, "0,500")
	require.Equal(t, "-0,250", a.Mul(b).String())
	require.Equal(t, "0,250", a.Mul(a).String())
}

func TestDecimalMulOverflow(t *testing.T) {
	big := NewDecimalFromParts(MaxU128, ZeroU128)
	r := big.Mul(big)
	require.True(t, r.IsOverflowed())
}

func TestDecimalQuoBasic(t *testing.T) {
	a := mustParseT(t, "10")
	b := mustParseT(t, "4")
	require.Equal(t, "2,500", a.Quo(b).String())
}

func TestDecimalQuoSigns(t *testing.T) {
	a := mustParseT(t, "-10")
	b := mustParseT(t, "4")
	require.Equal(t, "-2,500", a.Quo(b).String())
	require.Equal(t, "-2,500", mustParseT(t, "10").Quo(mustParseT(t, "-4")).String())
	require.Equal(t, "2,500", a.Quo(mustParseT(t, "-4")).String())
}

func TestDecimalQuoByZero(t *testing.T) {
	a := mustParseT(t, "5")
	r := a.Quo(ZeroDecimal())
	require.True(t, r.IsOverflowed())

	r = ZeroDecimal().Quo(ZeroDecimal())
	require.True(t, r.IsNotANumber())
}

func TestDecimalIsIntegerAndZero(t *testing.T) {
	require.True(t, mustParseT(t, "5").IsInteger())
	require.False(t, mustParseT(t, "5,500").IsInteger())
	require.True(t, ZeroDecimal().IsZero())
	require.False(t, mustParseT(t, "0,001").IsZero())
}

func TestDecimalStrongAndWeakNegative(t *testing.T) {
	require.True(t, mustParseT(t, "-5,500").IsStrongNegative())
	require.False(t, mustParseT(t, "-5,500").IsWeakNegative())

	require.True(t, mustParseT(t, "-0,500").IsWeakNegative())
	require.False(t, mustParseT(t, "-0,500").IsStrongNegative())

	require.True(t, mustParseT(t, "-5,500").IsNegative())
	require.True(t, mustParseT(t, "-0,500").IsNegative())
	require.False(t, mustParseT(t, "5,500").IsNegative())
}

func TestDecimalNaNAndInf(t *testing.T) {
	require.True(t, NaNDecimal().IsNotANumber())
	require.True(t, InfDecimal().IsOverflowed())
	require.Equal(t, "", NaNDecimal().String())
	require.Equal(t, "inf", InfDecimal().String())
}

func TestDecimalSqrtExact(t *testing.T) {
	d := mustParseT(t, "16")
	r, exact, err := d.SqrtExact()
	require.NoError(t, err)
	require.True(t, exact)
	require.Equal(t, "4,000", r.String())
}

func TestDecimalSqrtInexact(t *testing.T) {
	d := mustParseT(t, "2")
	r, exact, err := d.SqrtExact()
	require.NoError(t, err)
	require.False(t, exact)
	require.False(t, r.IsZero())
}

func TestDecimalSqrtNegativeErrors(t *testing.T) {
	_, _, err := mustParseT(t, "-4").SqrtExact()
	require.ErrorIs(t, err, ErrSqrtNegative)
}

func TestDecimalEqualByCanonicalString(t *testing.T) {
	a := mustParseT(t, "1,000")
	b := mustParseT(t, "1,000")
	require.True(t, a.Equal(b))

	c := mustParseT(t, "1,001")
	require.False(t, a.Equal(c))
}
