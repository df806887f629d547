package calculus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLow64AddSub(t *testing.T) {
	sum, carry := Low64(1).Add(MaxLow64)
	require.Equal(t, Low64(0), sum)
	require.Equal(t, Low64(1), carry)

	diff, borrow := Low64(0).Sub(Low64(1))
	require.Equal(t, MaxLow64, diff)
	require.Equal(t, Low64(1), borrow)
}

func TestLow64Mul(t *testing.T) {
	hi, lo := MaxLow64.Mul(MaxLow64)
	// (2^64-1)^2 = 2^128 - 2^65 + 1
	require.Equal(t, Low64(0xFFFFFFFFFFFFFFFE), hi)
	require.Equal(t, Low64(1), lo)
}

func TestLow64QuoRem(t *testing.T) {
	q, r := Low64(17).QuoRem(Low64(5))
	require.Equal(t, Low64(3), q)
	require.Equal(t, Low64(2), r)
}

func TestLow64QuoRemPanicsOnZero(t *testing.T) {
	require.Panics(t, func() {
		Low64(1).QuoRem(Low64(0))
	})
}

func TestLow64ShiftsAndBits(t *testing.T) {
	require.Equal(t, Low64(4), Low64(1).Lsh(2))
	require.Equal(t, Low64(0), Low64(1).Lsh(64))
	require.Equal(t, Low64(1), Low64(4).Rsh(2))
	require.Equal(t, Low64(0), Low64(4).Rsh(64))
	require.Equal(t, 0, Low64(0xFFFFFFFFFFFFFFFF).CountLeadingZeros())
	require.Equal(t, 64, Low64(0).CountLeadingZeros())
}

func TestLow64Mod10(t *testing.T) {
	require.Equal(t, 7, Low64(1234567).Mod10())
	require.Equal(t, 0, Low64(0).Mod10())
}
