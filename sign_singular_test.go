package calculus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignXorAndNeg(t *testing.T) {
	require.True(t, PositiveSign.Xor(NegativeSign).IsNegative())
	require.False(t, NegativeSign.Xor(NegativeSign).IsNegative())
	require.True(t, PositiveSign.Neg().IsNegative())
	require.False(t, NegativeSign.Neg().IsNegative())
}

func TestSignEqual(t *testing.T) {
	require.True(t, PositiveSign.Equal(PositiveSign))
	require.False(t, PositiveSign.Equal(NegativeSign))
}

func TestSingularCombine(t *testing.T) {
	require.True(t, NotSingular.Combine(NotSingular).Equal(NotSingular))
	require.True(t, Overflow().Combine(NotSingular).IsOverflow())
	require.True(t, NotSingular.Combine(Overflow()).IsOverflow())
	// NaN dominates overflow in either order.
	require.True(t, Overflow().Combine(NaN()).IsNaN())
	require.True(t, NaN().Combine(Overflow()).IsNaN())
}

func TestSingularMutualExclusion(t *testing.T) {
	s := Overflow()
	require.True(t, s.IsOverflow())
	require.False(t, s.IsNaN())

	s = s.SetNaN()
	require.True(t, s.IsNaN())
	require.False(t, s.IsOverflow())
}

func TestSingularNeverEqualWhenAny(t *testing.T) {
	require.False(t, Overflow().Equal(Overflow()))
	require.False(t, NaN().Equal(NaN()))
	require.False(t, Overflow().Equal(NotSingular))
}
