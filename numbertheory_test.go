package calculus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPRNG() *PRNG {
	rng := NewPRNG()
	rng.Seed(lfsrState{7, 13, 19, 4})
	return rng
}

func TestGcd(t *testing.T) {
	testcases := []struct {
		x, y U128
		want U128
	}{
		{x: U128FromUint64(0), y: U128FromUint64(0), want: U128FromUint64(0)},
		{x: U128FromUint64(12), y: U128FromUint64(18), want: U128FromUint64(6)},
		{x: U128FromUint64(17), y: U128FromUint64(5), want: U128FromUint64(1)},
		{x: U128FromUint64(0), y: U128FromUint64(9), want: U128FromUint64(9)},
		{x: U128FromUint64(100), y: U128FromUint64(100), want: U128FromUint64(100)},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("gcd(%s,%s)", tc.x, tc.y), func(t *testing.T) {
			require.True(t, Gcd(tc.x, tc.y).Equal(tc.want))
		})
	}
}

func TestModPow(t *testing.T) {
	nt := NewNumberTheory(testPRNG())
	m := U128FromUint64(1000000007)
	got := nt.ModPow(U128FromUint64(2), U128FromUint64(10), m)
	require.True(t, got.Equal(U128FromUint64(1024)))
}

func TestIsqrt(t *testing.T) {
	testcases := []struct {
		x         uint64
		wantRoot  uint64
		wantExact bool
	}{
		{x: 0, wantRoot: 0, wantExact: true},
		{x: 1, wantRoot: 1, wantExact: true},
		{x: 16, wantRoot: 4, wantExact: true},
		{x: 17, wantRoot: 4, wantExact: false},
		{x: 999999937 * 999999937, wantRoot: 999999937, wantExact: true},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("isqrt(%d)", tc.x), func(t *testing.T) {
			root, exact := Isqrt(U128FromUint64(tc.x))
			require.Equal(t, tc.wantExact, exact)
			require.True(t, root.Equal(U128FromUint64(tc.wantRoot)))
		})
	}
}

func TestIsPrime(t *testing.T) {
	nt := NewNumberTheory(testPRNG())
	primes := []uint64{2, 3, 5, 7, 11, 97, 7919, 999999937}
	for _, p := range primes {
		require.True(t, nt.IsPrime(U128FromUint64(p), 32), "%d should be prime", p)
	}
	composites := []uint64{1, 4, 6, 9, 15, 100, 7920}
	for _, c := range composites {
		require.False(t, nt.IsPrime(U128FromUint64(c), 32), "%d should be composite", c)
	}
}

func TestIsQuadraticResidue(t *testing.T) {
	// Over p=7, the quadratic residues are {1, 2, 4}.
	p := U128FromUint64(7)
	residues := map[uint64]bool{1: true, 2: true, 3: false, 4: true, 5: false, 6: false}
	for x, want := range residues {
		require.Equal(t, want, IsQuadraticResidue(U128FromUint64(x), p), "x=%d", x)
	}
}
