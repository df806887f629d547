package calculus

import "context"

// PrimePower is one prime-power term of a factorization: Prime^Exponent.
type PrimePower struct {
	Prime    U128
	Exponent int
}

// Factorizer probabilistically factors 128-bit integers by combining trial
// division, Fermat's method, Pollard's rho, and Pollard's p-1 method,
// falling back to Miller-Rabin to recognize primes along the way. Grounded
// on _examples/original_source/calculus/u128_utils.cpp's factor/ferma_method/
// pollard_minus_p/ro_pollard.
//
// Every long-running loop polls ctx periodically (the Go equivalent of the
// original's Globals atomic stop flag) so a caller can cancel a factoring
// attempt on a large, hard input.
type Factorizer struct {
	nt  *NumberTheory
	rng *PRNG
}

// NewFactorizer builds a Factorizer drawing Miller-Rabin witnesses from rng.
func NewFactorizer(rng *PRNG) *Factorizer {
	return &Factorizer{nt: NewNumberTheory(rng), rng: rng}
}

// DivByQ repeatedly divides x by q while the remainder is zero, returning
// the reduced value and how many times q divided it.
func DivByQ(x, q U128) (U128, int) {
	count := 0
	for {
		quotient, remainder := x.QuoRem(q)
		if !remainder.IsZero() {
			return x, count
		}
		x = quotient
		count++
	}
}

// fermaMethod looks for a factorization x = p*q with p and q close together
// by scanning k upward from ceil(sqrt(x)) until k^2-x is an exact square.
// limit is an absolute bound on k (zero means unbounded); ok is false if
// the limit was hit or ctx was cancelled before a factor was found. Callers
// scanning the same range as the original's offset-from-sqrt(x) convention
// should pass limit as roughly 2*Isqrt(x), not Isqrt(x), since k here is
// already absolute rather than an offset.
func (f *Factorizer) fermaMethod(ctx context.Context, x, limit U128) (p, q U128, ok bool) {
	k, exact := Isqrt(x)
	if exact {
		return k, k, true
	}
	if !k.Mul(k).GreaterThanOrEqual(x) {
		k = k.Add(OneU128)
	}
	for i := 0; ; i++ {
		if i&65535 == 0 {
			select {
			case <-ctx.Done():
				return ZeroU128, ZeroU128, false
			default:
			}
		}
		b2 := k.Mul(k).Sub(x)
		b, exactB := Isqrt(b2)
		if exactB {
			return k.Sub(b), k.Add(b), true
		}
		k = k.Add(OneU128)
		if !limit.IsZero() && k.GreaterThanOrEqual(limit) {
			return ZeroU128, ZeroU128, false
		}
	}
}

// pollardMinusP runs Pollard's p-1 method: q accumulates q^(i!) mod x, and
// every step checks whether gcd(q-1, x) reveals a nontrivial factor.
func (f *Factorizer) pollardMinusP(ctx context.Context, x U128, iterations int) U128 {
	q := U128FromUint64(2)
	for i := 2; i <= iterations; i++ {
		if i&255 == 0 {
			select {
			case <-ctx.Done():
				return ZeroU128
			default:
			}
		}
		q = f.nt.ModPow(q, U128FromUint64(uint64(i)), x)
		if q.IsZero() {
			return ZeroU128
		}
		g := Gcd(q.Sub(OneU128), x)
		if g.GreaterThanOrEqual(U128FromUint64(2)) && g.LessThan(x) {
			return g
		}
	}
	return ZeroU128
}

func addMod(a, b, m U128) U128 {
	_, r := a.Add(b).QuoRem(m)
	return r
}

func absDiff(a, b U128) U128 {
	if a.GreaterThanOrEqual(b) {
		return a.Sub(b)
	}
	return b.Sub(a)
}

// pollardRho runs Pollard's rho method with Floyd's cycle detection: a
// tortoise advances q1 <- q1^2+3 mod x once per step, a hare advances twice,
// and gcd(|q1-hare|, x) is checked each step for a nontrivial factor.
func (f *Factorizer) pollardRho(ctx context.Context, x U128, iterations int) U128 {
	step := func(v U128) U128 {
		return addMod(f.nt.ModMul(v, v, x), U128FromUint64(3), x)
	}
	tortoise := U128FromUint64(2)
	hare := tortoise
	for i := 0; i < iterations; i++ {
		if i&255 == 0 {
			select {
			case <-ctx.Done():
				return ZeroU128
			default:
			}
		}
		tortoise = step(tortoise)
		hare = step(step(hare))
		g := Gcd(absDiff(tortoise, hare), x)
		if g.GreaterThanOrEqual(U128FromUint64(2)) && g.LessThan(x) {
			return g
		}
		if g.Equal(x) {
			return ZeroU128
		}
	}
	return ZeroU128
}

// Factor returns the prime-power decomposition of x. A negative x is
// factored by its magnitude. It returns an error for zero and singular
// inputs (neither of which factors), and
// propagates ctx's cancellation error if an attempt is abandoned partway —
// in that case the prime powers already found (small factors stripped by
// trial division, or composite splits resolved before cancellation) are
// still returned alongside the error rather than discarded.
func (f *Factorizer) Factor(ctx context.Context, x U128) ([]PrimePower, error) {
	if x.IsSingular() {
		return nil, ErrCannotFactorSingular
	}
	x = x.Abs()
	if x.IsZero() {
		return nil, ErrCannotFactorZero
	}
	if x.Equal(OneU128) {
		return nil, nil
	}

	var result []PrimePower
	remaining, twos := DivByQ(x, U128FromUint64(2))
	if twos > 0 {
		result = append(result, PrimePower{Prime: U128FromUint64(2), Exponent: twos})
	}

	for p := uint64(3); p <= 65536; p += 2 {
		if remaining.Equal(OneU128) {
			return result, nil
		}
		pu := U128FromUint64(p)
		if pu.Mul(pu).GreaterThanOrEqual(remaining) {
			break
		}
		if p&4095 == 1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}
		var count int
		remaining, count = DivByQ(remaining, pu)
		if count > 0 {
			result = append(result, PrimePower{Prime: pu, Exponent: count})
		}
	}

	if remaining.Equal(OneU128) {
		return result, nil
	}

	if err := f.factorComposite(ctx, remaining, &result); err != nil {
		return result, err
	}
	return result, nil
}

// factorComposite splits n (already stripped of small factors) down to
// primes via Fermat's method, Pollard's rho, and Pollard's p-1, recursing
// on any composite split it finds, and merges results into out.
func (f *Factorizer) factorComposite(ctx context.Context, n U128, out *[]PrimePower) error {
	if n.Equal(OneU128) {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if f.nt.IsPrime(n, 64) {
		addPrimeFactor(out, n, 1)
		return nil
	}

	bound, _ := Isqrt(n)
	iterBound, _ := Isqrt(bound)
	iterations := 1 << 20
	if iterBound.Hi == 0 && uint64(iterBound.Lo) < uint64(iterations) {
		iterations = int(iterBound.Lo)
	}
	if iterations < 256 {
		iterations = 256
	}

	// fermaMethod's k is the absolute candidate (not an offset from
	// Isqrt(n) the way the original's k_upper = x_sqrt is), so the
	// limit passed here must cover the same absolute range the
	// original scans: up to x_sqrt past ceil(sqrt(n)), i.e. ~2*bound.
	p, q, ok := f.fermaMethod(ctx, n, bound.Add(bound))
	if !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := f.pollardRho(ctx, n, iterations)
		if g.IsZero() {
			g = f.pollardMinusP(ctx, n, iterations)
		}
		if g.IsZero() {
			return ErrFactorNotFound
		}
		p = g
		q, _ = n.QuoRem(g)
	}
	if err := f.factorComposite(ctx, p, out); err != nil {
		return err
	}
	return f.factorComposite(ctx, q, out)
}

func addPrimeFactor(out *[]PrimePower, prime U128, exponent int) {
	for i := range *out {
		if (*out)[i].Prime.Equal(prime) {
			(*out)[i].Exponent += exponent
			return
		}
	}
	*out = append(*out, PrimePower{Prime: prime, Exponent: exponent})
}
