package calculus

// u256 is a 256-bit unsigned scratch value used only to carry the exact
// double-width product of two U128 magnitudes long enough to reduce it
// modulo a third U128 — the one place (NumberTheory.ModMul) that genuinely
// needs more than 128 bits of intermediate precision. Adapted from the
// teacher's u256.go (same "256 bits as two halves" shape), but reduced to
// what ModMul needs: this module's U128 is sign/singular-bearing and
// exposes no raw shift/compare primitives over bare hi/lo machine words, so
// the teacher's Hacker's-Delight fastQuo is replaced here with schoolbook
// shift-and-add multiplication and shift-and-subtract reduction — adequate
// since this is a modular-arithmetic helper, not a hot path.
type u256 struct {
	hi, lo U128 // value = hi*2^128 + lo
}

func u256FromU128(v U128) u256 {
	return u256{lo: v.Abs()}
}

func add256(a, b u256) u256 {
	lo := a.lo.Add(b.lo)
	carried := lo.IsOverflow()
	if carried {
		lo.Singular = NotSingular
	}
	hi := a.hi.Add(b.hi)
	if carried {
		hi = hi.Add(OneU128)
	}
	return u256{hi: hi, lo: lo}
}

func sub256(a, b u256) u256 {
	borrow := a.lo.LessThan(b.lo)
	lo := a.lo.Sub(b.lo)
	hi := a.hi.Sub(b.hi)
	if borrow {
		hi = hi.Sub(OneU128)
	}
	return u256{hi: hi, lo: lo}
}

func cmp256(a, b u256) int {
	if c, _ := a.hi.Cmp(b.hi); c != 0 {
		return c
	}
	c, _ := a.lo.Cmp(b.lo)
	return c
}

func bitAtU128(v U128, i int) bool {
	if i >= 64 {
		return (uint64(v.Hi)>>uint(i-64))&1 == 1
	}
	return (uint64(v.Lo)>>uint(i))&1 == 1
}

func shiftU128Left1(v U128) U128 {
	carry := bitAtU128(v, 63)
	newHi := v.Hi.Lsh(1)
	if carry {
		newHi = newHi.Or(1)
	}
	newLo := v.Lo.Lsh(1)
	return U128{Lo: newLo, Hi: newHi}
}

func (u u256) shiftLeft1() u256 {
	carry := bitAtU128(u.lo, 127)
	lo := shiftU128Left1(u.lo)
	hi := shiftU128Left1(u.hi)
	if carry {
		hi.Lo = hi.Lo.Or(1)
	}
	return u256{hi: hi, lo: lo}
}

func bitAt256(x u256, i int) bool {
	if i >= 128 {
		return bitAtU128(x.hi, i-128)
	}
	return bitAtU128(x.lo, i)
}

// mulU128 computes the exact 256-bit product of two U128 magnitudes by
// schoolbook shift-and-add over a's 128 bits.
func mulU128(a, b U128) u256 {
	a, b = a.Abs(), b.Abs()
	result := u256{}
	base := u256{lo: b}
	for i := 0; i < 128; i++ {
		if bitAtU128(a, i) {
			result = add256(result, base)
		}
		base = base.shiftLeft1()
	}
	return result
}

// modU256 reduces a 256-bit non-negative value modulo a non-zero U128,
// processing from the most significant bit down (shift-and-subtract).
func modU256(x u256, m U128) U128 {
	if x.hi.IsZero() {
		_, r := x.lo.QuoRem(m)
		return r
	}
	remainder := u256{}
	mWide := u256FromU128(m)
	for i := 255; i >= 0; i-- {
		remainder = remainder.shiftLeft1()
		if bitAt256(x, i) {
			remainder.lo = remainder.lo.Add(OneU128)
		}
		if cmp256(remainder, mWide) >= 0 {
			remainder = sub256(remainder, mWide)
		}
	}
	return remainder.lo
}

// ModMul256 computes (a*b) mod m exactly, via a 256-bit intermediate
// product. Grounded on u128_utils.cpp's mult_mod, which does the same
// "widen via U256 then reduce" dance.
func ModMul256(a, b, m U128) U128 {
	if m.IsZero() {
		return U128NaN()
	}
	prod := mulU128(a, b)
	return modU256(prod, m.Abs())
}
