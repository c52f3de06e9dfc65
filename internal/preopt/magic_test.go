package preopt

import "testing"

// These check the magic-number tables against the identity the rewriter
// relies on: n/d reconstructed from mulBy/shiftBy (and doAdd, for the
// unsigned case) must equal plain division for a spread of dividends.

func TestMagicU32ReconstructsDivision(t *testing.T) {
	for _, d := range []uint32{3, 5, 6, 7, 10, 100, 1000003} {
		m := magicU32(d)
		for _, n := range []uint32{0, 1, 2, 7, 255, 1 << 20, 0xFFFFFFFF} {
			want := n / d
			q1 := uint32((uint64(n) * uint64(m.mulBy)) >> 32)
			var got uint32
			if m.doAdd {
				t1 := n - q1
				t2 := t1 >> 1
				t3 := t2 + q1
				got = t3 >> (m.shiftBy - 1)
			} else {
				got = q1 >> m.shiftBy
			}
			if got != want {
				t.Errorf("magicU32(%d): %d/%d = %d, want %d", d, n, d, got, want)
			}
		}
	}
}

func TestMagicS32ReconstructsDivision(t *testing.T) {
	for _, d := range []int32{3, 5, -3, -5, 7, -100, 1000003, -1000003} {
		m := magicS32(d)
		for _, n := range []int32{0, 1, -1, 7, -7, 255, -255, 1 << 20, -(1 << 20), 0x7FFFFFFF, -0x7FFFFFFF} {
			want := n / d
			q1 := int32((int64(n) * int64(m.mulBy)) >> 32)
			q2 := q1
			if d > 0 && m.mulBy < 0 {
				q2 = q1 + n
			} else if d < 0 && m.mulBy > 0 {
				q2 = q1 - n
			}
			var q3 int32
			if m.shiftBy == 0 {
				q3 = q2
			} else {
				q3 = q2 >> m.shiftBy
			}
			got := q3 + int32(uint32(q3)>>31)
			if got != want {
				t.Errorf("magicS32(%d): %d/%d = %d, want %d", d, n, d, got, want)
			}
		}
	}
}

func TestMagicU64ReconstructsDivision(t *testing.T) {
	for _, d := range []uint64{3, 5, 6, 7, 10, 100, 1000003} {
		m := magicU64(d)
		for _, n := range []uint64{0, 1, 2, 7, 255, 1 << 40, 0xFFFFFFFFFFFFFFFF} {
			want := n / d
			hi, _ := bits64Mulhi(n, m.mulBy)
			q1 := hi
			var got uint64
			if m.doAdd {
				t1 := n - q1
				t2 := t1 >> 1
				t3 := t2 + q1
				got = t3 >> (m.shiftBy - 1)
			} else {
				got = q1 >> m.shiftBy
			}
			if got != want {
				t.Errorf("magicU64(%d): %d/%d = %d, want %d", d, n, d, got, want)
			}
		}
	}
}

func TestMagicS64ReconstructsDivision(t *testing.T) {
	for _, d := range []int64{3, 5, -3, -5, 7, -100, 1000003, -1000003, 1<<40 + 1, -(1<<40 + 1)} {
		m := magicS64(d)
		for _, n := range []int64{0, 1, -1, 7, -7, 255, -255, 1 << 40, -(1 << 40), 0x7FFFFFFFFFFFFFFF, -0x7FFFFFFFFFFFFFFF} {
			want := n / d
			q1 := bits64Smulhi(n, m.mulBy)
			q2 := q1
			if d > 0 && m.mulBy < 0 {
				q2 = q1 + n
			} else if d < 0 && m.mulBy > 0 {
				q2 = q1 - n
			}
			var q3 int64
			if m.shiftBy == 0 {
				q3 = q2
			} else {
				q3 = q2 >> m.shiftBy
			}
			got := q3 + int64(uint64(q3)>>63)
			if got != want {
				t.Errorf("magicS64(%d): %d/%d = %d, want %d", d, n, d, got, want)
			}
		}
	}
}

// bits64Smulhi returns the high 64 bits of the signed 128-bit product a*b,
// the smulhi this pass assumes the target machine provides natively,
// derived from the unsigned 128-bit product by the standard two's-complement
// correction: a*b (signed) = ua*ub (unsigned) - (a<0 ? b<<64 : 0) - (b<0 ?
// a<<64 : 0), so the signed high word subtracts b when a is negative and a
// when b is negative.
func bits64Smulhi(a, b int64) int64 {
	hi, _ := bits64Mulhi(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return int64(hi)
}

// bits64Mulhi returns the high 64 bits of the 128-bit product a*b, the
// umulhi this pass assumes the target machine provides natively.
func bits64Mulhi(a, b uint64) (hi, lo uint64) {
	const mask = 0xFFFFFFFF
	aLo, aHi := a&mask, a>>32
	bLo, bHi := b&mask, b>>32

	lo32 := aLo * bLo
	mid1 := aHi * bLo
	mid2 := aLo * bHi
	carry := (lo32 >> 32) + (mid1 & mask) + (mid2 & mask)

	hi = aHi*bHi + (mid1 >> 32) + (mid2 >> 32) + (carry >> 32)
	lo = (lo32 & mask) | (carry << 32)
	return hi, lo
}
