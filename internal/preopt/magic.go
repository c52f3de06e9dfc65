package preopt

// Magic-number constant-division tables.
//
// These four functions are deterministic, pure derivations of the
// "magic number multiplication" technique from Hacker's Delight (Warren)
// and Granlund & Montgomery's "Division by Invariant Integers using
// Multiplication". Given a divisor, each returns the multiplier and shift
// the rewriter needs to replace n/d with a umulhi/smulhi plus a shift (and,
// for the unsigned case, an optional rounding add).
//
// All arithmetic below is carried out in the divisor's own word width using
// Go's native wraparound unsigned/signed integer semantics - exactly the
// machine arithmetic the algorithm was designed against, so no
// arbitrary-precision type is needed.

// magicU32Result bundles the multiplier, add-correction flag and shift
// amount produced by magicU32.
type magicU32Result struct {
	mulBy   uint32
	doAdd   bool
	shiftBy uint32
}

// magicU64Result is the 64-bit analogue of magicU32Result.
type magicU64Result struct {
	mulBy   uint64
	doAdd   bool
	shiftBy uint32
}

// magicS32Result bundles the multiplier and shift amount for signed 32-bit
// magic division.
type magicS32Result struct {
	mulBy   int32
	shiftBy uint32
}

// magicS64Result is the 64-bit analogue of magicS32Result.
type magicS64Result struct {
	mulBy   int64
	shiftBy uint32
}

// magicU32 computes the unsigned magic-number triple for divisor d, d >= 3,
// d not a power of two. Ported from the classic "magnu" algorithm.
func magicU32(d uint32) magicU32Result {
	const two31 = uint32(1) << 31
	doAdd := false
	p := uint32(31)
	nc := ^uint32(0) - (-d)%d
	q1 := two31 / nc
	r1 := two31 - q1*nc
	q2 := (two31 - 1) / d
	r2 := (two31 - 1) - q2*d
	for {
		p++
		if r1 >= nc-r1 {
			q1 = 2*q1 + 1
			r1 = 2*r1 - nc
		} else {
			q1 = 2 * q1
			r1 = 2 * r1
		}
		if r2+1 >= d-r2 {
			if q2 >= two31-1 {
				doAdd = true
			}
			q2 = 2*q2 + 1
			r2 = 2*r2 + 1 - d
		} else {
			if q2 >= two31 {
				doAdd = true
			}
			q2 = 2 * q2
			r2 = 2*r2 + 1
		}
		delta := d - 1 - r2
		if !(p < 64 && (q1 < delta || (q1 == delta && r1 == 0))) {
			break
		}
	}
	return magicU32Result{mulBy: q2 + 1, doAdd: doAdd, shiftBy: p - 32}
}

// magicU64 is the 64-bit analogue of magicU32.
func magicU64(d uint64) magicU64Result {
	const two63 = uint64(1) << 63
	doAdd := false
	p := uint32(63)
	nc := ^uint64(0) - (-d)%d
	q1 := two63 / nc
	r1 := two63 - q1*nc
	q2 := (two63 - 1) / d
	r2 := (two63 - 1) - q2*d
	for {
		p++
		if r1 >= nc-r1 {
			q1 = 2*q1 + 1
			r1 = 2*r1 - nc
		} else {
			q1 = 2 * q1
			r1 = 2 * r1
		}
		if r2+1 >= d-r2 {
			if q2 >= two63-1 {
				doAdd = true
			}
			q2 = 2*q2 + 1
			r2 = 2*r2 + 1 - d
		} else {
			if q2 >= two63 {
				doAdd = true
			}
			q2 = 2 * q2
			r2 = 2*r2 + 1
		}
		delta := d - 1 - r2
		if !(p < 128 && (q1 < delta || (q1 == delta && r1 == 0))) {
			break
		}
	}
	return magicU64Result{mulBy: q2 + 1, doAdd: doAdd, shiftBy: p - 64}
}

// magicS32 computes the signed magic-number pair for divisor d, |d| > 2 and
// not a power of two. Ported from the classic "magic" algorithm.
func magicS32(d int32) magicS32Result {
	const two31 = uint32(1) << 31
	ad := uint32(abs32(d))
	t := two31 + (uint32(d) >> 31)
	anc := t - 1 - t%ad
	p := uint32(31)
	q1 := two31 / anc
	r1 := two31 - q1*anc
	q2 := two31 / ad
	r2 := two31 - q2*ad
	var delta uint32
	for {
		p++
		q1 = 2 * q1
		r1 = 2 * r1
		if r1 >= anc {
			q1++
			r1 -= anc
		}
		q2 = 2 * q2
		r2 = 2 * r2
		if r2 >= ad {
			q2++
			r2 -= ad
		}
		delta = ad - r2
		if !(q1 < delta || (q1 == delta && r1 == 0)) {
			break
		}
	}
	m := int32(q2 + 1)
	if d < 0 {
		m = -m
	}
	return magicS32Result{mulBy: m, shiftBy: p - 32}
}

// magicS64 is the 64-bit analogue of magicS32.
func magicS64(d int64) magicS64Result {
	const two63 = uint64(1) << 63
	ad := uint64(abs64(d))
	t := two63 + (uint64(d) >> 63)
	anc := t - 1 - t%ad
	p := uint32(63)
	q1 := two63 / anc
	r1 := two63 - q1*anc
	q2 := two63 / ad
	r2 := two63 - q2*ad
	var delta uint64
	for {
		p++
		q1 = 2 * q1
		r1 = 2 * r1
		if r1 >= anc {
			q1++
			r1 -= anc
		}
		q2 = 2 * q2
		r2 = 2 * r2
		if r2 >= ad {
			q2++
			r2 -= ad
		}
		delta = ad - r2
		if !(q1 < delta || (q1 == delta && r1 == 0)) {
			break
		}
	}
	m := int64(q2 + 1)
	if d < 0 {
		m = -m
	}
	return magicS64Result{mulBy: m, shiftBy: p - 64}
}

// abs32 and abs64 never see the non-representable INT_MIN case:
// i32IsPowerOfTwo/i64IsPowerOfTwo return early for it before calling them,
// and magicS32/magicS64 are only reached for divisors that are not a power
// of two (or its negation), so INT_MIN is always taken by the power-of-two
// path first.
func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
