package preopt

import "ssapreopt/internal/ir"

// divRemKind tags which of the eight div/rem-by-constant variants a
// descriptor describes: the cross product of {div, rem} x {u32, u64, s32,
// s64}, matched exhaustively by the rewriter.
type divRemKind int

const (
	kindDivU32 divRemKind = iota
	kindDivU64
	kindDivS32
	kindDivS64
	kindRemU32
	kindRemU64
	kindRemS32
	kindRemS64
)

func (k divRemKind) isRem() bool {
	switch k {
	case kindRemU32, kindRemU64, kindRemS32, kindRemS64:
		return true
	default:
		return false
	}
}

// divRemInfo is the tagged descriptor the divisor classifier produces: a
// left operand, a divisor and the signedness/width/div-or-rem variant.
// The divisor is always stored widened to int64, matching how the
// immediate is carried on the instruction; Kind says how to interpret it.
type divRemInfo struct {
	Kind  divRemKind
	N     *ir.Value
	Imm64 int64
}

// classify inspects inst and, if it is one of udiv_imm/urem_imm/sdiv_imm/
// srem_imm, returns the packaged descriptor for the div/rem rewriter. It
// range-checks the immediate against the instruction's 32-or-64-bit type
// and rejects (returns false) anything that doesn't fit - per spec this is
// the divisor classifier's entire job, no arithmetic happens here.
func classify(inst *ir.Instruction) (divRemInfo, bool) {
	isSigned, isRem := false, false
	switch inst.Op {
	case ir.OpUdivImm:
		isSigned, isRem = false, false
	case ir.OpUremImm:
		isSigned, isRem = false, true
	case ir.OpSdivImm:
		isSigned, isRem = true, false
	case ir.OpSremImm:
		isSigned, isRem = true, true
	default:
		return divRemInfo{}, false
	}

	n := inst.Operand(0)
	imm := inst.Imm

	switch {
	case !isSigned && n.Type == ir.I32:
		// Unsigned 32-bit acceptance: immediate in [0, 2^32-1].
		if !fitsU32(imm) {
			return divRemInfo{}, false
		}
		return packaged(isRem, kindDivU32, kindRemU32, n, imm), true

	case !isSigned && n.Type == ir.I64:
		return packaged(isRem, kindDivU64, kindRemU64, n, imm), true

	case isSigned && n.Type == ir.I32:
		// Signed 32-bit acceptance: immediate in [-2^31, 2^31-1],
		// equivalently the low 33 bits are sign-consistent.
		if !fitsS32(imm) {
			return divRemInfo{}, false
		}
		return packaged(isRem, kindDivS32, kindRemS32, n, imm), true

	case isSigned && n.Type == ir.I64:
		return packaged(isRem, kindDivS64, kindRemS64, n, imm), true

	default:
		return divRemInfo{}, false
	}
}

func packaged(isRem bool, divKind, remKind divRemKind, n *ir.Value, imm int64) divRemInfo {
	k := divKind
	if isRem {
		k = remKind
	}
	return divRemInfo{Kind: k, N: n, Imm64: imm}
}

// fitsU32 reports whether imm, as a 64-bit pattern, represents an unsigned
// value in [0, 2^32-1].
func fitsU32(imm int64) bool {
	u := uint64(imm)
	return u <= 0xFFFFFFFF
}

// fitsS32 reports whether imm represents a value in [-2^31, 2^31-1].
func fitsS32(imm int64) bool {
	return imm >= -0x8000_0000 && imm <= 0x7FFF_FFFF
}

// i32IsPowerOfTwo mirrors i32_is_power_of_two: if x (or its negation) is a
// power of two, returns the exponent k and whether x is negative.
func i32IsPowerOfTwo(x int32) (k uint32, isNegative, ok bool) {
	if x == -0x8000_0000 {
		return 31, true, true
	}
	absX := uint32(abs32(x))
	if absX != 0 && absX&(absX-1) == 0 {
		return trailingZeros32(absX), x < 0, true
	}
	return 0, false, false
}

// i64IsPowerOfTwo is the 64-bit analogue of i32IsPowerOfTwo.
func i64IsPowerOfTwo(x int64) (k uint32, isNegative, ok bool) {
	if x == -0x8000_0000_0000_0000 {
		return 63, true, true
	}
	absX := uint64(abs64(x))
	if absX != 0 && absX&(absX-1) == 0 {
		return trailingZeros64(absX), x < 0, true
	}
	return 0, false, false
}

func trailingZeros32(x uint32) uint32 {
	n := uint32(0)
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

func trailingZeros64(x uint64) uint32 {
	n := uint32(0)
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

func isPowerOfTwoU32(d uint32) bool {
	return d != 0 && d&(d-1) == 0
}

func isPowerOfTwoU64(d uint64) bool {
	return d != 0 && d&(d-1) == 0
}
