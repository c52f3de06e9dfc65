package preopt

import "ssapreopt/internal/ir"

// tryDivRemRewrite is try_divrem_rewrite: if inst is now a div/rem-by-
// immediate, expand it into a cheaper instruction sequence and replace
// inst with the final step. Returns true if a rewrite happened. The driver
// skips the branch passes for every div/rem-by-immediate whether or not a
// rewrite happened.
//
// Every case here preserves two invariants the original instruction could
// trap on: division by zero, and INT_MIN / -1 for the signed case. Both
// are left untouched so a later lowering pass still traps at runtime.
func tryDivRemRewrite(inst *ir.Instruction) bool {
	info, ok := classify(inst)
	if !ok {
		return false
	}

	switch info.Kind {
	case kindDivU32, kindRemU32:
		return rewriteU32(inst, info)
	case kindDivU64, kindRemU64:
		return rewriteU64(inst, info)
	case kindDivS32, kindRemS32:
		return rewriteS32(inst, info)
	case kindDivS64, kindRemS64:
		return rewriteS64(inst, info)
	default:
		panic("preopt: unreachable div/rem descriptor variant")
	}
}

func rewriteU32(inst *ir.Instruction, info divRemInfo) bool {
	d := uint32(info.Imm64)
	isRem := info.Kind.isRem()
	n := info.N

	if d == 0 {
		return false // trap preservation
	}
	if d == 1 {
		if isRem {
			inst.ReplaceIconst(0)
		} else {
			inst.ReplaceCopy(n)
		}
		return true
	}
	if isPowerOfTwoU32(d) {
		k := trailingZeros32(d)
		if isRem {
			inst.ReplaceBinaryImm(ir.OpBandImm, n, int64(d-1))
		} else {
			inst.ReplaceBinaryImm(ir.OpUshrImm, n, int64(k))
		}
		return true
	}

	m := magicU32(d)
	ins := ir.InsertBefore(inst)
	q0 := ins.Iconst(ir.I32, int64(m.mulBy))
	q1 := ins.Umulhi(n, q0)

	var qf *ir.Value
	if m.doAdd {
		assertInRange(m.shiftBy, 1, 32, "magicU32 doAdd shiftBy")
		t1 := ins.Isub(n, q1)
		t2 := ins.UshrImm(t1, 1)
		t3 := ins.Iadd(t2, q1)
		if m.shiftBy == 1 {
			panic("preopt: magicU32 doAdd shiftBy must not be 1")
		}
		qf = ins.UshrImm(t3, int64(m.shiftBy-1))
	} else {
		assertInRange(m.shiftBy, 0, 31, "magicU32 shiftBy")
		if m.shiftBy > 0 {
			qf = ins.UshrImm(q1, int64(m.shiftBy))
		} else {
			qf = q1
		}
	}

	if isRem {
		tt := ins.ImulImm(qf, int64(d))
		inst.ReplaceBinary(ir.OpIsub, n, tt)
	} else {
		inst.ReplaceCopy(qf)
	}
	return true
}

func rewriteU64(inst *ir.Instruction, info divRemInfo) bool {
	d := uint64(info.Imm64)
	isRem := info.Kind.isRem()
	n := info.N

	if d == 0 {
		return false
	}
	if d == 1 {
		if isRem {
			inst.ReplaceIconst(0)
		} else {
			inst.ReplaceCopy(n)
		}
		return true
	}
	if isPowerOfTwoU64(d) {
		k := trailingZeros64(d)
		if isRem {
			inst.ReplaceBinaryImm(ir.OpBandImm, n, int64(d-1))
		} else {
			inst.ReplaceBinaryImm(ir.OpUshrImm, n, int64(k))
		}
		return true
	}

	m := magicU64(d)
	ins := ir.InsertBefore(inst)
	q0 := ins.Iconst(ir.I64, int64(m.mulBy))
	q1 := ins.Umulhi(n, q0)

	var qf *ir.Value
	if m.doAdd {
		assertInRange(m.shiftBy, 1, 64, "magicU64 doAdd shiftBy")
		t1 := ins.Isub(n, q1)
		t2 := ins.UshrImm(t1, 1)
		t3 := ins.Iadd(t2, q1)
		if m.shiftBy == 1 {
			panic("preopt: magicU64 doAdd shiftBy must not be 1")
		}
		qf = ins.UshrImm(t3, int64(m.shiftBy-1))
	} else {
		assertInRange(m.shiftBy, 0, 63, "magicU64 shiftBy")
		if m.shiftBy > 0 {
			qf = ins.UshrImm(q1, int64(m.shiftBy))
		} else {
			qf = q1
		}
	}

	if isRem {
		tt := ins.ImulImm(qf, int64(d))
		inst.ReplaceBinary(ir.OpIsub, n, tt)
	} else {
		inst.ReplaceCopy(qf)
	}
	return true
}

func rewriteS32(inst *ir.Instruction, info divRemInfo) bool {
	d := int32(info.Imm64)
	isRem := info.Kind.isRem()
	n := info.N

	if d == 0 || d == -1 {
		return false // trap preservation: div by zero, or INT_MIN/-1 overflow
	}
	if d == 1 {
		if isRem {
			inst.ReplaceIconst(0)
		} else {
			inst.ReplaceCopy(n)
		}
		return true
	}

	ins := ir.InsertBefore(inst)

	if k, isNegative, ok := i32IsPowerOfTwo(d); ok {
		assertInRange(k, 1, 31, "i32IsPowerOfTwo k")
		var t1 *ir.Value
		if k-1 == 0 {
			t1 = n
		} else {
			t1 = ins.SshrImm(n, int64(k-1))
		}
		t2 := ins.UshrImm(t1, int64(32-k))
		t3 := ins.Iadd(n, t2)
		if isRem {
			t4 := ins.BandImm(t3, int64(int32(-(int64(1)<<k))))
			inst.ReplaceBinary(ir.OpIsub, n, t4)
		} else {
			t4 := ins.SshrImm(t3, int64(k))
			if isNegative {
				inst.ReplaceBinaryImm(ir.OpIrsubImm, t4, 0)
			} else {
				inst.ReplaceCopy(t4)
			}
		}
		return true
	}

	// |d| not a power of two: magic-number multiplication.
	m := magicS32(d)
	q0 := ins.Iconst(ir.I32, int64(m.mulBy))
	q1 := ins.Smulhi(n, q0)
	var q2 *ir.Value
	switch {
	case d > 0 && m.mulBy < 0:
		q2 = ins.Iadd(q1, n)
	case d < 0 && m.mulBy > 0:
		q2 = ins.Isub(q1, n)
	default:
		q2 = q1
	}
	assertInRange(m.shiftBy, 0, 31, "magicS32 shiftBy")
	var q3 *ir.Value
	if m.shiftBy == 0 {
		q3 = q2
	} else {
		q3 = ins.SshrImm(q2, int64(m.shiftBy))
	}
	t1 := ins.UshrImm(q3, 31)
	qf := ins.Iadd(q3, t1)

	if isRem {
		tt := ins.ImulImm(qf, int64(d))
		inst.ReplaceBinary(ir.OpIsub, n, tt)
	} else {
		inst.ReplaceCopy(qf)
	}
	return true
}

func rewriteS64(inst *ir.Instruction, info divRemInfo) bool {
	d := info.Imm64
	isRem := info.Kind.isRem()
	n := info.N

	if d == 0 || d == -1 {
		return false
	}
	if d == 1 {
		if isRem {
			inst.ReplaceIconst(0)
		} else {
			inst.ReplaceCopy(n)
		}
		return true
	}

	ins := ir.InsertBefore(inst)

	if k, isNegative, ok := i64IsPowerOfTwo(d); ok {
		assertInRange(k, 1, 63, "i64IsPowerOfTwo k")
		var t1 *ir.Value
		if k-1 == 0 {
			t1 = n
		} else {
			t1 = ins.SshrImm(n, int64(k-1))
		}
		t2 := ins.UshrImm(t1, int64(64-k))
		t3 := ins.Iadd(n, t2)
		if isRem {
			t4 := ins.BandImm(t3, -(int64(1) << k))
			inst.ReplaceBinary(ir.OpIsub, n, t4)
		} else {
			t4 := ins.SshrImm(t3, int64(k))
			if isNegative {
				inst.ReplaceBinaryImm(ir.OpIrsubImm, t4, 0)
			} else {
				inst.ReplaceCopy(t4)
			}
		}
		return true
	}

	m := magicS64(d)
	q0 := ins.Iconst(ir.I64, m.mulBy)
	q1 := ins.Smulhi(n, q0)
	var q2 *ir.Value
	switch {
	case d > 0 && m.mulBy < 0:
		q2 = ins.Iadd(q1, n)
	case d < 0 && m.mulBy > 0:
		q2 = ins.Isub(q1, n)
	default:
		q2 = q1
	}
	assertInRange(m.shiftBy, 0, 63, "magicS64 shiftBy")
	var q3 *ir.Value
	if m.shiftBy == 0 {
		q3 = q2
	} else {
		q3 = ins.SshrImm(q2, int64(m.shiftBy))
	}
	t1 := ins.UshrImm(q3, 63)
	qf := ins.Iadd(q3, t1)

	if isRem {
		tt := ins.ImulImm(qf, d)
		inst.ReplaceBinary(ir.OpIsub, n, tt)
	} else {
		inst.ReplaceCopy(qf)
	}
	return true
}

// assertInRange is the shift-count boundary check the magic-number tables
// are specified to be checked against: a violation means the magic-number
// derivation produced an out-of-range shift, an internal bug rather than a
// condition the caller can recover from.
func assertInRange(v, lo, hi uint32, what string) {
	if v < lo || v > hi {
		panic("preopt: " + what + " out of range")
	}
}
