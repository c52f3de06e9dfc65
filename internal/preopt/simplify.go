package preopt

import "ssapreopt/internal/ir"

// binaryImmFold maps a binary value-value opcode to the value-immediate
// opcode it folds into when its right operand is a constant. isub is
// handled separately: it becomes iadd_imm of the negated constant.
var binaryImmFold = map[ir.Opcode]ir.Opcode{
	ir.OpIadd: ir.OpIaddImm,
	ir.OpImul: ir.OpImulImm,
	ir.OpSdiv: ir.OpSdivImm,
	ir.OpUdiv: ir.OpUdivImm,
	ir.OpSrem: ir.OpSremImm,
	ir.OpUrem: ir.OpUremImm,
	ir.OpBand: ir.OpBandImm,
	ir.OpBor:  ir.OpBorImm,
	ir.OpBxor: ir.OpBxorImm,
	ir.OpRotl: ir.OpRotlImm,
	ir.OpRotr: ir.OpRotrImm,
	ir.OpIshl: ir.OpIshlImm,
	ir.OpUshr: ir.OpUshrImm,
	ir.OpSshr: ir.OpSshrImm,
}

// simplify folds a constant operand into its consuming instruction, and
// elides a redundant bint ahead of a branch/trap/select condition. It
// never introduces a new instruction; every case replaces inst in place
// with something strictly cheaper to lower.
func simplify(inst *ir.Instruction) {
	_, foldable := binaryImmFold[inst.Op]
	switch {
	case len(inst.Args) == 2 && (inst.Op == ir.OpIsub || foldable):
		simplifyBinary(inst)
	case inst.Op == ir.OpIcmp:
		simplifyIcmp(inst)
	case inst.Op == ir.OpCondTrap, inst.Op == ir.OpBrz, inst.Op == ir.OpBrnz, inst.Op == ir.OpSelect:
		elideBint(inst)
	}
}

func simplifyBinary(inst *ir.Instruction) {
	left, right := inst.Args[0], inst.Args[1]

	if right.DefInst != nil && right.DefInst.Op == ir.OpIconst {
		imm := right.DefInst.Imm
		if inst.Op == ir.OpIsub {
			inst.ReplaceBinaryImm(ir.OpIaddImm, left, -imm)
			return
		}
		if newOp, ok := binaryImmFold[inst.Op]; ok {
			inst.ReplaceBinaryImm(newOp, left, imm)
			return
		}
		return
	}

	// Only isub has a value-minus-immediate complement (irsub_imm); the
	// other commutative ops already matched on the right operand above.
	if inst.Op == ir.OpIsub && left.DefInst != nil && left.DefInst.Op == ir.OpIconst {
		inst.ReplaceBinaryImm(ir.OpIrsubImm, right, left.DefInst.Imm)
	}
}

func simplifyIcmp(inst *ir.Instruction) {
	left, right := inst.Args[0], inst.Args[1]
	if right.DefInst != nil && right.DefInst.Op == ir.OpIconst {
		inst.ReplaceIcmpImm(inst.Cond, left, right.DefInst.Imm)
	}
}

// elideBint drops a redundant bool-to-int widen feeding directly into a
// condition operand: brz/brnz/cond_trap/select all test for zero/nonzero,
// so the widened int and the original bool test identically.
func elideBint(inst *ir.Instruction) {
	cond := inst.Args[0]
	if cond.DefInst != nil && cond.DefInst.Op == ir.OpBint {
		inst.Args[0] = cond.DefInst.Args[0]
	}
}
