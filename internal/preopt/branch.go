package preopt

import "ssapreopt/internal/ir"

// branchOpt folds a comparison-against-zero into the brz/brnz that tests
// it, matching against `icmp_imm cond, x, 0` feeding a brz or brnz on its
// result and collapsing the pair into a single branch on x.
//
// icmp_imm produces true (nonzero) when its condition holds, so branching
// on zero (brz) needs the inverted condition; branching on nonzero (brnz)
// keeps it as-is. Only eq/ne survive as a direct brz/brnz - any other
// condition code has no single-instruction branch form here.
func branchOpt(inst *ir.Instruction) {
	if inst.Op != ir.OpBrz && inst.Op != ir.OpBrnz {
		return
	}
	cmp := inst.Args[0].DefInst
	if cmp == nil || cmp.Op != ir.OpIcmpImm || cmp.Imm != 0 {
		return
	}

	cond := cmp.Cond
	if inst.Op == ir.OpBrz {
		cond = cond.Inverse()
	}

	var newOp ir.Opcode
	switch cond {
	case ir.Equal:
		newOp = ir.OpBrz
	case ir.NotEqual:
		newOp = ir.OpBrnz
	default:
		return
	}

	inst.ReplaceBranch(newOp, cmp.Operand(0), inst.Dest, inst.DestArgs)
}

// branchOrder reorders a conditional branch followed by an unconditional
// jump when the jump targets the next block in layout order: the jump
// becomes a fallthrough, and the condition is inverted so control still
// reaches the right destinations. inst must be the last instruction
// processed (the block's terminator); term is itself, cond is the
// instruction immediately before it.
//
// Only fires when:
//   - inst is a jump (not return/trap),
//   - its target is not already the next block (nothing to gain),
//   - the instruction right before it is a brz/brnz/br_icmp branching to
//     exactly the next block.
//
// Any other instruction before the jump that also targets the next block
// (only another jump can) is malformed IR and panics.
func branchOrder(cfg *ir.ControlFlowGraph, block *ir.BasicBlock, inst *ir.Instruction) {
	if inst.Op != ir.OpJump {
		return
	}
	next := block.Func.NextBlock(block)
	if next == nil || inst.Dest == next {
		return
	}

	idx := block.IndexOf(inst)
	if idx <= 0 {
		return
	}
	condInst := block.Instructions[idx-1]
	if condInst.Dest != next {
		return
	}

	term := inst
	termDest, termArgs := term.Dest, term.DestArgs
	condDest, condArgs := condInst.Dest, condInst.DestArgs

	switch condInst.Op {
	case ir.OpBrnz:
		cond := condInst.Operand(0)
		term.ReplaceJump(condDest, condArgs)
		condInst.ReplaceBranch(ir.OpBrz, cond, termDest, termArgs)
	case ir.OpBrz:
		cond := condInst.Operand(0)
		term.ReplaceJump(condDest, condArgs)
		condInst.ReplaceBranch(ir.OpBrnz, cond, termDest, termArgs)
	case ir.OpBrIcmp:
		x, y := condInst.Operand(0), condInst.Operand(1)
		cond := condInst.Cond.Inverse()
		term.ReplaceJump(condDest, condArgs)
		condInst.ReplaceBrIcmp(cond, x, y, termDest, termArgs)
	default:
		panic("preopt: branch_order: " + condInst.Op.String() + " before a jump has a destination but is not brz, brnz or br_icmp")
	}

	cfg.RecomputeBlock(block)
}
