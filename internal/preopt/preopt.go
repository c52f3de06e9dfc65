// Package preopt implements the pre-legalization SSA peephole pass: a
// single walk over every instruction in layout order that folds constant
// operands into immediate-form opcodes, strength-reduces division and
// remainder by a constant into shifts and magic-number multiplication, and
// reorders a conditional-branch/jump pair so the jump can fall through.
package preopt

import (
	"ssapreopt/internal/ir"
	"ssapreopt/internal/timing"
)

// Run applies the pass to every block of fn in layout order, and every
// instruction within a block in program order. cfg must already reflect
// fn's current control-flow edges; branch_order keeps it up to date as it
// mutates terminators.
//
// For a given instruction: simplify always runs first. If the instruction
// is then a div/rem-by-immediate, the div/rem rewriter either replaces it
// with a cheaper sequence or leaves it alone (division or signed overflow
// by a degenerate constant must still trap) - either way, branch_opt and
// branch_order are skipped for that instruction, mirroring do_preopt's
// `continue` once a div/rem rewrite is attempted.
func Run(fn *ir.Function, cfg *ir.ControlFlowGraph) {
	defer timing.Scope("preopt")()

	for _, block := range fn.Blocks {
		// Indexed rather than ranged: the div/rem rewriter splices new
		// instructions in ahead of inst, which would shift a captured
		// range slice out from under us. Re-deriving inst's position
		// after a rewrite keeps the walk at the right place regardless
		// of how many temporaries were inserted.
		idx := 0
		for idx < len(block.Instructions) {
			inst := block.Instructions[idx]
			simplify(inst)

			if inst.Op.IsDivOrRemImm() {
				tryDivRemRewrite(inst)
				idx = block.IndexOf(inst) + 1
				continue
			}

			branchOpt(inst)
			branchOrder(cfg, block, inst)
			idx++
		}
	}
}
