package ir

import (
	"fmt"
	"strings"
)

// Print renders fn as the textual IR format internal/asmtext parses, used
// for golden-style assertions in tests and for the preopt-cli demo tool's
// before/after dump.
func Print(fn *Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func @%s(", fn.Name)
	for idx, p := range fn.Params {
		if idx > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
	}
	b.WriteString(") {\n")

	for _, block := range fn.Blocks {
		fmt.Fprintf(&b, "block %s(", block.Label)
		for idx, p := range block.Params {
			if idx > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
		}
		b.WriteString("):\n")

		for _, inst := range block.Instructions {
			b.WriteString("    ")
			b.WriteString(printInstruction(inst))
			b.WriteString("\n")
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func printInstruction(inst *Instruction) string {
	switch inst.Op {
	case OpIconst:
		return fmt.Sprintf("%s = iconst.%s %d", inst.Result, inst.Type, inst.Imm)
	case OpCopy:
		return fmt.Sprintf("%s = copy %s", inst.Result, inst.Operand(0))
	case OpJump:
		return fmt.Sprintf("jump %s(%s)", inst.Dest.Label, joinValues(inst.DestArgs))
	case OpReturn:
		if len(inst.Args) == 0 {
			return "return"
		}
		return fmt.Sprintf("return %s", inst.Operand(0))
	case OpTrap:
		return "trap"
	case OpBrz, OpBrnz:
		return fmt.Sprintf("%s %s, %s(%s)", inst.Op, inst.Operand(0), inst.Dest.Label, joinValues(inst.DestArgs))
	case OpCondTrap:
		return fmt.Sprintf("cond_trap %s", inst.Operand(0))
	case OpBrIcmp:
		return fmt.Sprintf("br_icmp %s, %s, %s, %s(%s)", inst.Cond, inst.Operand(0), inst.Operand(1), inst.Dest.Label, joinValues(inst.DestArgs))
	case OpIcmp:
		return fmt.Sprintf("%s = icmp %s, %s, %s", inst.Result, inst.Cond, inst.Operand(0), inst.Operand(1))
	case OpIcmpImm:
		return fmt.Sprintf("%s = icmp_imm %s, %s, %d", inst.Result, inst.Cond, inst.Operand(0), inst.Imm)
	case OpSelect:
		return fmt.Sprintf("%s = select %s, %s, %s", inst.Result, inst.Operand(0), inst.Operand(1), inst.Operand(2))
	case OpBint:
		return fmt.Sprintf("%s = bint.%s %s", inst.Result, inst.Type, inst.Operand(0))
	default:
		if inst.Op.IsBinaryImm() {
			return fmt.Sprintf("%s = %s %s, %d", inst.Result, inst.Op, inst.Operand(0), inst.Imm)
		}
		// Plain binary op, including umulhi/smulhi.
		return fmt.Sprintf("%s = %s %s, %s", inst.Result, inst.Op, inst.Operand(0), inst.Operand(1))
	}
}

func joinValues(vs []*Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
