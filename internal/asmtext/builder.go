package asmtext

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"ssapreopt/internal/ir"
)

// Build converts a parsed Program into ir.Functions, resolving block-label
// and value-name references along the way. Each Func is built
// independently; value and block names are scoped to their own function.
func Build(prog *Program) ([]*ir.Function, error) {
	fns := make([]*ir.Function, 0, len(prog.Funcs))
	for _, f := range prog.Funcs {
		fn, err := buildFunc(f)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func buildFunc(f *Func) (*ir.Function, error) {
	b := ir.NewBuilder(f.Name)
	values := map[string]*ir.Value{}
	blocks := map[string]*ir.BasicBlock{}

	for _, p := range f.Params {
		typ, ok := ir.ParseType(p.Type)
		if !ok {
			return nil, fmt.Errorf("%s: unknown type %q for parameter %s", p.Pos, p.Type, p.Name)
		}
		values[p.Name] = b.CreateFuncParam(p.Name, typ)
	}

	// Pass 1: create every block and its parameters up front, so a
	// forward jump/branch destination resolves regardless of layout
	// order.
	for _, blk := range f.Blocks {
		block := b.CreateBlock(blk.Label)
		blocks[blk.Label] = block
		for _, p := range blk.Params {
			typ, ok := ir.ParseType(p.Type)
			if !ok {
				return nil, fmt.Errorf("%s: unknown type %q for block parameter %s", p.Pos, p.Type, p.Name)
			}
			values[p.Name] = b.CreateParam(block, p.Name, typ)
		}
	}

	// Pass 2: instructions, now that every name in the function resolves.
	for _, blk := range f.Blocks {
		block := blocks[blk.Label]
		for _, inst := range blk.Insts {
			if err := buildInst(b, block, inst, values, blocks); err != nil {
				return nil, err
			}
		}
	}

	return b.Func(), nil
}

func valueOperand(values map[string]*ir.Value, op *Operand) (*ir.Value, error) {
	if op == nil || op.Value == nil {
		return nil, fmt.Errorf("%s: expected a value operand", opPos(op))
	}
	v, ok := values[op.Value.Name]
	if !ok {
		return nil, fmt.Errorf("%s: undefined value %q", op.Pos, op.Value.Name)
	}
	return v, nil
}

func immOperand(op *Operand) (int64, error) {
	if op == nil || op.Imm == nil {
		return 0, fmt.Errorf("%s: expected an immediate operand", opPos(op))
	}
	return *op.Imm, nil
}

func condOperand(op *Operand) (ir.CondCode, error) {
	if op == nil || op.Value == nil {
		return 0, fmt.Errorf("%s: expected a condition code", opPos(op))
	}
	cond, ok := ir.ParseCondCode(op.Value.Name)
	if !ok {
		return 0, fmt.Errorf("%s: unknown condition code %q", op.Pos, op.Value.Name)
	}
	return cond, nil
}

// destOperand resolves a block-reference-with-arguments operand, the shape
// used for jump/brz/brnz/br_icmp destinations.
func destOperand(blocks map[string]*ir.BasicBlock, values map[string]*ir.Value, op *Operand) (*ir.BasicBlock, []*ir.Value, error) {
	if op == nil || op.Value == nil {
		return nil, nil, fmt.Errorf("%s: expected a block reference", opPos(op))
	}
	block, ok := blocks[op.Value.Name]
	if !ok {
		return nil, nil, fmt.Errorf("%s: undefined block %q", op.Pos, op.Value.Name)
	}
	args := make([]*ir.Value, len(op.Value.Args))
	for i, a := range op.Value.Args {
		v, err := valueOperand(values, a)
		if err != nil {
			return nil, nil, err
		}
		args[i] = v
	}
	return block, args, nil
}

func opPos(op *Operand) lexer.Position {
	if op == nil {
		return lexer.Position{}
	}
	return op.Pos
}

func operandAt(ops []*Operand, idx int) *Operand {
	if idx < 0 || idx >= len(ops) {
		return nil
	}
	return ops[idx]
}

func buildInst(b *ir.Builder, block *ir.BasicBlock, src *Instruction, values map[string]*ir.Value, blocks map[string]*ir.BasicBlock) error {
	op, ok := ir.ParseOpcode(src.Mnemonic)
	if !ok {
		return fmt.Errorf("%s: unknown opcode %q", src.Pos, src.Mnemonic)
	}

	typ := ir.I32
	if src.Type != nil {
		t, ok := ir.ParseType(*src.Type)
		if !ok {
			return fmt.Errorf("%s: unknown type %q", src.Pos, *src.Type)
		}
		typ = t
	}

	resultName := ""
	if src.Result != nil {
		resultName = *src.Result
	}

	ops := src.Operands
	out := b.Append(block, resultName, typ, op)

	switch op {
	case ir.OpIconst:
		imm, err := immOperand(operandAt(ops, 0))
		if err != nil {
			return err
		}
		out.Imm = imm

	case ir.OpCopy, ir.OpBint:
		v, err := valueOperand(values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		out.Args = []*ir.Value{v}

	case ir.OpSelect:
		cond, err := valueOperand(values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		ifTrue, err := valueOperand(values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		ifFalse, err := valueOperand(values, operandAt(ops, 2))
		if err != nil {
			return err
		}
		out.Args = []*ir.Value{cond, ifTrue, ifFalse}

	case ir.OpIcmp:
		cond, err := condOperand(operandAt(ops, 0))
		if err != nil {
			return err
		}
		left, err := valueOperand(values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		right, err := valueOperand(values, operandAt(ops, 2))
		if err != nil {
			return err
		}
		out.Cond, out.Args = cond, []*ir.Value{left, right}

	case ir.OpIcmpImm:
		cond, err := condOperand(operandAt(ops, 0))
		if err != nil {
			return err
		}
		left, err := valueOperand(values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		imm, err := immOperand(operandAt(ops, 2))
		if err != nil {
			return err
		}
		out.Cond, out.Args, out.Imm = cond, []*ir.Value{left}, imm

	case ir.OpBrz, ir.OpBrnz:
		cond, err := valueOperand(values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		dest, destArgs, err := destOperand(blocks, values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		out.Args, out.Dest, out.DestArgs = []*ir.Value{cond}, dest, destArgs

	case ir.OpCondTrap:
		cond, err := valueOperand(values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		out.Args = []*ir.Value{cond}

	case ir.OpBrIcmp:
		cond, err := condOperand(operandAt(ops, 0))
		if err != nil {
			return err
		}
		x, err := valueOperand(values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		y, err := valueOperand(values, operandAt(ops, 2))
		if err != nil {
			return err
		}
		dest, destArgs, err := destOperand(blocks, values, operandAt(ops, 3))
		if err != nil {
			return err
		}
		out.Cond, out.Args, out.Dest, out.DestArgs = cond, []*ir.Value{x, y}, dest, destArgs

	case ir.OpJump:
		dest, destArgs, err := destOperand(blocks, values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		out.Dest, out.DestArgs = dest, destArgs

	case ir.OpReturn:
		if len(ops) > 0 {
			v, err := valueOperand(values, operandAt(ops, 0))
			if err != nil {
				return err
			}
			out.Args = []*ir.Value{v}
		}

	case ir.OpTrap:
		// No operands.

	default:
		if op.IsBinaryImm() {
			operand, err := valueOperand(values, operandAt(ops, 0))
			if err != nil {
				return err
			}
			imm, err := immOperand(operandAt(ops, 1))
			if err != nil {
				return err
			}
			out.Args, out.Imm = []*ir.Value{operand}, imm
			break
		}
		// Plain binary op: iadd, isub, imul, udiv, urem, sdiv, srem, band,
		// bor, bxor, ishl, ushr, sshr, rotl, rotr, umulhi, smulhi.
		left, err := valueOperand(values, operandAt(ops, 0))
		if err != nil {
			return err
		}
		right, err := valueOperand(values, operandAt(ops, 1))
		if err != nil {
			return err
		}
		out.Args = []*ir.Value{left, right}
	}

	if resultName != "" {
		values[resultName] = out.Result
	}
	return nil
}
