package ir

// Builder assembles a Function from scratch: blocks, parameters and
// instructions appended in program order. It is the entry point the
// textual-IR front end (internal/asmtext) drives; the preopt pass itself
// only ever uses InsertBefore to splice in new instructions ahead of an
// existing one.
type Builder struct {
	fn *Function
}

// NewBuilder starts building a function named name.
func NewBuilder(name string) *Builder {
	return &Builder{fn: &Function{Name: name}}
}

// Func returns the function under construction.
func (b *Builder) Func() *Function {
	return b.fn
}

// CreateBlock appends a new, empty block to the function and returns it.
func (b *Builder) CreateBlock(label string) *BasicBlock {
	block := &BasicBlock{Label: label, Func: b.fn}
	b.fn.Blocks = append(b.fn.Blocks, block)
	return block
}

// CreateFuncParam adds a function-level parameter of the given type and
// name, used by internal/asmtext to populate Function.Params from a
// parsed func header.
func (b *Builder) CreateFuncParam(name string, typ Type) *Value {
	v := &Value{ID: b.fn.allocValueID(), Name: name, Type: typ}
	b.fn.Params = append(b.fn.Params, v)
	return v
}

// CreateParam adds a block parameter of the given type and name.
func (b *Builder) CreateParam(block *BasicBlock, name string, typ Type) *Value {
	v := &Value{ID: b.fn.allocValueID(), Name: name, Type: typ, DefBlock: block}
	block.Params = append(block.Params, v)
	return v
}

// createValue allocates a fresh SSA value defined by inst.
func (b *Builder) createValue(name string, typ Type, block *BasicBlock, inst *Instruction) *Value {
	return &Value{ID: b.fn.allocValueID(), Name: name, Type: typ, DefBlock: block, DefInst: inst}
}

// Append adds inst to the end of block, after wiring up its ID and Block
// fields and, if inst has a result, allocating the Value for it.
func (b *Builder) Append(block *BasicBlock, resultName string, typ Type, op Opcode) *Instruction {
	inst := &Instruction{ID: b.fn.allocInstID(), Block: block, Op: op, Type: typ}
	if resultName != "" {
		inst.Result = b.createValue(resultName, typ, block, inst)
	}
	block.Instructions = append(block.Instructions, inst)
	return inst
}

// InsertBefore returns an Inserter that places new instructions
// immediately ahead of before within before.Block, which is exactly where
// the div/rem rewriter's temporaries belong: the cursor, on return from a
// rewrite, must still land on the (now-replaced) original instruction.
func InsertBefore(before *Instruction) *Inserter {
	return &Inserter{fn: before.Block.Func, block: before.Block, before: before}
}

// Inserter is a cursor-scoped instruction builder, standing in for the
// external instruction-builder API this pass is specified against
// (iconst, iadd, isub, imul_imm, ushr_imm, sshr_imm, band_imm, umulhi,
// smulhi). irsub_imm is not emitted here: the rewriter produces it only by
// replacing the original instruction in place.
type Inserter struct {
	fn     *Function
	block  *BasicBlock
	before *Instruction
}

func (ins *Inserter) emit(op Opcode, typ Type, args []*Value, imm int64, cond CondCode) *Value {
	inst := &Instruction{ID: ins.fn.allocInstID(), Block: ins.block, Op: op, Type: typ, Args: args, Imm: imm, Cond: cond}
	inst.Result = &Value{ID: ins.fn.allocValueID(), Type: typ, DefBlock: ins.block, DefInst: inst}
	inst.Result.Name = resultName(op, inst.Result.ID)

	idx := ins.block.IndexOf(ins.before)
	if idx < 0 {
		// Defensive: the cursor must always refer to a live instruction in
		// this block. An invariant violation here is a programmer error.
		panic("ir: Inserter cursor instruction is not in its own block")
	}
	ins.block.Instructions = append(ins.block.Instructions, nil)
	copy(ins.block.Instructions[idx+1:], ins.block.Instructions[idx:])
	ins.block.Instructions[idx] = inst
	return inst.Result
}

func resultName(op Opcode, id int) string {
	return "v" + itoa(id)
}

// Iconst emits an integer constant of the given type.
func (ins *Inserter) Iconst(typ Type, imm int64) *Value {
	return ins.emit(OpIconst, typ, nil, imm, 0)
}

// Iadd emits left + right.
func (ins *Inserter) Iadd(left, right *Value) *Value {
	return ins.emit(OpIadd, left.Type, []*Value{left, right}, 0, 0)
}

// Isub emits left - right.
func (ins *Inserter) Isub(left, right *Value) *Value {
	return ins.emit(OpIsub, left.Type, []*Value{left, right}, 0, 0)
}

// ImulImm emits operand * imm.
func (ins *Inserter) ImulImm(operand *Value, imm int64) *Value {
	return ins.emit(OpImulImm, operand.Type, []*Value{operand}, imm, 0)
}

// UshrImm emits operand >> imm (logical).
func (ins *Inserter) UshrImm(operand *Value, imm int64) *Value {
	return ins.emit(OpUshrImm, operand.Type, []*Value{operand}, imm, 0)
}

// SshrImm emits operand >> imm (arithmetic).
func (ins *Inserter) SshrImm(operand *Value, imm int64) *Value {
	return ins.emit(OpSshrImm, operand.Type, []*Value{operand}, imm, 0)
}

// BandImm emits operand & imm.
func (ins *Inserter) BandImm(operand *Value, imm int64) *Value {
	return ins.emit(OpBandImm, operand.Type, []*Value{operand}, imm, 0)
}

// Umulhi emits the high half of the unsigned 2W-bit product of left*right.
func (ins *Inserter) Umulhi(left, right *Value) *Value {
	return ins.emit(OpUmulhi, left.Type, []*Value{left, right}, 0, 0)
}

// Smulhi emits the high half of the signed 2W-bit product of left*right.
func (ins *Inserter) Smulhi(left, right *Value) *Value {
	return ins.emit(OpSmulhi, left.Type, []*Value{left, right}, 0, 0)
}

// itoa is a tiny dependency-free integer formatter, used only to name
// synthesized temporaries; it never participates in the pass's arithmetic.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
