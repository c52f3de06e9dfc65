package ir

import "fmt"

// Type is the static type of an SSA value. The pass only ever deals with
// fixed-width integers and the boolean produced by a comparison.
type Type int

const (
	I32 Type = iota
	I64
	Bool
)

func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Bool:
		return "b1"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Bits returns the width of an integer type. Panics for Bool, which has no
// meaningful bit width for the arithmetic this package performs.
func (t Type) Bits() int {
	switch t {
	case I32:
		return 32
	case I64:
		return 64
	default:
		panic(fmt.Sprintf("ir: %s has no integer width", t))
	}
}

// CondCode is an integer comparison condition code, as produced by icmp,
// icmp_imm and br_icmp.
type CondCode int

const (
	Equal CondCode = iota
	NotEqual
	SignedLessThan
	SignedGreaterThanOrEqual
	SignedGreaterThan
	SignedLessThanOrEqual
	UnsignedLessThan
	UnsignedGreaterThanOrEqual
	UnsignedGreaterThan
	UnsignedLessThanOrEqual
)

// condCodeNames is the reverse of CondCode.String, consulted by the
// textual IR parser to turn a bare condition mnemonic back into a
// CondCode.
var condCodeNames = map[string]CondCode{
	"eq": Equal, "ne": NotEqual,
	"slt": SignedLessThan, "sge": SignedGreaterThanOrEqual,
	"sgt": SignedGreaterThan, "sle": SignedLessThanOrEqual,
	"ult": UnsignedLessThan, "uge": UnsignedGreaterThanOrEqual,
	"ugt": UnsignedGreaterThan, "ule": UnsignedLessThanOrEqual,
}

// ParseCondCode looks up a condition code by its textual mnemonic (as
// produced by CondCode.String), used by the textual IR parser.
func ParseCondCode(name string) (CondCode, bool) {
	c, ok := condCodeNames[name]
	return c, ok
}

// ParseType looks up a Type by its textual mnemonic (i32, i64, b1).
func ParseType(name string) (Type, bool) {
	switch name {
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "b1":
		return Bool, true
	default:
		return 0, false
	}
}

func (c CondCode) String() string {
	switch c {
	case Equal:
		return "eq"
	case NotEqual:
		return "ne"
	case SignedLessThan:
		return "slt"
	case SignedGreaterThanOrEqual:
		return "sge"
	case SignedGreaterThan:
		return "sgt"
	case SignedLessThanOrEqual:
		return "sle"
	case UnsignedLessThan:
		return "ult"
	case UnsignedGreaterThanOrEqual:
		return "uge"
	case UnsignedGreaterThan:
		return "ugt"
	case UnsignedLessThanOrEqual:
		return "ule"
	default:
		return fmt.Sprintf("cond(%d)", int(c))
	}
}

// Inverse returns the condition that holds exactly when c does not.
func (c CondCode) Inverse() CondCode {
	switch c {
	case Equal:
		return NotEqual
	case NotEqual:
		return Equal
	case SignedLessThan:
		return SignedGreaterThanOrEqual
	case SignedGreaterThanOrEqual:
		return SignedLessThan
	case SignedGreaterThan:
		return SignedLessThanOrEqual
	case SignedLessThanOrEqual:
		return SignedGreaterThan
	case UnsignedLessThan:
		return UnsignedGreaterThanOrEqual
	case UnsignedGreaterThanOrEqual:
		return UnsignedLessThan
	case UnsignedGreaterThan:
		return UnsignedLessThanOrEqual
	case UnsignedLessThanOrEqual:
		return UnsignedGreaterThan
	default:
		panic(fmt.Sprintf("ir: unknown condition code %d", int(c)))
	}
}

// Opcode tags every instruction kind this package knows how to build.
// Immediate-form opcodes are the targets that simplify and the div/rem
// rewriter produce; the pass never invents an opcode outside this set.
type Opcode int

const (
	OpIconst Opcode = iota
	OpCopy

	// Binary, value-value operands.
	OpIadd
	OpIsub
	OpImul
	OpUdiv
	OpUrem
	OpSdiv
	OpSrem
	OpBand
	OpBor
	OpBxor
	OpIshl
	OpUshr
	OpSshr
	OpRotl
	OpRotr
	OpUmulhi
	OpSmulhi

	// Binary, value-immediate operands.
	OpIaddImm
	OpImulImm
	OpUdivImm
	OpUremImm
	OpSdivImm
	OpSremImm
	OpBandImm
	OpBorImm
	OpBxorImm
	OpIshlImm
	OpUshrImm
	OpSshrImm
	OpRotlImm
	OpRotrImm
	OpIrsubImm

	// Comparisons.
	OpIcmp
	OpIcmpImm

	// Bool -> int widening, and its consumers' condition sanitization target.
	OpBint
	OpSelect

	// Mid-block conditional control transfers (not terminators).
	OpBrz
	OpBrnz
	OpBrIcmp
	OpCondTrap

	// Terminators.
	OpJump
	OpReturn
	OpTrap
)

var opcodeNames = map[Opcode]string{
	OpIconst:   "iconst",
	OpCopy:     "copy",
	OpIadd:     "iadd",
	OpIsub:     "isub",
	OpImul:     "imul",
	OpUdiv:     "udiv",
	OpUrem:     "urem",
	OpSdiv:     "sdiv",
	OpSrem:     "srem",
	OpBand:     "band",
	OpBor:      "bor",
	OpBxor:     "bxor",
	OpIshl:     "ishl",
	OpUshr:     "ushr",
	OpSshr:     "sshr",
	OpRotl:     "rotl",
	OpRotr:     "rotr",
	OpUmulhi:   "umulhi",
	OpSmulhi:   "smulhi",
	OpIaddImm:  "iadd_imm",
	OpImulImm:  "imul_imm",
	OpUdivImm:  "udiv_imm",
	OpUremImm:  "urem_imm",
	OpSdivImm:  "sdiv_imm",
	OpSremImm:  "srem_imm",
	OpBandImm:  "band_imm",
	OpBorImm:   "bor_imm",
	OpBxorImm:  "bxor_imm",
	OpIshlImm:  "ishl_imm",
	OpUshrImm:  "ushr_imm",
	OpSshrImm:  "sshr_imm",
	OpRotlImm:  "rotl_imm",
	OpRotrImm:  "rotr_imm",
	OpIrsubImm: "irsub_imm",
	OpIcmp:     "icmp",
	OpIcmpImm:  "icmp_imm",
	OpBint:     "bint",
	OpSelect:   "select",
	OpBrz:      "brz",
	OpBrnz:     "brnz",
	OpBrIcmp:   "br_icmp",
	OpCondTrap: "cond_trap",
	OpJump:     "jump",
	OpReturn:   "return",
	OpTrap:     "trap",
}

// mnemonicOpcodes is the reverse of opcodeNames, consulted by the textual
// IR parser to turn a mnemonic back into an Opcode.
var mnemonicOpcodes = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// ParseOpcode looks up an Opcode by its textual mnemonic (as produced by
// Opcode.String), used by the textual IR parser.
func ParseOpcode(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicOpcodes[mnemonic]
	return op, ok
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("opcode(%d)", int(op))
}

// IsTerminator reports whether op must be the last instruction of a block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpJump, OpReturn, OpTrap:
		return true
	default:
		return false
	}
}

// HasSideEffect reports whether op must never be removed even if its result
// is unused. This pass never deletes instructions itself, but the builder
// and any later DCE pass consulting this package rely on the distinction.
func (op Opcode) HasSideEffect() bool {
	switch op {
	case OpCondTrap, OpTrap, OpReturn, OpJump, OpBrz, OpBrnz, OpBrIcmp:
		return true
	default:
		return false
	}
}
