package asmtext

import "github.com/alecthomas/participle/v2/lexer"

// Program is a sequence of function definitions in the textual IR format:
//
//	func @name(p0: i32, p1: i64) {
//	block entry(x: i32):
//	    v1 = iadd_imm x, 5
//	    return v1
//	}
//
// Mnemonic shapes aren't distinguished at the grammar level - every
// instruction is `[result =] mnemonic[.type] [operand (, operand)*]`, and
// Operand itself folds in the block-reference-with-arguments shape used by
// jump/brz/brnz/br_icmp destinations. builder.go interprets the operand
// list according to the mnemonic once parsing is done.
type Program struct {
	Funcs []*Func `@@*`
}

type Func struct {
	Pos    lexer.Position
	Name   string   `"func" "@" @Ident "("`
	Params []*Param `[ @@ { "," @@ } ] ")" "{"`
	Blocks []*Block `@@* "}"`
}

type Param struct {
	Pos  lexer.Position
	Name string `@Ident ":"`
	Type string `@Ident`
}

type Block struct {
	Pos    lexer.Position
	Label  string         `"block" @Ident "("`
	Params []*Param       `[ @@ { "," @@ } ] ")" ":"`
	Insts  []*Instruction `@@*`
}

type Instruction struct {
	Pos      lexer.Position
	Result   *string    `[ @Ident "=" ]`
	Mnemonic string     `@Ident`
	Type     *string    `[ "." @Ident ]`
	Operands []*Operand `[ @@ { "," @@ } ]`
}

type Operand struct {
	Pos   lexer.Position
	Value *ValueRef `  @@`
	Imm   *int64    `| @Integer`
}

// ValueRef is a bare identifier, optionally followed by a parenthesized
// argument list - the latter is how a jump/branch destination's block
// label and outgoing block-argument list are written.
type ValueRef struct {
	Pos  lexer.Position
	Name string     `@Ident`
	Args []*Operand `[ "(" [ @@ { "," @@ } ] ")" ]`
}
