package asmtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringParsesFunctionShape(t *testing.T) {
	source := `func @f(x: i32) {
block entry(x: i32):
    v1 = iadd_imm x, 5
    return v1
}
`
	prog, err := ParseString("test.ir", source)
	require.NoError(t, err)
	require.Len(t, prog.Funcs, 1)

	fn := prog.Funcs[0]
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "i32", fn.Params[0].Type)

	require.Len(t, fn.Blocks, 1)
	block := fn.Blocks[0]
	assert.Equal(t, "entry", block.Label)
	require.Len(t, block.Insts, 2)

	add := block.Insts[0]
	require.NotNil(t, add.Result)
	assert.Equal(t, "v1", *add.Result)
	assert.Equal(t, "iadd_imm", add.Mnemonic)
	require.Len(t, add.Operands, 2)
	require.NotNil(t, add.Operands[0].Value)
	assert.Equal(t, "x", add.Operands[0].Value.Name)
	require.NotNil(t, add.Operands[1].Imm)
	assert.EqualValues(t, 5, *add.Operands[1].Imm)

	ret := block.Insts[1]
	assert.Nil(t, ret.Result)
	assert.Equal(t, "return", ret.Mnemonic)
}

func TestParseStringParsesBranchWithBlockArguments(t *testing.T) {
	source := `func @f(x: i32) {
block entry(x: i32):
    brnz x, left(x)
    jump right(x)
block left(y: i32):
    return y
block right(y: i32):
    return y
}
`
	prog, err := ParseString("test.ir", source)
	require.NoError(t, err)
	fn := prog.Funcs[0]
	require.Len(t, fn.Blocks, 3)

	brnz := fn.Blocks[0].Insts[0]
	assert.Equal(t, "brnz", brnz.Mnemonic)
	require.Len(t, brnz.Operands, 2)
	dest := brnz.Operands[1].Value
	require.NotNil(t, dest)
	assert.Equal(t, "left", dest.Name)
	require.Len(t, dest.Args, 1)
	assert.Equal(t, "x", dest.Args[0].Value.Name)
}

func TestParseStringRejectsMalformedFunction(t *testing.T) {
	_, err := ParseString("test.ir", `func @f(x: i32 {`)
	assert.Error(t, err)
}

func TestParseStringParsesTypedIconstAndIcmp(t *testing.T) {
	source := `func @f() {
block entry():
    v1 = iconst.i64 7
    v2 = icmp slt, v1, v1
    return v2
}
`
	prog, err := ParseString("test.ir", source)
	require.NoError(t, err)
	fn := prog.Funcs[0]
	iconst := fn.Blocks[0].Insts[0]
	require.NotNil(t, iconst.Type)
	assert.Equal(t, "i64", *iconst.Type)
	require.Len(t, iconst.Operands, 1)
	require.NotNil(t, iconst.Operands[0].Imm)
	assert.EqualValues(t, 7, *iconst.Operands[0].Imm)

	icmp := fn.Blocks[0].Insts[1]
	require.Len(t, icmp.Operands, 3)
	assert.Equal(t, "slt", icmp.Operands[0].Value.Name)
}
