package errors

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
)

func TestErrorReporter(t *testing.T) {
	source := `func @f() {
block entry():
    v1 = copy unknownVal
    return v1
}
`
	reporter := NewErrorReporter("test.ir", source)

	err := UndefinedValue("unknownVal", lexer.Position{Line: 3, Column: 15}, []string{"knownVal", "anotherVal"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedValue+"]")
	assert.Contains(t, formatted, "undefined value")
	assert.Contains(t, formatted, "unknownVal")
	assert.Contains(t, formatted, "test.ir:3:15")
}

func TestUndefinedValueError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UndefinedValue("balace", pos, []string{"balance"})
	assert.Equal(t, ErrorUndefinedValue, err.Code)
	assert.Contains(t, err.Message, "balace")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")

	err = UndefinedValue("xyz", pos, []string{})
	assert.Len(t, err.Notes, 1)
	assert.Contains(t, err.Notes[0], "defined by a parameter or an instruction result")
}

func TestUndefinedBlockError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UndefinedBlock("exti", pos, []string{"exit", "entry"})
	assert.Equal(t, ErrorUndefinedBlock, err.Code)
	assert.Contains(t, err.Message, "exti")
	assert.Len(t, err.Suggestions, 1)
}

func TestUnknownOpcodeError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UnknownOpcode("iadd_im", pos, []string{"iadd_imm", "isub"})
	assert.Equal(t, ErrorUnknownOpcode, err.Code)
	assert.Contains(t, err.Message, "iadd_im")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "iadd_imm")
}

func TestUnknownTypeError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UnknownType("i128", pos)
	assert.Equal(t, ErrorUnknownType, err.Code)
	assert.Contains(t, err.HelpText, "i32, i64 or b1")
}

func TestUnknownCondCodeError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 5}

	err := UnknownCondCode("lt", pos)
	assert.Equal(t, ErrorUnknownCondCode, err.Code)
	assert.Contains(t, err.HelpText, "slt")
}

func TestInternalInvariantError(t *testing.T) {
	err := InternalInvariant("branch_order saw a terminator pair it cannot classify")
	assert.Equal(t, ErrorInternalInvariant, err.Code)
	assert.Contains(t, err.HelpText, "bug in the pass")
}

func TestWarningFormatting(t *testing.T) {
	source := `trap`
	reporter := NewErrorReporter("test.ir", source)

	err := CompilerError{Level: Warning, Code: "W0001", Message: "unreachable instruction after trap", Position: lexer.Position{Line: 1, Column: 1}}
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "unreachable instruction after trap")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `let variable = value;`
	reporter := NewErrorReporter("test.ir", source)

	marker := reporter.createMarker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanceOf", "xyz"}

	similar := findSimilarNames("balace", candidates)
	assert.Contains(t, similar, "balance")
	assert.NotContains(t, similar, "xyz")

	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("test.ir", source)
	pos := lexer.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}
