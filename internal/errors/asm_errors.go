package errors

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrorBuilder provides a fluent interface for constructing a CompilerError
// with suggestions, notes and help text attached incrementally.
type ErrorBuilder struct {
	err CompilerError
}

// NewError starts a new error builder at the given source position.
func NewError(code, message string, pos lexer.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{Level: Error, Code: code, Message: message, Position: pos, Length: 1},
	}
}

// WithLength sets the length of the error span.
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error.
func (b *ErrorBuilder) WithSuggestion(message string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error.
func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error.
func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error.
func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// AsmSyntax wraps a raw participle parse error (already positioned) into a
// CompilerError, so the CLI reports it with the same caret styling as every
// other diagnostic in this package.
func AsmSyntax(message string, pos lexer.Position) CompilerError {
	return NewError(ErrorAsmSyntax, message, pos).
		WithHelp("see the textual IR grammar: func @name(params) { block label(params): insts }").
		Build()
}

// UnknownOpcode reports a mnemonic that doesn't name any opcode this pass
// knows, suggesting the closest known mnemonics.
func UnknownOpcode(mnemonic string, pos lexer.Position, known []string) CompilerError {
	builder := NewError(ErrorUnknownOpcode, fmt.Sprintf("unknown opcode %q", mnemonic), pos).
		WithLength(len(mnemonic))

	if similar := findSimilarNames(mnemonic, known); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
	return builder.Build()
}

// UnknownType reports a type mnemonic other than i32, i64 or b1.
func UnknownType(mnemonic string, pos lexer.Position) CompilerError {
	return NewError(ErrorUnknownType, fmt.Sprintf("unknown type %q", mnemonic), pos).
		WithLength(len(mnemonic)).
		WithHelp("types are i32, i64 or b1").
		Build()
}

// UnknownCondCode reports a condition mnemonic icmp/icmp_imm/br_icmp don't
// recognize.
func UnknownCondCode(mnemonic string, pos lexer.Position) CompilerError {
	return NewError(ErrorUnknownCondCode, fmt.Sprintf("unknown condition code %q", mnemonic), pos).
		WithLength(len(mnemonic)).
		WithHelp("condition codes are eq, ne, slt, sge, sgt, sle, ult, uge, ugt, ule").
		Build()
}

// UndefinedValue reports a value name with no prior definition in its
// function - no parameter, no instruction result.
func UndefinedValue(name string, pos lexer.Position, known []string) CompilerError {
	builder := NewError(ErrorUndefinedValue, fmt.Sprintf("undefined value %q", name), pos).
		WithLength(len(name))

	if similar := findSimilarNames(name, known); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else {
		builder = builder.WithNote("values are defined by a parameter or an instruction result")
	}
	return builder.Build()
}

// UndefinedBlock reports a jump/branch destination with no matching block
// label in its function.
func UndefinedBlock(label string, pos lexer.Position, known []string) CompilerError {
	builder := NewError(ErrorUndefinedBlock, fmt.Sprintf("undefined block %q", label), pos).
		WithLength(len(label))

	if similar := findSimilarNames(label, known); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	}
	return builder.Build()
}

// InternalInvariant reports a programmer error: IR shape the pass's own
// invariants say cannot occur (e.g. a terminator-pair opcode branch_order
// doesn't recognize). It is never caused by user input.
func InternalInvariant(message string) CompilerError {
	return NewError(ErrorInternalInvariant, message, lexer.Position{}).
		WithHelp("this indicates a bug in the pass, not in the input IR").
		Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// levenshteinDistance is a small edit-distance implementation used only to
// rank "did you mean" suggestions; it never participates in parsing itself.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
