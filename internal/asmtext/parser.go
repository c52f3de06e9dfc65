package asmtext

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("asmtext: failed to build parser: %w", err))
	}
	return p
}

// ParseString parses source (named sourceName for error messages) into a
// Program AST. Call Build on the result to get ir.Functions.
func ParseString(sourceName, source string) (*Program, error) {
	return parser.ParseString(sourceName, source)
}
