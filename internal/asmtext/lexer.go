package asmtext

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the textual IR format ir.Print writes: function and block
// headers, one instruction per line, identifiers, integers and the small
// punctuation set the grammar needs. Modeled on grammar.KansoLexer, cut down
// to the symbols this format actually uses.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `-?(0x[0-9a-fA-F]+|[0-9]+)`, nil},
		{"Punctuation", `[{}()@:,.=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
