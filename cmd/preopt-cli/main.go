// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"ssapreopt/internal/asmtext"
	"ssapreopt/internal/errors"
	"ssapreopt/internal/ir"
	"ssapreopt/internal/preopt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: preopt-cli <file.ir>")
		os.Exit(1)
	}

	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	prog, err := asmtext.ParseString(path, string(source))
	if err != nil {
		reportParseError(path, string(source), err)
		os.Exit(1)
	}

	fns, err := asmtext.Build(prog)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}

	for _, fn := range fns {
		fmt.Println("-- before --")
		fmt.Print(ir.Print(fn))

		cfg := ir.NewControlFlowGraph(fn)
		preopt.Run(fn, cfg)

		fmt.Println("-- after --")
		fmt.Print(ir.Print(fn))
	}

	color.Green("✅ Successfully processed %s", path)
}

// reportParseError prints a caret-style parse error, the same shape the
// teacher front end uses for its own grammar errors.
func reportParseError(filename, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	reporter := errors.NewErrorReporter(filename, src)
	fmt.Print(reporter.FormatError(errors.AsmSyntax(pe.Message(), pos)))
}
