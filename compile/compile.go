// Package compile wires the lexer, token parser and assembler into the
// single entry point the command line shell calls: read a source file,
// run it through the pipeline, and hand back an assemble.Result or a
// typed error from whichever phase failed.
package compile

import (
	"os"

	"github.com/golangee/geo/assemble"
)

// Result is the outcome of compiling one source file.
type Result = assemble.Result

// File reads filename and runs it through Compile.
func File(filename string) (*Result, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Compile(src)
}

// Compile runs src through the lexer, parser and assembler in sequence.
// Each phase's own error type propagates unchanged: lexer and parser
// failures already arrive wrapped as an assemble.Error with Kind
// ParseFailure by the time Assemble returns, so there is nothing further
// to wrap here (§7).
func Compile(src []byte) (*Result, error) {
	return assemble.Assemble(src)
}
