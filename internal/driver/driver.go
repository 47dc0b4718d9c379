// Package driver runs the whole pipeline: lex, parse, lower, emit.
package driver

import (
	"errors"
	"fmt"

	"github.com/tinyrange/stackcc/internal/ast"
	"github.com/tinyrange/stackcc/internal/codegen/x86_64"
	"github.com/tinyrange/stackcc/internal/ir"
	"github.com/tinyrange/stackcc/internal/lexer"
	"github.com/tinyrange/stackcc/internal/parser"
)

// StageError tags an error with the pipeline stage that produced it.
type StageError struct {
	Stage string // "lex", "parse" or "codegen"
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s error: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Stage returns the stage name carried by err, or "" if there is none.
func Stage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Result holds every intermediate form of one compilation.
type Result struct {
	Tokens  []lexer.Token
	Program *ast.Program
	Func    *ir.Function
	Asm     string
}

// Compile turns src into a complete assembly unit.
func Compile(src string) (string, error) {
	r, err := CompileResult(src)
	if err != nil {
		return "", err
	}
	return r.Asm, nil
}

// CompileResult is Compile keeping the intermediate forms.
func CompileResult(src string) (*Result, error) {
	r := &Result{}
	var err error
	if r.Tokens, err = lexer.Tokenize(src); err != nil {
		return nil, &StageError{Stage: "lex", Err: err}
	}
	if r.Program, err = parser.Parse(r.Tokens); err != nil {
		return nil, &StageError{Stage: "parse", Err: err}
	}
	m := ir.NewModule("main")
	if err = ir.BuildModule(r.Program, m); err != nil {
		return nil, &StageError{Stage: "codegen", Err: err}
	}
	r.Func = m.Funcs[0]
	if r.Asm, err = x86_64.EmitModule(m); err != nil {
		return nil, &StageError{Stage: "codegen", Err: err}
	}
	return r, nil
}
