//go:build ignore

// debug_tokens prints the tokens, AST and stack code of an inline program:
//
//	go run ./tools/debug_tokens.go 'x = 2*3+4; return x;'
package main

import (
	"fmt"
	"os"

	"github.com/tinyrange/stackcc/internal/driver"
	lx "github.com/tinyrange/stackcc/internal/lexer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_tokens <source>")
		os.Exit(2)
	}
	l := lx.New(os.Args[1])
	for {
		t := l.Next()
		fmt.Printf("%v %q at %d:%d\n", t.Type, t.Lex, t.Line, t.Col)
		if t.Type == lx.EOF || t.Type == lx.ILLEGAL {
			break
		}
	}
	r, err := driver.CompileResult(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(r.Program)
	fmt.Print(r.Func)
}
