package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tinyrange/stackcc/internal/driver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run compiles the single argument, which is the program text itself, not a
// file name. Any other argument count does nothing and succeeds; scripts
// depend on that, so keep it.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		return 0
	}
	asm, err := driver.Compile(args[0])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := io.WriteString(stdout, asm); err != nil {
		fmt.Fprintf(stderr, "write error: %v\n", err)
		return 1
	}
	return 0
}
