package x86_64

import (
	"github.com/tinyrange/stackcc/internal/ir"
	"github.com/tinyrange/stackcc/internal/types"
)

// frameSize is the stack space reserved below %rbp: one slot per variable,
// rounded up so %rsp stays 16-byte aligned.
func frameSize(f *ir.Frame) int {
	if f == nil {
		return 0
	}
	return align(f.Size(), types.StackAlign)
}

func align(n, a int) int { return (n + (a - 1)) &^ (a - 1) }
