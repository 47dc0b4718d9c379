package x86_64

import (
	"fmt"
	"math"
	"strings"

	"github.com/tinyrange/stackcc/internal/ir"
)

// EmitModule emits AT&T syntax x86_64 assembly for System V AMD64.
// Nothing is returned on error, so a failed compile never leaves a partial
// unit behind.
func EmitModule(m *ir.Module) (string, error) {
	var b strings.Builder
	b.WriteString(".text\n")
	for _, f := range m.Funcs {
		if err := emitFunc(&b, f); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// EmitFunction emits a complete unit holding only f.
func EmitFunction(f *ir.Function) (string, error) {
	return EmitModule(&ir.Module{Name: f.Name, Funcs: []*ir.Function{f}})
}

func emitFunc(out *strings.Builder, f *ir.Function) error {
	// Body first: the prologue needs the final frame size.
	var body strings.Builder
	for _, bb := range f.Blocks {
		for _, ins := range bb.Instrs {
			if err := emitInstr(&body, ins); err != nil {
				return fmt.Errorf("%s: %s: %w", f.Name, bb.Name, err)
			}
		}
	}

	fmt.Fprintf(out, ".globl %s\n%s:\n", f.Name, f.Name)
	// Prologue
	out.WriteString("  push %rbp\n")
	out.WriteString("  mov %rsp, %rbp\n")
	if n := frameSize(f.Frame); n > 0 {
		fmt.Fprintf(out, "  sub $%d, %%rsp\n", n)
	}
	out.WriteString(body.String())
	emitEpilogue(out)
	return nil
}

func emitEpilogue(b *strings.Builder) {
	b.WriteString("  mov %rbp, %rsp\n")
	b.WriteString("  pop %rbp\n")
	b.WriteString("  ret\n")
}

func emitInstr(b *strings.Builder, ins ir.Instr) error {
	switch ins.Op {
	case ir.OpPush:
		// push only takes a sign-extended 32-bit immediate
		if ins.Arg >= math.MinInt32 && ins.Arg <= math.MaxInt32 {
			fmt.Fprintf(b, "  push $%d\n", ins.Arg)
		} else {
			fmt.Fprintf(b, "  mov $%d, %%rax\n", ins.Arg)
			b.WriteString("  push %rax\n")
		}
	case ir.OpAddr:
		b.WriteString("  mov %rbp, %rax\n")
		fmt.Fprintf(b, "  sub $%d, %%rax\n", ins.Arg)
		b.WriteString("  push %rax\n")
	case ir.OpLoad:
		b.WriteString("  pop %rax\n")
		b.WriteString("  mov (%rax), %rax\n")
		b.WriteString("  push %rax\n")
	case ir.OpStore:
		b.WriteString("  pop %rdi\n")
		b.WriteString("  pop %rax\n")
		b.WriteString("  mov %rdi, (%rax)\n")
		b.WriteString("  push %rdi\n")
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		emitArith(b, ins.Op)
	case ir.OpPop:
		b.WriteString("  pop %rax\n")
	case ir.OpRet:
		b.WriteString("  pop %rax\n")
		emitEpilogue(b)
	default:
		return fmt.Errorf("unsupported op %v", ins.Op)
	}
	return nil
}

// emitArith pops rhs into %rdi and lhs into %rax, leaving the result pushed.
func emitArith(b *strings.Builder, op ir.Op) {
	b.WriteString("  pop %rdi\n")
	b.WriteString("  pop %rax\n")
	switch op {
	case ir.OpAdd:
		b.WriteString("  add %rdi, %rax\n")
	case ir.OpSub:
		b.WriteString("  sub %rdi, %rax\n")
	case ir.OpMul:
		b.WriteString("  mul %rdi\n")
	case ir.OpDiv:
		b.WriteString("  mov $0, %rdx\n")
		b.WriteString("  div %rdi\n")
	}
	b.WriteString("  push %rax\n")
}
