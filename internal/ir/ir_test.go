package ir_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tinyrange/stackcc/internal/ast"
	"github.com/tinyrange/stackcc/internal/ir"
	"github.com/tinyrange/stackcc/internal/parser"
)

func build(t *testing.T, src string) *ir.Function {
	t.Helper()
	prog, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", src, err)
	}
	f, err := ir.Build(prog)
	if err != nil {
		t.Fatalf("Build(%q): %v", src, err)
	}
	return f
}

func ops(bb *ir.BasicBlock) []ir.Instr { return bb.Instrs }

func TestBuild_Lowering(t *testing.T) {
	f := build(t, "x = 2*3+4; return x;")
	if f.Name != ir.EntryName {
		t.Errorf("name %q, want %q", f.Name, ir.EntryName)
	}
	if len(f.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(f.Blocks))
	}
	want0 := []ir.Instr{
		{Op: ir.OpAddr, Arg: 8},
		{Op: ir.OpPush, Arg: 2},
		{Op: ir.OpPush, Arg: 3},
		{Op: ir.OpMul},
		{Op: ir.OpPush, Arg: 4},
		{Op: ir.OpAdd},
		{Op: ir.OpStore},
		{Op: ir.OpPop},
	}
	if got := ops(f.Blocks[0]); !reflect.DeepEqual(got, want0) {
		t.Errorf("stmt0:\n got %v\nwant %v", got, want0)
	}
	want1 := []ir.Instr{
		{Op: ir.OpAddr, Arg: 8},
		{Op: ir.OpLoad},
		{Op: ir.OpRet},
	}
	if got := ops(f.Blocks[1]); !reflect.DeepEqual(got, want1) {
		t.Errorf("stmt1:\n got %v\nwant %v", got, want1)
	}
}

func TestBuild_FirstUseOffsets(t *testing.T) {
	f := build(t, "b = 1; a = b + c; b = a; c;")
	want := map[string]int{"b": 8, "a": 16, "c": 24}
	for name, off := range want {
		got, ok := f.Frame.Lookup(name)
		if !ok || got != off {
			t.Errorf("%s: got offset %d (%v), want %d", name, got, ok, off)
		}
	}
	if got := f.Frame.Names(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("allocation order %v", got)
	}
	if f.Frame.Size() != 24 {
		t.Errorf("frame size %d, want 24", f.Frame.Size())
	}
	// every reference to b uses the same slot
	for _, bb := range f.Blocks {
		for _, in := range bb.Instrs {
			if in.Op == ir.OpAddr && in.Arg != 8 && in.Arg != 16 && in.Arg != 24 {
				t.Errorf("%s: unexpected slot %d", bb.Name, in.Arg)
			}
		}
	}
}

func TestBuild_AssignTargetError(t *testing.T) {
	for _, src := range []string{"(a+b)=1;", "3=4;", "x = (1 = 2);", "return (a*2) = 5;"} {
		prog, err := parser.ParseSource(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		_, err = ir.Build(prog)
		var target *ir.AssignTargetError
		if !errors.As(err, &target) {
			t.Errorf("%q: got %v, want *AssignTargetError", src, err)
			continue
		}
		if _, ok := target.Target.(*ast.Ident); ok {
			t.Errorf("%q: error names a variable target", src)
		}
	}
}

func TestBuildModule(t *testing.T) {
	prog, _ := parser.ParseSource("1;")
	m := ir.NewModule("test")
	if err := ir.BuildModule(prog, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Funcs) != 1 || m.Funcs[0].Name != "main" {
		t.Errorf("got %v", m.Funcs)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"x = 2*3+4; return x;", 10},
		{"1+2*3;", 7},
		{"(1+2)*3;", 9},
		{"a=b=5; a+b;", 10},
		{"a = 7; b = a * 2; return b - a;", 7},
		{"10/3;", 3},
		{"10-3-2;", 5},
		{"return 1; return 2;", 1},
		{"x = 3; (x = x + 1) * 2;", 8},
		{"y;", 0},
		{"", 0},
		{"3-5;", -2},
	}
	for _, tc := range tests {
		got, err := ir.Eval(build(t, tc.src))
		if err != nil {
			t.Errorf("%q: %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %d, want %d", tc.src, got, tc.want)
		}
	}
}

func TestEval_UnsignedDivision(t *testing.T) {
	// 0-2 is 2^64-2 to div, halving gives 2^63-1
	got, err := ir.Eval(build(t, "(0-2)/2;"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 9223372036854775807 {
		t.Errorf("got %d", got)
	}
}

func TestEval_DivideByZero(t *testing.T) {
	_, err := ir.Eval(build(t, "x = 0; 1/x;"))
	if !errors.Is(err, ir.ErrDivideByZero) {
		t.Errorf("got %v, want ErrDivideByZero", err)
	}
}

func TestEval_MalformedCode(t *testing.T) {
	f := &ir.Function{Name: "main", Frame: ir.NewFrame(), Blocks: []*ir.BasicBlock{
		{Name: "stmt0", Instrs: []ir.Instr{{Op: ir.OpAdd}}},
	}}
	if _, err := ir.Eval(f); !errors.Is(err, ir.ErrStackUnderflow) {
		t.Errorf("got %v, want ErrStackUnderflow", err)
	}
	f.Blocks[0].Instrs = []ir.Instr{{Op: ir.OpPush, Arg: 1}, {Op: ir.OpLoad}}
	if _, err := ir.Eval(f); err == nil {
		t.Errorf("load through an integer succeeded")
	}
}

func TestFunctionString(t *testing.T) {
	got := build(t, "a = 1;").String()
	want := "main:\nstmt0:\n  addr 8\n  push 1\n  store\n  pop\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
