package ir

import (
	"fmt"
	"strings"

	"github.com/tinyrange/stackcc/internal/ast"
)

type Module struct {
	Name  string
	Funcs []*Function
}

func NewModule(name string) *Module { return &Module{Name: name} }

// EntryName is the symbol of the single function a program compiles to.
const EntryName = "main"

// Function is the lowered program: one block per source statement, all
// sharing one frame.
type Function struct {
	Name   string
	Frame  *Frame
	Blocks []*BasicBlock
}

type BasicBlock struct {
	Name   string
	Instrs []Instr
}

// Op is an operation of the implicit operand stack. Each one pops its
// operands and pushes at most one result.
type Op int

const (
	OpPush  Op = iota // push Arg
	OpAddr            // push frame base - Arg
	OpLoad            // pop address, push the value stored there
	OpStore           // pop value, pop address, store, push value
	OpAdd
	OpSub
	OpMul
	OpDiv // unsigned, remainder cleared first
	OpPop // pop into the return register
	OpRet // pop into the return register and leave the function
)

var opNames = [...]string{
	OpPush:  "push",
	OpAddr:  "addr",
	OpLoad:  "load",
	OpStore: "store",
	OpAdd:   "add",
	OpSub:   "sub",
	OpMul:   "mul",
	OpDiv:   "div",
	OpPop:   "pop",
	OpRet:   "ret",
}

func (op Op) String() string {
	if int(op) >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

type Instr struct {
	Op  Op
	Arg int64 // constant for OpPush, slot offset for OpAddr
}

func (in Instr) String() string {
	switch in.Op {
	case OpPush, OpAddr:
		return fmt.Sprintf("%s %d", in.Op, in.Arg)
	default:
		return in.Op.String()
	}
}

// String lists the function one instruction per line, blocks labelled.
func (f *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", f.Name)
	for _, bb := range f.Blocks {
		fmt.Fprintf(&b, "%s:\n", bb.Name)
		for _, in := range bb.Instrs {
			fmt.Fprintf(&b, "  %s\n", in)
		}
	}
	return b.String()
}

// AssignTargetError is returned when the left side of `=` is not a bare
// variable reference.
type AssignTargetError struct {
	Target ast.Expr
}

func (e *AssignTargetError) Error() string {
	return fmt.Sprintf("left side of assignment must be a variable, got %s", ast.String(e.Target))
}

type builder struct {
	fn  *Function
	cur *BasicBlock
}

// BuildModule lowers prog into a new entry function appended to m.
func BuildModule(prog *ast.Program, m *Module) error {
	f, err := Build(prog)
	if err != nil {
		return err
	}
	m.Funcs = append(m.Funcs, f)
	return nil
}

// Build lowers prog to stack code. Variables get frame slots in the order
// they are first referenced.
func Build(prog *ast.Program) (*Function, error) {
	bld := &builder{fn: &Function{Name: EntryName, Frame: NewFrame()}}
	for i, s := range prog.Stmts {
		bld.cur = &BasicBlock{Name: fmt.Sprintf("stmt%d", i)}
		bld.fn.Blocks = append(bld.fn.Blocks, bld.cur)
		if err := bld.stmt(s); err != nil {
			return nil, err
		}
	}
	return bld.fn, nil
}

func (b *builder) emit(op Op, arg int64) { b.cur.Instrs = append(b.cur.Instrs, Instr{Op: op, Arg: arg}) }

func (b *builder) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExprStmt:
		if err := b.expr(s.X); err != nil {
			return err
		}
		b.emit(OpPop, 0)
	case *ast.ReturnStmt:
		if err := b.expr(s.Expr); err != nil {
			return err
		}
		b.emit(OpRet, 0)
	default:
		return fmt.Errorf("unsupported statement %T", s)
	}
	return nil
}

// lval pushes the address of e, which must be a variable.
func (b *builder) lval(e ast.Expr) error {
	id, ok := e.(*ast.Ident)
	if !ok {
		return &AssignTargetError{Target: e}
	}
	b.emit(OpAddr, int64(b.fn.Frame.Offset(id.Name)))
	return nil
}

func (b *builder) expr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.IntLit:
		b.emit(OpPush, e.Value)
	case *ast.Ident:
		if err := b.lval(e); err != nil {
			return err
		}
		b.emit(OpLoad, 0)
	case *ast.BinaryExpr:
		if e.Op == ast.OpAssign {
			if err := b.lval(e.Left); err != nil {
				return err
			}
			if err := b.expr(e.Right); err != nil {
				return err
			}
			b.emit(OpStore, 0)
			return nil
		}
		if err := b.expr(e.Left); err != nil {
			return err
		}
		if err := b.expr(e.Right); err != nil {
			return err
		}
		op, ok := arith[e.Op]
		if !ok {
			return fmt.Errorf("unsupported operator %v", e.Op)
		}
		b.emit(op, 0)
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
	return nil
}

var arith = map[ast.BinOp]Op{
	ast.OpAdd: OpAdd,
	ast.OpSub: OpSub,
	ast.OpMul: OpMul,
	ast.OpDiv: OpDiv,
}
