package ast

import (
	"fmt"
	"strings"
)

// Program is the statement list of one compilation unit, in source order.
type Program struct {
	Stmts []Stmt
}

type Node interface{ node() }

type Stmt interface {
	Node
	isStmt()
}

// ExprStmt is a `;`-terminated expression whose value is discarded.
type ExprStmt struct{ X Expr }

func (*ExprStmt) isStmt() {}
func (*ExprStmt) node()   {}

type ReturnStmt struct{ Expr Expr }

func (*ReturnStmt) isStmt() {}
func (*ReturnStmt) node()   {}

type Expr interface {
	Node
	isExpr()
}

type Ident struct{ Name string }

func (*Ident) isExpr() {}
func (*Ident) node()   {}

type IntLit struct{ Value int64 }

func (*IntLit) isExpr() {}
func (*IntLit) node()   {}

// BinaryExpr always has both operands. For OpAssign, Left is whatever the
// parser found; whether it is assignable is decided later.
type BinaryExpr struct {
	Op          BinOp
	Left, Right Expr
}

func (*BinaryExpr) isExpr() {}
func (*BinaryExpr) node()   {}

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpAssign
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAssign:
		return "="
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// String renders n as an s-expression: (+ 1 (* 2 3)), (= a 1), (return x).
func String(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *IntLit:
		fmt.Fprintf(b, "%d", n.Value)
	case *Ident:
		b.WriteString(n.Name)
	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", n.Op)
		write(b, n.Left)
		b.WriteByte(' ')
		write(b, n.Right)
		b.WriteByte(')')
	case *ExprStmt:
		write(b, n.X)
	case *ReturnStmt:
		b.WriteString("(return ")
		write(b, n.Expr)
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

// String renders every statement on its own line.
func (p *Program) String() string {
	lines := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		lines[i] = String(s)
	}
	return strings.Join(lines, "\n")
}
