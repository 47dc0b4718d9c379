package ir

import (
	"errors"
	"fmt"

	"github.com/tinyrange/stackcc/internal/types"
)

var (
	ErrDivideByZero   = errors.New("integer divide by zero")
	ErrStackUnderflow = errors.New("operand stack underflow")
)

// cell is one operand stack entry. Addresses are kept as negative frame
// offsets so a bad one can be caught instead of dereferenced.
type cell struct {
	v   int64
	typ types.Type
}

type machine struct {
	stack []cell
	mem   map[int64]int64
	ret   int64
}

func (m *machine) push(v int64, t types.Type) { m.stack = append(m.stack, cell{v, t}) }

func (m *machine) pop() (cell, error) {
	if len(m.stack) == 0 {
		return cell{}, ErrStackUnderflow
	}
	c := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return c, nil
}

func (m *machine) popAddr(in Instr) (int64, error) {
	c, err := m.pop()
	if err != nil {
		return 0, err
	}
	if !c.typ.IsPointer() {
		return 0, fmt.Errorf("%s: operand is not an address", in)
	}
	return c.v, nil
}

// Eval runs f the way the emitted machine code would and returns what ends
// up in the return register: the operand of the first ret, or the value of
// the last statement. Variables read before being written are 0. Arithmetic
// wraps at 64 bits; division is unsigned.
func Eval(f *Function) (int64, error) {
	m := &machine{mem: map[int64]int64{}}
	for _, bb := range f.Blocks {
		for _, in := range bb.Instrs {
			done, err := m.step(in)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", bb.Name, err)
			}
			if done {
				return m.ret, nil
			}
		}
	}
	return m.ret, nil
}

func (m *machine) step(in Instr) (bool, error) {
	switch in.Op {
	case OpPush:
		m.push(in.Arg, types.Int())
	case OpAddr:
		m.push(-in.Arg, types.PointerTo(types.Int()))
	case OpLoad:
		addr, err := m.popAddr(in)
		if err != nil {
			return false, err
		}
		m.push(m.mem[addr], types.Int())
	case OpStore:
		val, err := m.pop()
		if err != nil {
			return false, err
		}
		addr, err := m.popAddr(in)
		if err != nil {
			return false, err
		}
		m.mem[addr] = val.v
		m.push(val.v, types.Int())
	case OpAdd, OpSub, OpMul, OpDiv:
		rhs, err := m.pop()
		if err != nil {
			return false, err
		}
		lhs, err := m.pop()
		if err != nil {
			return false, err
		}
		var r int64
		switch in.Op {
		case OpAdd:
			r = lhs.v + rhs.v
		case OpSub:
			r = lhs.v - rhs.v
		case OpMul:
			r = lhs.v * rhs.v
		case OpDiv:
			if rhs.v == 0 {
				return false, ErrDivideByZero
			}
			r = int64(uint64(lhs.v) / uint64(rhs.v))
		}
		m.push(r, types.Int())
	case OpPop, OpRet:
		c, err := m.pop()
		if err != nil {
			return false, err
		}
		m.ret = c.v
		return in.Op == OpRet, nil
	default:
		return false, fmt.Errorf("unknown op %v", in.Op)
	}
	return false, nil
}
