package types

// Kind is the small set of machine types the stack code deals with.
type Kind int

const (
	Int64 Kind = iota
	Ptr
)

// Type describes a value on the operand stack. Every variable is an Int64;
// the lvalue path pushes a Ptr to one.
type Type struct {
	K    Kind
	Elem *Type // non-nil only when K==Ptr
}

func Int() Type { return Type{K: Int64} }

func PointerTo(elem Type) Type { return Type{K: Ptr, Elem: &elem} }

// Size returns the size in bytes for this type on our target.
func (t Type) Size() int {
	switch t.K {
	case Int64, Ptr:
		return 8
	default:
		return 8
	}
}

func (t Type) IsPointer() bool { return t.K == Ptr }

// SlotSize is the width of one variable's stack slot.
func SlotSize() int { return Int().Size() }

// StackAlign is the required %rsp alignment at call boundaries.
const StackAlign = 16
