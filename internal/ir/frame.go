package ir

import "github.com/tinyrange/stackcc/internal/types"

// Frame is the symbol table of one compilation. Offsets count down from the
// frame pointer: the first variable sits at 8, the next at 16, and so on.
// Entries are never removed.
type Frame struct {
	offsets map[string]int
	order   []string
}

func NewFrame() *Frame { return &Frame{offsets: map[string]int{}} }

// Offset returns the slot offset of name, allocating the next slot the first
// time name is seen.
func (f *Frame) Offset(name string) int {
	if off, ok := f.offsets[name]; ok {
		return off
	}
	off := (len(f.order) + 1) * types.SlotSize()
	f.offsets[name] = off
	f.order = append(f.order, name)
	return off
}

func (f *Frame) Lookup(name string) (int, bool) {
	off, ok := f.offsets[name]
	return off, ok
}

// Names lists variables in allocation order.
func (f *Frame) Names() []string { return append([]string(nil), f.order...) }

func (f *Frame) Len() int { return len(f.order) }

// Size is the number of bytes the variables occupy below the frame pointer.
func (f *Frame) Size() int { return len(f.order) * types.SlotSize() }
