package cir

import "cinder/internal/types"

// Instruction is the capability every sequenced member of a block's
// instruction list carries. Concrete instructions embed InstBase, which
// supplies the list-membership hooks; only the owning block reparents an
// instruction.
type Instruction interface {
	// Parent returns the block this instruction currently belongs to,
	// or nil while detached.
	Parent() *Block

	// DropAllReferences releases the instruction's outward references
	// (operands and, for terminators, successor edges). Used before
	// destruction to break cycles; the instruction stays structurally
	// valid but refers to nothing.
	DropAllReferences()

	setParent(*Block)
}

// Terminator is the capability a block's last instruction must satisfy.
// A terminator owns its successor edges; their count and meaning depend
// on the concrete instruction kind.
type Terminator interface {
	Instruction

	// Successors returns the terminator's owned edge sequence. Callers
	// mutate targets only through (*Successor).Retarget.
	Successors() []*Successor
}

// InstBase carries the block membership shared by all instructions.
type InstBase struct {
	parent *Block
}

func (ib *InstBase) Parent() *Block      { return ib.parent }
func (ib *InstBase) setParent(b *Block)  { ib.parent = b }
func (ib *InstBase) DropAllReferences() {}

// Value is the minimal operand capability the core needs: a type tag.
// The full operand/value system lives outside this package; Argument and
// Undef are the in-core implementations.
type Value interface {
	Type() types.TypeID
}

// Undef is a placeholder operand of a given type.
type Undef struct {
	T types.TypeID
}

func (u Undef) Type() types.TypeID { return u.T }

// OpInst is a plain named instruction with opaque operands. It stands in
// for the external instruction set in builders and tests.
type OpInst struct {
	InstBase
	Name     string
	Operands []Value
}

// NewOp creates a detached plain instruction.
func NewOp(name string, operands ...Value) *OpInst {
	return &OpInst{Name: name, Operands: operands}
}

func (op *OpInst) DropAllReferences() {
	op.Operands = nil
}
