package cir

import (
	"fmt"
	"slices"
)

// Block is a basic block: a straight-line instruction sequence that, when
// well-formed, ends in a single terminator. Blocks are created only by
// their owning Function and carry a non-owning back-reference to it.
type Block struct {
	parent *Function
	instrs []Instruction
	args   []*Argument

	// Head of the intrusive predecessor chain, managed entirely by
	// Successor link/unlink.
	preds *Successor
}

// Parent returns the owning function, or nil while detached.
func (b *Block) Parent() *Function { return b.parent }

// Module returns the module reachable through the owning function.
func (b *Block) Module() *Module {
	if b.parent == nil {
		return nil
	}
	return b.parent.module
}

// IsEntry reports whether this block is its function's entry block.
func (b *Block) IsEntry() bool {
	return b.parent != nil && len(b.parent.blocks) > 0 && b.parent.blocks[0] == b
}

// DebugID returns the block's position in its function's block order, or
// -1 while detached. Linear scan; diagnostics only.
func (b *Block) DebugID() int {
	if b.parent == nil {
		return -1
	}
	return b.parent.BlockIndex(b)
}

// Instruction list

// Empty reports whether the block holds no instructions.
func (b *Block) Empty() bool { return len(b.instrs) == 0 }

// NumInstructions returns the instruction count.
func (b *Block) NumInstructions() int { return len(b.instrs) }

// Instructions returns the ordered instruction list as a read-only view.
// The view is invalidated by any mutation of the list.
func (b *Block) Instructions() []Instruction { return b.instrs }

// Front returns the first instruction.
func (b *Block) Front() Instruction {
	if len(b.instrs) == 0 {
		panic("cir: Front on empty block")
	}
	return b.instrs[0]
}

// Back returns the last instruction.
func (b *Block) Back() Instruction {
	if len(b.instrs) == 0 {
		panic("cir: Back on empty block")
	}
	return b.instrs[len(b.instrs)-1]
}

// Terminator returns the last instruction asserted to the Terminator
// capability. An empty block or a non-terminator last instruction is
// malformed IR, a bug in the calling pass, and panics.
func (b *Block) Terminator() Terminator {
	if len(b.instrs) == 0 {
		panic("cir: terminator requested from empty block")
	}
	term, ok := b.instrs[len(b.instrs)-1].(Terminator)
	if !ok {
		panic("cir: block does not end in a terminator")
	}
	return term
}

// PushBack appends a detached instruction to the block.
func (b *Block) PushBack(inst Instruction) {
	b.adopt(inst)
	b.instrs = append(b.instrs, inst)
}

// PushFront prepends a detached instruction to the block.
func (b *Block) PushFront(inst Instruction) {
	b.InsertAt(0, inst)
}

// InsertAt inserts a detached instruction before position i; i may equal
// the instruction count to append.
func (b *Block) InsertAt(i int, inst Instruction) {
	if i < 0 || i > len(b.instrs) {
		panic(fmt.Sprintf("cir: instruction insert index %d out of range [0..%d]", i, len(b.instrs)))
	}
	b.adopt(inst)
	b.instrs = slices.Insert(b.instrs, i, inst)
}

// IndexOf returns the instruction's position in the list, or -1.
func (b *Block) IndexOf(inst Instruction) int {
	return slices.Index(b.instrs, inst)
}

// Remove unlinks the instruction without destroying it: its operands and
// successor edges stay live, and it can be inserted into another block.
func (b *Block) Remove(inst Instruction) {
	i := b.IndexOf(inst)
	if i < 0 {
		panic("cir: Remove of instruction not in block")
	}
	b.RemoveAt(i)
}

// RemoveAt unlinks and returns the instruction at position i.
func (b *Block) RemoveAt(i int) Instruction {
	b.checkInstIndex(i)
	inst := b.instrs[i]
	inst.setParent(nil)
	b.instrs = slices.Delete(b.instrs, i, i+1)
	return inst
}

// Erase unlinks the instruction and drops its outward references,
// unregistering any successor edges it owned.
func (b *Block) Erase(inst Instruction) {
	b.Remove(inst)
	inst.DropAllReferences()
}

// EraseAt erases the instruction at position i and returns i, the valid
// continuation point for an index-based walk.
func (b *Block) EraseAt(i int) int {
	inst := b.RemoveAt(i)
	inst.DropAllReferences()
	return i
}

// SpliceAtEnd transfers all of other's instructions to the end of this
// block, in order, leaving other empty. Ownership moves; nothing is
// copied.
func (b *Block) SpliceAtEnd(other *Block) {
	for _, inst := range other.instrs {
		inst.setParent(b)
	}
	b.instrs = append(b.instrs, other.instrs...)
	other.instrs = nil
}

// Split moves the instructions from position i through the end into a new
// block created immediately after this one in the function order.
//
// This block is deliberately left without a terminator; no connecting
// branch is synthesized. The caller decides which branch kind restores
// well-formedness, which keeps Split usable both for inserting a new exit
// and for inserting a new entry.
func (b *Block) Split(i int) *Block {
	if b.parent == nil {
		panic("cir: Split on detached block")
	}
	if i < 0 || i > len(b.instrs) {
		panic(fmt.Sprintf("cir: split index %d out of range [0..%d]", i, len(b.instrs)))
	}
	nb := b.parent.NewBlockAfter(b)
	moved := b.instrs[i:]
	b.instrs = b.instrs[:i:i]
	nb.instrs = make([]Instruction, len(moved))
	copy(nb.instrs, moved)
	for _, inst := range nb.instrs {
		inst.setParent(nb)
	}
	return nb
}

// MoveAfter repositions this block immediately after other in their
// function's block order. Both blocks must belong to the same function.
func (b *Block) MoveAfter(other *Block) {
	if b.parent == nil || b.parent != other.parent {
		panic("cir: MoveAfter across functions")
	}
	b.parent.moveBlockAfter(b, other)
}

// EraseFromParent unlinks the block from its function and dismantles it:
// arguments are dropped, every instruction releases its outward
// references, and the instruction list is released.
func (b *Block) EraseFromParent() {
	if b.parent == nil {
		panic("cir: EraseFromParent on detached block")
	}
	b.DropAllReferences()
	b.parent.removeBlock(b)
	for _, inst := range b.instrs {
		inst.setParent(nil)
	}
	b.instrs = nil
}

// DropAllReferences clears the argument list and instructs every owned
// instruction to release its outward references, breaking any reference
// cycles through this block.
func (b *Block) DropAllReferences() {
	b.DropAllArguments()
	for _, inst := range b.instrs {
		inst.DropAllReferences()
	}
}

// Successors and predecessors

// Successors reads through to the terminator's edge sequence; there is no
// separately stored successor list.
func (b *Block) Successors() []*Successor {
	return b.Terminator().Successors()
}

// SuccessorBlocks materializes the targets of the terminator's edges.
func (b *Block) SuccessorBlocks() []*Block {
	succs := b.Successors()
	out := make([]*Block, len(succs))
	for i, s := range succs {
		out[i] = s.Block()
	}
	return out
}

// SuccEmpty reports whether the terminator owns no edges.
func (b *Block) SuccEmpty() bool { return len(b.Successors()) == 0 }

// SingleSuccessor returns the sole successor block if exactly one edge
// exists, else nil.
func (b *Block) SingleSuccessor() *Block {
	succs := b.Successors()
	if len(succs) != 1 {
		return nil
	}
	return succs[0].Block()
}

// IsSuccessorBlock reports whether some edge of this block targets other.
func (b *Block) IsSuccessorBlock(other *Block) bool {
	for _, s := range b.Successors() {
		if s.Block() == other {
			return true
		}
	}
	return false
}

// PredEmpty reports whether no live edge targets this block.
func (b *Block) PredEmpty() bool { return b.preds == nil }

// FirstPred returns the head of the predecessor chain for an
// allocation-free walk via NextPred, or nil.
func (b *Block) FirstPred() *Successor { return b.preds }

// Predecessors materializes the blocks owning edges that target this
// block, most recently registered first.
func (b *Block) Predecessors() []*Block {
	var out []*Block
	for s := b.preds; s != nil; s = s.next {
		out = append(out, s.Pred())
	}
	return out
}

// SinglePredecessor returns the sole predecessor block if the chain holds
// exactly one edge, else nil.
func (b *Block) SinglePredecessor() *Block {
	if b.preds == nil || b.preds.next != nil {
		return nil
	}
	return b.preds.Pred()
}

// IsPredecessorBlock reports whether other owns an edge targeting this
// block.
func (b *Block) IsPredecessorBlock(other *Block) bool {
	for s := b.preds; s != nil; s = s.next {
		if s.Pred() == other {
			return true
		}
	}
	return false
}

func (b *Block) adopt(inst Instruction) {
	if inst.Parent() != nil {
		panic("cir: instruction already belongs to a block")
	}
	inst.setParent(b)
}

func (b *Block) checkInstIndex(i int) {
	if i < 0 || i >= len(b.instrs) {
		panic(fmt.Sprintf("cir: instruction index %d out of range [0..%d)", i, len(b.instrs)))
	}
}
