package cir

import (
	"fmt"
	"slices"

	"cinder/internal/types"
)

// Function owns the ordered basic-block sequence. It is the only
// authority that inserts, removes, or repositions a block in that
// sequence, and it alone writes block parent references.
type Function struct {
	name   string
	result types.TypeID
	module *Module
	blocks []*Block
}

func (f *Function) Name() string        { return f.name }
func (f *Function) Result() types.TypeID { return f.result }
func (f *Function) Module() *Module     { return f.module }

// Entry returns the first block, or nil for a bodyless function.
func (f *Function) Entry() *Block {
	if len(f.blocks) == 0 {
		return nil
	}
	return f.blocks[0]
}

// Blocks returns the ordered block sequence as a read-only view.
func (f *Function) Blocks() []*Block { return f.blocks }

// NumBlocks returns the block count.
func (f *Function) NumBlocks() int { return len(f.blocks) }

// NewBlock creates an empty block and appends it to the block order.
func (f *Function) NewBlock() *Block {
	b := &Block{parent: f}
	f.blocks = append(f.blocks, b)
	return b
}

// NewBlockAfter creates an empty block positioned immediately after the
// given block, which must belong to this function.
func (f *Function) NewBlockAfter(after *Block) *Block {
	i := f.BlockIndex(after)
	if i < 0 {
		panic("cir: NewBlockAfter anchor not in function")
	}
	b := &Block{parent: f}
	f.blocks = slices.Insert(f.blocks, i+1, b)
	return b
}

// BlockIndex returns the block's position in the block order, or -1 when
// the block is not in this function. Linear scan; diagnostics and
// internal positioning only.
func (f *Function) BlockIndex(b *Block) int {
	return slices.Index(f.blocks, b)
}

// RemoveBlock detaches the block from the block order without dismantling
// it. The block keeps its instructions and arguments and can be spliced
// elsewhere; its parent reference is cleared.
func (f *Function) RemoveBlock(b *Block) {
	f.removeBlock(b)
}

// SpliceBlocks transfers the contiguous block range [from, to) of src
// into this function's block order before position at. The removal, the
// insertion, and every moved block's parent rewrite happen in one
// operation; no partially transferred state is ever observable.
func (f *Function) SpliceBlocks(at int, src *Function, from, to int) {
	if src == f {
		panic("cir: SpliceBlocks within one function")
	}
	if from < 0 || to < from || to > len(src.blocks) {
		panic(fmt.Sprintf("cir: splice range [%d..%d) out of range [0..%d]", from, to, len(src.blocks)))
	}
	if at < 0 || at > len(f.blocks) {
		panic(fmt.Sprintf("cir: splice position %d out of range [0..%d]", at, len(f.blocks)))
	}
	moved := make([]*Block, to-from)
	copy(moved, src.blocks[from:to])
	src.blocks = slices.Delete(src.blocks, from, to)
	for _, b := range moved {
		b.parent = f
	}
	f.blocks = slices.Insert(f.blocks, at, moved...)
}

func (f *Function) removeBlock(b *Block) {
	i := f.BlockIndex(b)
	if i < 0 {
		panic("cir: block not in function")
	}
	f.blocks = slices.Delete(f.blocks, i, i+1)
	b.parent = nil
}

func (f *Function) moveBlockAfter(b, after *Block) {
	if b == after {
		return
	}
	i := f.BlockIndex(b)
	j := f.BlockIndex(after)
	if i < 0 || j < 0 {
		panic("cir: moveBlockAfter block not in function")
	}
	f.blocks = slices.Delete(f.blocks, i, i+1)
	if i < j {
		j--
	}
	f.blocks = slices.Insert(f.blocks, j+1, b)
}
