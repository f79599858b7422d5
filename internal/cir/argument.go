package cir

import (
	"fmt"
	"slices"

	"cinder/internal/decls"
	"cinder/internal/types"
)

// OwnershipKind is an opaque lifetime/uniqueness annotation on a block
// argument. The graph core stores it untouched; later passes interpret it.
type OwnershipKind uint8

const (
	OwnershipNone OwnershipKind = iota
	OwnershipOwned
	OwnershipGuaranteed
	OwnershipUnowned
	OwnershipAny
)

func (k OwnershipKind) String() string {
	switch k {
	case OwnershipNone:
		return "none"
	case OwnershipOwned:
		return "owned"
	case OwnershipGuaranteed:
		return "guaranteed"
	case OwnershipUnowned:
		return "unowned"
	case OwnershipAny:
		return "any"
	default:
		return fmt.Sprintf("ownership(%d)", uint8(k))
	}
}

// ArgKind discriminates the two argument variants.
type ArgKind uint8

const (
	// FunctionArg represents an incoming parameter on the entry block.
	FunctionArg ArgKind = iota
	// PhiArg represents the value selected at this position depending on
	// which predecessor branched in.
	PhiArg
)

func (k ArgKind) String() string {
	if k == PhiArg {
		return "phi"
	}
	return "function"
}

// Argument is a positional value owned by exactly one block. Arguments
// are created and destroyed only through their block's insert, replace,
// and erase operations; a detached Argument never exists from a caller's
// point of view.
type Argument struct {
	block     *Block
	index     int
	kind      ArgKind
	typ       types.TypeID
	ownership OwnershipKind
	decl      decls.DeclID
}

func (a *Argument) Block() *Block             { return a.block }
func (a *Argument) Index() int                { return a.index }
func (a *Argument) ArgKind() ArgKind          { return a.kind }
func (a *Argument) Type() types.TypeID        { return a.typ }
func (a *Argument) Ownership() OwnershipKind  { return a.ownership }
func (a *Argument) Decl() decls.DeclID        { return a.decl }

// IsPhi reports whether this is a phi argument.
func (a *Argument) IsPhi() bool { return a.kind == PhiArg }

// NewFunctionArgument appends a function argument to the block.
func (b *Block) NewFunctionArgument(typ types.TypeID, decl decls.DeclID) *Argument {
	return b.insertArgument(len(b.args), FunctionArg, typ, OwnershipNone, decl)
}

// InsertFunctionArgument inserts a function argument at index i; later
// arguments shift up by one.
func (b *Block) InsertFunctionArgument(i int, typ types.TypeID, kind OwnershipKind, decl decls.DeclID) *Argument {
	return b.insertArgument(i, FunctionArg, typ, kind, decl)
}

// NewPhiArgument appends a phi argument to the block. Every predecessor
// terminator's positional operand list for this block must be extended by
// the caller to stay in sync; Verify checks the counts.
func (b *Block) NewPhiArgument(typ types.TypeID, kind OwnershipKind, decl decls.DeclID) *Argument {
	return b.insertArgument(len(b.args), PhiArg, typ, kind, decl)
}

// InsertPhiArgument inserts a phi argument at index i; later arguments
// shift up by one.
func (b *Block) InsertPhiArgument(i int, typ types.TypeID, kind OwnershipKind, decl decls.DeclID) *Argument {
	return b.insertArgument(i, PhiArg, typ, kind, decl)
}

// ReplacePhiArgument replaces the argument at index i with a fresh phi
// argument carrying the given attributes. Adjacent indices are untouched;
// the old argument is detached and dead.
func (b *Block) ReplacePhiArgument(i int, typ types.TypeID, kind OwnershipKind, decl decls.DeclID) *Argument {
	b.checkArgIndex(i)
	old := b.args[i]
	old.block = nil
	old.index = -1
	arg := &Argument{block: b, index: i, kind: PhiArg, typ: typ, ownership: kind, decl: decl}
	b.args[i] = arg
	return arg
}

// EraseArgument removes the argument at index i; later arguments shift
// down by one.
func (b *Block) EraseArgument(i int) {
	b.checkArgIndex(i)
	old := b.args[i]
	old.block = nil
	old.index = -1
	b.args = slices.Delete(b.args, i, i+1)
	b.renumberArgs(i)
}

// DropAllArguments removes every argument unconditionally.
func (b *Block) DropAllArguments() {
	for _, arg := range b.args {
		arg.block = nil
		arg.index = -1
	}
	b.args = nil
}

// NumArguments returns the argument count.
func (b *Block) NumArguments() int { return len(b.args) }

// ArgsEmpty reports whether the block has no arguments.
func (b *Block) ArgsEmpty() bool { return len(b.args) == 0 }

// Argument returns the argument at index i.
func (b *Block) Argument(i int) *Argument {
	b.checkArgIndex(i)
	return b.args[i]
}

// Arguments returns the ordered argument list as a read-only view.
func (b *Block) Arguments() []*Argument { return b.args }

// PhiArguments returns the phi subset of the argument list, in order.
func (b *Block) PhiArguments() []*Argument {
	return b.filterArgs(PhiArg)
}

// FunctionArguments returns the function-argument subset, in order.
func (b *Block) FunctionArguments() []*Argument {
	return b.filterArgs(FunctionArg)
}

// CloneArgumentList appends copies of other's arguments, preserving
// variant, type, ownership, and decl.
func (b *Block) CloneArgumentList(other *Block) {
	for _, arg := range other.args {
		b.insertArgument(len(b.args), arg.kind, arg.typ, arg.ownership, arg.decl)
	}
}

func (b *Block) filterArgs(kind ArgKind) []*Argument {
	var out []*Argument
	for _, arg := range b.args {
		if arg.kind == kind {
			out = append(out, arg)
		}
	}
	return out
}

func (b *Block) insertArgument(i int, kind ArgKind, typ types.TypeID, ownership OwnershipKind, decl decls.DeclID) *Argument {
	if i < 0 || i > len(b.args) {
		panic(fmt.Sprintf("cir: argument insert index %d out of range [0..%d]", i, len(b.args)))
	}
	arg := &Argument{block: b, kind: kind, typ: typ, ownership: ownership, decl: decl}
	b.args = slices.Insert(b.args, i, arg)
	b.renumberArgs(i)
	return arg
}

func (b *Block) renumberArgs(from int) {
	for j := from; j < len(b.args); j++ {
		b.args[j].index = j
	}
}

func (b *Block) checkArgIndex(i int) {
	if i < 0 || i >= len(b.args) {
		panic(fmt.Sprintf("cir: argument index %d out of range [0..%d)", i, len(b.args)))
	}
}
