package cir

// BranchInst transfers control unconditionally. Args are passed
// positionally to the destination's phi arguments; keeping the two lists
// in sync is the caller's contract, checked by Verify.
type BranchInst struct {
	InstBase
	Args []Value

	succs []*Successor
}

// NewBranch creates a detached unconditional branch.
func NewBranch(dest *Block, args ...Value) *BranchInst {
	br := &BranchInst{Args: args}
	br.succs = []*Successor{newSuccessor(br, dest)}
	return br
}

func (br *BranchInst) Successors() []*Successor { return br.succs }

// Dest returns the branch target.
func (br *BranchInst) Dest() *Block { return br.succs[0].Block() }

func (br *BranchInst) DropAllReferences() {
	br.Args = nil
	dropEdges(br.succs)
}

// CondBranchInst transfers control to one of two destinations depending
// on Cond. Each destination has its own positional operand list.
type CondBranchInst struct {
	InstBase
	Cond      Value
	TrueArgs  []Value
	FalseArgs []Value

	succs []*Successor
}

// NewCondBranch creates a detached two-way conditional branch.
func NewCondBranch(cond Value, trueDest *Block, trueArgs []Value, falseDest *Block, falseArgs []Value) *CondBranchInst {
	cb := &CondBranchInst{Cond: cond, TrueArgs: trueArgs, FalseArgs: falseArgs}
	cb.succs = []*Successor{
		newSuccessor(cb, trueDest),
		newSuccessor(cb, falseDest),
	}
	return cb
}

func (cb *CondBranchInst) Successors() []*Successor { return cb.succs }

// TrueDest returns the taken-branch target.
func (cb *CondBranchInst) TrueDest() *Block { return cb.succs[0].Block() }

// FalseDest returns the fallthrough target.
func (cb *CondBranchInst) FalseDest() *Block { return cb.succs[1].Block() }

func (cb *CondBranchInst) DropAllReferences() {
	cb.Cond = nil
	cb.TrueArgs = nil
	cb.FalseArgs = nil
	dropEdges(cb.succs)
}

// SwitchInst dispatches over an operand to N destinations. Case payloads
// and selection semantics are opaque to the graph core.
type SwitchInst struct {
	InstBase
	Operand Value

	succs []*Successor
}

// NewSwitch creates a detached multi-way dispatch over dests.
func NewSwitch(operand Value, dests ...*Block) *SwitchInst {
	sw := &SwitchInst{Operand: operand}
	sw.succs = make([]*Successor, len(dests))
	for i, dest := range dests {
		sw.succs[i] = newSuccessor(sw, dest)
	}
	return sw
}

func (sw *SwitchInst) Successors() []*Successor { return sw.succs }

func (sw *SwitchInst) DropAllReferences() {
	sw.Operand = nil
	dropEdges(sw.succs)
}

// ReturnInst leaves the function. Result may be nil for a void return.
// It terminates its block with zero successor edges.
type ReturnInst struct {
	InstBase
	Result Value
}

// NewReturn creates a detached return.
func NewReturn(result Value) *ReturnInst {
	return &ReturnInst{Result: result}
}

func (r *ReturnInst) Successors() []*Successor { return nil }

func (r *ReturnInst) DropAllReferences() {
	r.Result = nil
}

// UnreachableInst marks a point control flow must never reach. Zero
// successor edges.
type UnreachableInst struct {
	InstBase
}

// NewUnreachable creates a detached unreachable marker.
func NewUnreachable() *UnreachableInst {
	return &UnreachableInst{}
}

func (u *UnreachableInst) Successors() []*Successor { return nil }

func dropEdges(succs []*Successor) {
	for _, s := range succs {
		s.unlink()
	}
}
