package cir

import (
	"errors"
	"fmt"
)

// VerifyModule checks graph invariants for every function in the module.
func VerifyModule(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.funcs {
		if err := VerifyFunction(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.name, err))
		}
	}
	return errors.Join(errs...)
}

// VerifyFunction checks the well-formedness invariants of one function's
// graph:
//
//  1. every block is parented here, non-empty, and terminator-last;
//  2. every successor edge targets a block of this function and is
//     registered exactly once on its target's predecessor chain;
//  3. every predecessor-chain entry belongs to a live terminator of this
//     function and points back at the chain's block;
//  4. argument bookkeeping (parent, index, variant placement) is exact;
//  5. branch operand lists positionally match their targets' arguments.
func VerifyFunction(f *Function) error {
	if f == nil {
		return nil
	}
	var errs []error
	for i, b := range f.blocks {
		errs = append(errs, verifyBlockShape(f, i, b)...)
		errs = append(errs, verifyArguments(i, b)...)
		if !b.Empty() {
			if _, ok := b.Back().(Terminator); ok {
				errs = append(errs, verifyEdges(f, i, b)...)
				errs = append(errs, verifyBranchOperands(i, b)...)
			}
		}
		errs = append(errs, verifyPredChain(f, i, b)...)
	}
	return errors.Join(errs...)
}

func verifyBlockShape(f *Function, i int, b *Block) []error {
	var errs []error
	if b.parent != f {
		errs = append(errs, fmt.Errorf("bb%d: wrong parent function", i))
	}
	if b.Empty() {
		errs = append(errs, fmt.Errorf("bb%d: empty block", i))
		return errs
	}
	n := len(b.instrs)
	if _, ok := b.instrs[n-1].(Terminator); !ok {
		errs = append(errs, fmt.Errorf("bb%d: last instruction is not a terminator", i))
	}
	for j, inst := range b.instrs {
		if inst.Parent() != b {
			errs = append(errs, fmt.Errorf("bb%d: instruction %d has wrong parent block", i, j))
		}
		if _, ok := inst.(Terminator); ok && j != n-1 {
			errs = append(errs, fmt.Errorf("bb%d: terminator at position %d is not last", i, j))
		}
	}
	return errs
}

func verifyArguments(i int, b *Block) []error {
	var errs []error
	for j, arg := range b.args {
		if arg.block != b {
			errs = append(errs, fmt.Errorf("bb%d: argument %d has wrong parent block", i, j))
		}
		if arg.index != j {
			errs = append(errs, fmt.Errorf("bb%d: argument %d records index %d", i, j, arg.index))
		}
		if b.IsEntry() && arg.kind != FunctionArg {
			errs = append(errs, fmt.Errorf("bb%d: entry block argument %d is not a function argument", i, j))
		}
		if !b.IsEntry() && arg.kind != PhiArg {
			errs = append(errs, fmt.Errorf("bb%d: non-entry block argument %d is not a phi argument", i, j))
		}
	}
	return errs
}

func verifyEdges(f *Function, i int, b *Block) []error {
	var errs []error
	term := b.Terminator()
	for j, s := range term.Successors() {
		if s.Owner() != term {
			errs = append(errs, fmt.Errorf("bb%d: successor %d owned by a foreign terminator", i, j))
			continue
		}
		target := s.Block()
		if target == nil {
			errs = append(errs, fmt.Errorf("bb%d: successor %d has no target", i, j))
			continue
		}
		if target.parent != f {
			errs = append(errs, fmt.Errorf("bb%d: successor %d targets a block outside this function", i, j))
			continue
		}
		count := 0
		for p := target.preds; p != nil; p = p.next {
			if p == s {
				count++
			}
		}
		if count != 1 {
			errs = append(errs, fmt.Errorf("bb%d: successor %d registered %d times on its target's predecessor chain", i, j, count))
		}
	}
	return errs
}

func verifyPredChain(f *Function, i int, b *Block) []error {
	var errs []error
	for s := b.preds; s != nil; s = s.next {
		if s.Block() != b {
			errs = append(errs, fmt.Errorf("bb%d: predecessor chain entry targets a different block", i))
			continue
		}
		src := s.Pred()
		if src == nil {
			errs = append(errs, fmt.Errorf("bb%d: predecessor edge from a detached terminator", i))
			continue
		}
		if src.parent != f {
			errs = append(errs, fmt.Errorf("bb%d: predecessor edge from a block outside this function", i))
			continue
		}
		found := false
		for _, owned := range s.Owner().Successors() {
			if owned == s {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("bb%d: predecessor chain entry not owned by its terminator", i))
		}
	}
	return errs
}

func verifyBranchOperands(i int, b *Block) []error {
	var errs []error
	check := func(what string, args []Value, dest *Block) {
		if dest == nil {
			return
		}
		if len(args) != dest.NumArguments() {
			errs = append(errs, fmt.Errorf("bb%d: %s passes %d operands, target bb%d takes %d",
				i, what, len(args), dest.DebugID(), dest.NumArguments()))
		}
	}
	switch term := b.Terminator().(type) {
	case *BranchInst:
		check("br", term.Args, term.Dest())
	case *CondBranchInst:
		check("cond_br true edge", term.TrueArgs, term.TrueDest())
		check("cond_br false edge", term.FalseArgs, term.FalseDest())
	case *SwitchInst:
		for j, s := range term.Successors() {
			if s.Block() != nil && s.Block().NumArguments() != 0 {
				errs = append(errs, fmt.Errorf("bb%d: switch destination %d takes arguments", i, j))
			}
		}
	}
	return errs
}
