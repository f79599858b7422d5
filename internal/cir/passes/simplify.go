// Package passes holds structural CFG transformations built on the cir
// core's edit protocol.
package passes

import "cinder/internal/cir"

// Simplify performs control flow graph cleanup on a function:
//
//  1. redirect edges around trivial forwarding blocks,
//  2. remove blocks unreachable from the entry,
//  3. merge single-predecessor/single-successor block pairs.
//
// Runs to a fixpoint. The function must be well-formed on entry and is
// well-formed on return.
func Simplify(f *cir.Function) {
	if f == nil || f.NumBlocks() == 0 {
		return
	}
	for {
		changed := collapseForwarding(f)
		if removeUnreachable(f) {
			changed = true
		}
		if mergeLinear(f) {
			changed = true
		}
		if !changed {
			return
		}
	}
}

// collapseForwarding retargets every edge aimed at a trivial forwarding
// block (no arguments, a single operand-less br) directly at that
// block's destination. The forwarding block loses all predecessors and
// falls to unreachable-removal.
func collapseForwarding(f *cir.Function) bool {
	changed := false
	for _, b := range f.Blocks() {
		if b.IsEntry() || b.NumArguments() != 0 || b.NumInstructions() != 1 {
			continue
		}
		br, ok := b.Back().(*cir.BranchInst)
		if !ok || len(br.Args) != 0 {
			continue
		}
		dest := br.Dest()
		if dest == nil || dest == b {
			continue
		}
		for s := b.FirstPred(); s != nil; {
			next := s.NextPred()
			s.Retarget(dest)
			changed = true
			s = next
		}
	}
	return changed
}

// removeUnreachable erases every block not reachable from the entry,
// going through the core's erase protocol so predecessor chains of the
// survivors stay exact.
func removeUnreachable(f *cir.Function) bool {
	reachable := make(map[*cir.Block]bool, f.NumBlocks())
	var walk func(b *cir.Block)
	walk = func(b *cir.Block) {
		if reachable[b] {
			return
		}
		reachable[b] = true
		for _, s := range b.Successors() {
			if s.Block() != nil {
				walk(s.Block())
			}
		}
	}
	walk(f.Entry())

	var dead []*cir.Block
	for _, b := range f.Blocks() {
		if !reachable[b] {
			dead = append(dead, b)
		}
	}
	for _, b := range dead {
		b.EraseFromParent()
	}
	return len(dead) > 0
}

// mergeLinear splices a block's sole successor into it when that
// successor has no other predecessors and no arguments to rewire.
func mergeLinear(f *cir.Function) bool {
	changed := false
	for again := true; again; {
		again = false
		for _, b := range f.Blocks() {
			br, ok := b.Back().(*cir.BranchInst)
			if !ok || len(br.Args) != 0 {
				continue
			}
			dest := br.Dest()
			if dest == nil || dest == b || dest.IsEntry() || dest.NumArguments() != 0 {
				continue
			}
			if dest.SinglePredecessor() != b {
				continue
			}
			b.Erase(br)
			b.SpliceAtEnd(dest)
			dest.EraseFromParent()
			changed = true
			again = true
			break
		}
	}
	return changed
}
