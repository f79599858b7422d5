package cir

// Successor is a single outgoing control-flow edge, owned by the
// terminator that created it. Besides the non-owning target reference it
// carries the intrusive links threading it into the target block's
// predecessor chain, so the set of edges reaching a block is always
// discoverable from the block itself without separate bookkeeping.
//
// The chain inserts at the head: walking a block's predecessors yields
// edges in LIFO order of registration.
type Successor struct {
	owner Terminator
	block *Block

	next     *Successor
	prevNext **Successor
}

func newSuccessor(owner Terminator, target *Block) *Successor {
	s := &Successor{owner: owner}
	s.link(target)
	return s
}

// Block returns the edge's target, or nil after the edge was dropped.
func (s *Successor) Block() *Block { return s.block }

// Owner returns the terminator this edge belongs to.
func (s *Successor) Owner() Terminator { return s.owner }

// Pred returns the block the edge originates from: the owner's parent.
// Nil while the owning terminator is detached from any block.
func (s *Successor) Pred() *Block { return s.owner.Parent() }

// NextPred continues a predecessor-chain walk started at Block.FirstPred.
func (s *Successor) NextPred() *Successor { return s.next }

// Retarget points the edge at a new block, relinking the predecessor
// chains of both the old and the new target. A nil target detaches the
// edge.
func (s *Successor) Retarget(target *Block) {
	if s.block == target {
		return
	}
	s.unlink()
	s.link(target)
}

func (s *Successor) link(target *Block) {
	s.block = target
	if target == nil {
		return
	}
	s.next = target.preds
	if s.next != nil {
		s.next.prevNext = &s.next
	}
	s.prevNext = &target.preds
	target.preds = s
}

func (s *Successor) unlink() {
	if s.prevNext != nil {
		*s.prevNext = s.next
		if s.next != nil {
			s.next.prevNext = s.prevNext
		}
	}
	s.block = nil
	s.next = nil
	s.prevNext = nil
}
