// Package cir implements the control-flow-graph core of the Cinder IR:
// basic blocks grouping straight-line instruction sequences, block
// arguments in SSA form, and the function-wide predecessor/successor
// edge graph.
//
// Ownership runs strictly forward: a Module owns Functions, a Function
// owns the ordered Block sequence, a Block owns its instructions and
// arguments, and a terminator instruction owns its outgoing Successor
// edges. The reverse direction is non-owning back-references kept exact
// by a narrow registration protocol: every Successor threads itself into
// its target block's predecessor chain, so predecessors are always
// derived from the set of live terminators and never stored separately.
//
// The package performs no locking. One goroutine owns a function's graph
// at a time; contract violations (asking a block without a terminator
// for one, indexing arguments out of range, moving blocks across
// functions) are caller bugs and panic rather than returning errors.
package cir
