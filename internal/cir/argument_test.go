package cir_test

import (
	"testing"

	"cinder/internal/cir"
	"cinder/internal/decls"
	"cinder/internal/types"
)

func newArgBlock(t *testing.T) (*cir.Module, *cir.Block, types.TypeID) {
	t.Helper()
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	f.NewBlock() // entry; arguments under test live on a merge block
	b := f.NewBlock()
	return m, b, m.Types.Builtins().Int
}

func TestArgumentCreation(t *testing.T) {
	m, b, intID := newArgBlock(t)
	d := m.Decls.New("x", decls.KindParam)

	a0 := b.NewPhiArgument(intID, cir.OwnershipOwned, d)
	a1 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	if b.NumArguments() != 2 {
		t.Fatalf("NumArguments = %d", b.NumArguments())
	}
	if a0.Index() != 0 || a1.Index() != 1 {
		t.Fatalf("indices %d, %d", a0.Index(), a1.Index())
	}
	if a0.Block() != b || a0.Type() != intID || a0.Ownership() != cir.OwnershipOwned || a0.Decl() != d {
		t.Fatal("argument attributes not stored")
	}
	if !a0.IsPhi() || a0.ArgKind() != cir.PhiArg {
		t.Fatal("variant discriminator wrong")
	}
	if b.Argument(1) != a1 {
		t.Fatal("indexed lookup wrong")
	}
}

func TestInsertShiftsLaterArguments(t *testing.T) {
	_, b, intID := newArgBlock(t)

	a0 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)
	a1 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	mid := b.InsertPhiArgument(1, intID, cir.OwnershipGuaranteed, decls.NoDeclID)

	if a0.Index() != 0 || mid.Index() != 1 || a1.Index() != 2 {
		t.Fatalf("indices after insert: %d, %d, %d", a0.Index(), mid.Index(), a1.Index())
	}
	if b.Argument(2) != a1 {
		t.Fatal("later argument did not shift")
	}
}

func TestPhiInsertEraseRoundTrip(t *testing.T) {
	_, b, intID := newArgBlock(t)

	before := []*cir.Argument{
		b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID),
		b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID),
		b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID),
	}

	const p, n = 1, 4
	for i := 0; i < n; i++ {
		b.InsertPhiArgument(p, intID, cir.OwnershipOwned, decls.NoDeclID)
	}
	for i := 0; i < n; i++ {
		b.EraseArgument(p)
	}

	if b.NumArguments() != len(before) {
		t.Fatalf("NumArguments = %d after round trip", b.NumArguments())
	}
	for i, arg := range before {
		if b.Argument(i) != arg {
			t.Fatalf("argument %d lost its identity", i)
		}
		if arg.Index() != i {
			t.Fatalf("argument %d records index %d", i, arg.Index())
		}
	}
}

func TestEraseArgumentShifts(t *testing.T) {
	_, b, intID := newArgBlock(t)

	var args []*cir.Argument
	for i := 0; i < 4; i++ {
		args = append(args, b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID))
	}

	b.EraseArgument(1)

	if args[0].Index() != 0 {
		t.Error("argument before the erased index moved")
	}
	if args[2].Index() != 1 || args[3].Index() != 2 {
		t.Errorf("later indices %d, %d; want 1, 2", args[2].Index(), args[3].Index())
	}
	if args[1].Block() != nil || args[1].Index() != -1 {
		t.Error("erased argument not detached")
	}
}

func TestReplacePhiArgument(t *testing.T) {
	m, b, intID := newArgBlock(t)
	boolID := m.Types.Builtins().Bool

	a0 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)
	a1 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)
	a2 := b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	repl := b.ReplacePhiArgument(1, boolID, cir.OwnershipOwned, decls.NoDeclID)

	if b.NumArguments() != 3 {
		t.Fatalf("NumArguments = %d", b.NumArguments())
	}
	if b.Argument(0) != a0 || b.Argument(2) != a2 {
		t.Fatal("adjacent indices disturbed")
	}
	if b.Argument(1) != repl || repl.Index() != 1 || repl.Type() != boolID {
		t.Fatal("replacement not installed at the fixed position")
	}
	if a1.Block() != nil {
		t.Fatal("replaced argument not detached")
	}
}

func TestDropAllArguments(t *testing.T) {
	_, b, intID := newArgBlock(t)
	for i := 0; i < 3; i++ {
		b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)
	}

	b.DropAllArguments()

	if b.NumArguments() != 0 || !b.ArgsEmpty() {
		t.Fatalf("NumArguments = %d after DropAllArguments", b.NumArguments())
	}
	b.DropAllArguments() // idempotent on empty
}

func TestArgumentBounds(t *testing.T) {
	_, b, intID := newArgBlock(t)
	b.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	expectPanic(t, "lookup out of range", func() { b.Argument(1) })
	expectPanic(t, "lookup negative", func() { b.Argument(-1) })
	expectPanic(t, "erase out of range", func() { b.EraseArgument(5) })
	expectPanic(t, "insert out of range", func() {
		b.InsertPhiArgument(3, intID, cir.OwnershipNone, decls.NoDeclID)
	})
	expectPanic(t, "replace out of range", func() {
		b.ReplacePhiArgument(1, intID, cir.OwnershipNone, decls.NoDeclID)
	})
}

func TestArgumentVariantViews(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	entry := f.NewBlock()
	intID := m.Types.Builtins().Int

	fa := entry.NewFunctionArgument(intID, decls.NoDeclID)
	if fa.ArgKind() != cir.FunctionArg || fa.IsPhi() {
		t.Fatal("NewFunctionArgument variant wrong")
	}
	entry.InsertFunctionArgument(0, intID, cir.OwnershipGuaranteed, decls.NoDeclID)

	merge := f.NewBlock()
	merge.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	if n := len(entry.FunctionArguments()); n != 2 {
		t.Errorf("FunctionArguments() = %d entries", n)
	}
	if n := len(entry.PhiArguments()); n != 0 {
		t.Errorf("PhiArguments() on entry = %d entries", n)
	}
	if n := len(merge.PhiArguments()); n != 1 {
		t.Errorf("PhiArguments() = %d entries", n)
	}

	clone := f.NewBlock()
	clone.CloneArgumentList(entry)
	if clone.NumArguments() != 2 {
		t.Fatalf("CloneArgumentList copied %d arguments", clone.NumArguments())
	}
	if clone.Argument(0) == entry.Argument(0) {
		t.Fatal("clone must allocate fresh arguments")
	}
	if clone.Argument(1).Ownership() != entry.Argument(1).Ownership() ||
		clone.Argument(0).ArgKind() != entry.Argument(0).ArgKind() {
		t.Fatal("clone did not preserve attributes")
	}
}
