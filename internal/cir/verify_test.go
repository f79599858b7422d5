package cir_test

import (
	"strings"
	"testing"

	"cinder/internal/cir"
	"cinder/internal/decls"
)

// buildDiamond returns a verified-shape function:
//
//	bb0(%x)  cond_br -> bb1 / bb2
//	bb1      br bb3(%x)
//	bb2      br bb3(undef)
//	bb3(%p)  ret %p
func buildDiamond(m *cir.Module) *cir.Function {
	intID := m.Types.Builtins().Int
	boolID := m.Types.Builtins().Bool

	f := m.NewFunction("diamond", intID)
	entry := f.NewBlock()
	x := entry.NewFunctionArgument(intID, decls.NoDeclID)
	c := entry.NewFunctionArgument(boolID, decls.NoDeclID)

	left := f.NewBlock()
	right := f.NewBlock()
	merge := f.NewBlock()
	p := merge.NewPhiArgument(intID, cir.OwnershipNone, decls.NoDeclID)

	entry.PushBack(cir.NewCondBranch(c, left, nil, right, nil))
	left.PushBack(cir.NewOp("left"))
	left.PushBack(cir.NewBranch(merge, x))
	right.PushBack(cir.NewBranch(merge, cir.Undef{T: intID}))
	merge.PushBack(cir.NewReturn(p))
	return f
}

func TestVerifyWellFormed(t *testing.T) {
	m := cir.NewModule("test")
	buildDiamond(m)
	if err := cir.VerifyModule(m); err != nil {
		t.Fatalf("well-formed module rejected: %v", err)
	}
}

func TestVerifyEmptyBlock(t *testing.T) {
	m := cir.NewModule("test")
	f := buildDiamond(m)
	f.NewBlock()

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "empty block") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyMissingTerminator(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	b := f.NewBlock()
	b.PushBack(cir.NewOp("only"))

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "not a terminator") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyMidBlockTerminator(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	b := f.NewBlock()
	b.PushBack(cir.NewReturn(nil))
	b.PushBack(cir.NewReturn(nil))

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "not last") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyOperandCountMismatch(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	b := f.NewBlock()
	merge := f.NewBlock()
	merge.NewPhiArgument(m.Types.Builtins().Int, cir.OwnershipNone, decls.NoDeclID)
	merge.PushBack(cir.NewReturn(nil))

	b.PushBack(cir.NewBranch(merge)) // no operands for one phi argument

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "passes 0 operands") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyCrossFunctionEdge(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	g := m.NewFunction("g", 0)
	b := f.NewBlock()
	foreign := g.NewBlock()
	foreign.PushBack(cir.NewReturn(nil))

	b.PushBack(cir.NewBranch(foreign))

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "outside this function") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyEntryArgumentVariants(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	entry := f.NewBlock()
	entry.NewPhiArgument(m.Types.Builtins().Int, cir.OwnershipNone, decls.NoDeclID)
	entry.PushBack(cir.NewReturn(nil))

	err := cir.VerifyFunction(f)
	if err == nil || !strings.Contains(err.Error(), "not a function argument") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyModuleAggregates(t *testing.T) {
	m := cir.NewModule("test")
	buildDiamond(m)
	bad := m.NewFunction("bad", 0)
	bad.NewBlock()

	err := cir.VerifyModule(m)
	if err == nil || !strings.Contains(err.Error(), "function bad") {
		t.Fatalf("err = %v", err)
	}
}
