package cir_test

import (
	"strings"
	"testing"

	"cinder/internal/cir"
)

func TestDumpFunction(t *testing.T) {
	m := cir.NewModule("test")
	f := buildDiamond(m)

	var sb strings.Builder
	if err := cir.DumpFunction(&sb, f, cir.DumpOptions{}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"fn diamond -> int {",
		"bb0(%0 : int, %1 : bool):",
		"cond_br %1, bb1, bb2",
		"br bb3(%0)",
		"br bb3(undef : int)",
		"bb3(%2 : int):",
		"ret %2",
		"}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpPredComments(t *testing.T) {
	m := cir.NewModule("test")
	f := buildDiamond(m)

	var sb strings.Builder
	if err := cir.DumpFunction(&sb, f, cir.DumpOptions{PredComments: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	// Chain order is LIFO of registration: bb2 registered last.
	if !strings.Contains(out, "// preds: bb2 bb1") {
		t.Errorf("dump missing merge-block pred comment:\n%s", out)
	}
	if !strings.Contains(out, "// preds: bb0") {
		t.Errorf("dump missing branch-target pred comment:\n%s", out)
	}
}

func TestDumpOwnership(t *testing.T) {
	m := cir.NewModule("test")
	f := m.NewFunction("f", 0)
	entry := f.NewBlock()
	entry.InsertFunctionArgument(0, m.Types.Builtins().String, cir.OwnershipOwned, 0)
	entry.PushBack(cir.NewReturn(nil))

	var sb strings.Builder
	if err := cir.DumpFunction(&sb, f, cir.DumpOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "%0 : @owned string") {
		t.Errorf("ownership annotation missing:\n%s", sb.String())
	}
}
