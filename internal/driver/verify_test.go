package driver_test

import (
	"context"
	"strings"
	"testing"

	"cinder/internal/cir"
	"cinder/internal/driver"
)

func buildModule(t *testing.T, bad bool) *cir.Module {
	t.Helper()
	m := cir.NewModule("test")
	for _, name := range []string{"a", "b", "c"} {
		f := m.NewFunction(name, 0)
		b := f.NewBlock()
		b.PushBack(cir.NewReturn(nil))
	}
	if bad {
		m.NewFunction("broken", 0).NewBlock() // empty block
	}
	return m
}

func TestVerifyModuleClean(t *testing.T) {
	m := buildModule(t, false)

	results, err := driver.VerifyModule(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results: %d", len(results))
	}
	for i, r := range results {
		if !r.Ok() {
			t.Errorf("function %s failed: %v", r.Name, r.Err)
		}
		if r.Name != m.Functions()[i].Name() {
			t.Errorf("result %d out of module order", i)
		}
		if r.Blocks != 1 {
			t.Errorf("function %s reports %d blocks", r.Name, r.Blocks)
		}
	}
	if err := driver.Check(context.Background(), m); err != nil {
		t.Errorf("Check on clean module: %v", err)
	}
}

func TestCheckReportsPerFunction(t *testing.T) {
	m := buildModule(t, true)

	err := driver.Check(context.Background(), m)
	if err == nil {
		t.Fatal("broken module passed")
	}
	if !strings.Contains(err.Error(), "function broken") {
		t.Errorf("err = %v", err)
	}
	if strings.Contains(err.Error(), "function a") {
		t.Errorf("clean function reported: %v", err)
	}
}

func TestVerifyModuleCancelled(t *testing.T) {
	m := buildModule(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.VerifyModule(ctx, m); err == nil {
		t.Fatal("cancelled context must surface an error")
	}
}
