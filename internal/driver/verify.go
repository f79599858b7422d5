// Package driver fans module-level work out across functions. Mutation
// of any single function's graph stays on one goroutine; the driver only
// parallelizes independent per-function reads.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cinder/internal/cir"
)

// FuncResult holds the verification outcome for one function.
type FuncResult struct {
	Name   string
	Blocks int
	Err    error
}

// Ok reports whether the function verified cleanly.
func (r FuncResult) Ok() bool { return r.Err == nil }

// VerifyModule verifies every function of the module concurrently and
// returns per-function results in module order.
func VerifyModule(ctx context.Context, m *cir.Module) ([]FuncResult, error) {
	funcs := m.Functions()
	results := make([]FuncResult, len(funcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range funcs {
		i, f := i, f
		results[i] = FuncResult{Name: f.Name(), Blocks: f.NumBlocks()}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Err = cir.VerifyFunction(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Check verifies the module and folds the per-function results into a
// single error.
func Check(ctx context.Context, m *cir.Module) error {
	results, err := VerifyModule(ctx, m)
	if err != nil {
		return err
	}
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}
