package cir

import (
	"cinder/internal/decls"
	"cinder/internal/types"
)

// Module is the lookup context functions live in: the function list plus
// the type interner and declaration table their IR refers to.
type Module struct {
	Name string

	Types *types.Interner
	Decls *decls.Table

	funcs []*Function
}

// NewModule creates an empty module with fresh lookup tables.
func NewModule(name string) *Module {
	return &Module{
		Name:  name,
		Types: types.NewInterner(),
		Decls: decls.NewTable(),
	}
}

// NewFunction creates a bodyless function and appends it to the module.
func (m *Module) NewFunction(name string, result types.TypeID) *Function {
	f := &Function{name: name, result: result, module: m}
	m.funcs = append(m.funcs, f)
	return f
}

// Functions returns the module's functions as a read-only view.
func (m *Module) Functions() []*Function { return m.funcs }

// FindFunction returns the first function with the given name, or nil.
func (m *Module) FindFunction(name string) *Function {
	for _, f := range m.funcs {
		if f.name == name {
			return f
		}
	}
	return nil
}
