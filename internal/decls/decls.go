// Package decls stores declaring source entities referenced from the IR.
// The IR core keeps DeclIDs as opaque back-references and never inspects
// the payload.
package decls

import (
	"fmt"

	"fortio.org/safecast"
)

// DeclID identifies a declaration in a Table.
type DeclID uint32

// NoDeclID marks the absence of a declaring entity.
const NoDeclID DeclID = 0

// IsValid reports whether the ID refers to a stored declaration.
func (id DeclID) IsValid() bool {
	return id != NoDeclID
}

// Kind classifies a declaration.
type Kind uint8

const (
	KindVar Kind = iota
	KindParam
	KindLet
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindParam:
		return "param"
	case KindLet:
		return "let"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Decl is a declaring source entity.
type Decl struct {
	Name string
	Kind Kind
}

// Table stores declarations in a compact slice-based arena.
type Table struct {
	data []Decl
}

// NewTable creates an arena with index 0 reserved for NoDeclID.
func NewTable() *Table {
	return &Table{data: make([]Decl, 1, 16)}
}

// New allocates a declaration and returns its ID.
func (t *Table) New(name string, kind Kind) DeclID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("decls: arena overflow: %w", err))
	}
	id := DeclID(value)
	t.data = append(t.data, Decl{Name: name, Kind: kind})
	return id
}

// Get returns the declaration pointer or nil if the ID is invalid.
func (t *Table) Get(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Name returns the declared name, or "" for an invalid ID.
func (t *Table) Name(id DeclID) string {
	d := t.Get(id)
	if d == nil {
		return ""
	}
	return d.Name
}

// Len reports the number of declarations excluding the sentinel.
func (t *Table) Len() int {
	return len(t.data) - 1
}
