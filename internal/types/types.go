package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool {
	return id != NoTypeID
}

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindString
	KindPointer
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPointer:
		return "ptr"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Type is a structural descriptor. Descriptors are small comparable values;
// identity lives in the TypeID handed out by the interner.
type Type struct {
	Kind Kind
	// Name is set for KindNamed descriptors and names the pointee for
	// KindPointer ones.
	Name string
}

func (t Type) String() string {
	switch t.Kind {
	case KindNamed:
		return t.Name
	case KindPointer:
		if t.Name != "" {
			return "*" + t.Name
		}
		return "ptr"
	default:
		return t.Kind.String()
	}
}

// MakeNamed builds a nominal descriptor.
func MakeNamed(name string) Type {
	return Type{Kind: KindNamed, Name: name}
}

// MakePointer builds a pointer descriptor.
func MakePointer(pointee string) Type {
	return Type{Kind: KindPointer, Name: pointee}
}
