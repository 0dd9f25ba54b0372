// Package objc models the Objective-C side of an export: reference, block
// and primitive types, and how they are written in a header.
package objc

import "strings"

// Type is implemented by ClassType, ProtocolType, IdType, BlockPointerType,
// PrimitiveType and VoidType. The set is closed.
type Type interface {
	// Render writes the type as a declaration of name. An empty name
	// renders the bare type, as used in casts and return positions.
	Render(name string) string
	objcType()
}

type ClassType struct {
	Name      string
	Arguments []Type
	Nullable  bool
}

type ProtocolType struct {
	Name     string
	Nullable bool
}

type IdType struct {
	Nullable bool
}

type BlockPointerType struct {
	Return     Type
	Parameters []Type
	Nullable   bool
}

type PrimitiveType struct {
	Name string
}

type VoidType struct{}

func (ClassType) objcType()        {}
func (ProtocolType) objcType()     {}
func (IdType) objcType()           {}
func (BlockPointerType) objcType() {}
func (PrimitiveType) objcType()    {}
func (VoidType) objcType()         {}

const nullableMarker = "_Nullable"

func (t ClassType) Render(name string) string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Arguments) > 0 {
		sb.WriteString("<")
		for i, a := range t.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Render(""))
		}
		sb.WriteString(">")
	}
	sb.WriteString(" *")
	if t.Nullable {
		sb.WriteString(" " + nullableMarker)
	}
	return withName(sb.String(), name)
}

func (t ProtocolType) Render(name string) string {
	s := "id<" + t.Name + ">"
	if t.Nullable {
		s += " " + nullableMarker
	}
	return withName(s, name)
}

func (t IdType) Render(name string) string {
	s := "id"
	if t.Nullable {
		s += " " + nullableMarker
	}
	return withName(s, name)
}

// Render builds the block declarator and hands it to the return type, so a
// block returning a block nests the way C declarators do.
func (t BlockPointerType) Render(name string) string {
	var sb strings.Builder
	sb.WriteString("(^")
	if t.Nullable {
		sb.WriteString(" " + nullableMarker)
		if name != "" {
			sb.WriteString(" ")
		}
	}
	sb.WriteString(name)
	sb.WriteString(")(")
	if len(t.Parameters) == 0 {
		sb.WriteString("void")
	}
	for i, p := range t.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Render(""))
	}
	sb.WriteString(")")
	return t.Return.Render(sb.String())
}

func (t PrimitiveType) Render(name string) string {
	return withName(t.Name, name)
}

func (VoidType) Render(name string) string {
	return withName("void", name)
}

func withName(typ, name string) string {
	if name == "" {
		return typ
	}
	if strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}

// WithNullability returns a copy of t with the nullable flag set to
// nullable. Primitive and void types are returned unchanged.
func WithNullability(t Type, nullable bool) Type {
	switch t := t.(type) {
	case ClassType:
		t.Nullable = nullable
		return t
	case ProtocolType:
		t.Nullable = nullable
		return t
	case IdType:
		t.Nullable = nullable
		return t
	case BlockPointerType:
		t.Nullable = nullable
		return t
	case PrimitiveType, VoidType:
		return t
	}
	panic("objc: unknown type")
}
