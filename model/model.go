// Package model holds the resolved program model that gets exported: classes,
// interfaces, functions, properties and the type references between them.
package model

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityPrivate   Visibility = "private"
)

// IsPublic reports whether v is visible outside the module. An empty
// visibility counts as public.
func (v Visibility) IsPublic() bool {
	return v == "" || v == VisibilityPublic || v == VisibilityProtected
}

type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
	ClassKindObject    ClassKind = "object"
	ClassKindEnum      ClassKind = "enum"
	ClassKindArray     ClassKind = "array"
)

type AccessorKind string

const (
	AccessorNone   AccessorKind = ""
	AccessorGetter AccessorKind = "getter"
	AccessorSetter AccessorKind = "setter"
)

// Declaration is implemented by *ClassModel, *FunctionModel and
// *PropertyModel. The set is closed.
type Declaration interface {
	ID() string
	declaration()
}

type ClassModel struct {
	Name           string           `yaml:"name" json:"name"`
	SimpleName     string           `yaml:"-" json:"-"`
	Package        string           `yaml:"-" json:"-"`
	Kind           ClassKind        `yaml:"kind" json:"kind"`
	Visibility     Visibility       `yaml:"visibility" json:"visibility,omitempty"`
	IsFinal        bool             `yaml:"final" json:"final,omitempty"`
	IsAbstract     bool             `yaml:"abstract" json:"abstract,omitempty"`
	External       bool             `yaml:"external" json:"external,omitempty"`
	TypeParameters []string         `yaml:"typeParameters" json:"typeParameters,omitempty"`
	SuperClass     *TypeModel       `yaml:"superClass" json:"superClass,omitempty"`
	Interfaces     []TypeModel      `yaml:"interfaces" json:"interfaces,omitempty"`
	Constructors   []*FunctionModel `yaml:"constructors" json:"constructors,omitempty"`
	Functions      []*FunctionModel `yaml:"functions" json:"functions,omitempty"`
	Properties     []*PropertyModel `yaml:"properties" json:"properties,omitempty"`
	EnumEntries    []string         `yaml:"entries" json:"entries,omitempty"`
}

func (c *ClassModel) ID() string   { return c.Name }
func (c *ClassModel) declaration() {}

func (c *ClassModel) IsInterface() bool { return c.Kind == ClassKindInterface }
func (c *ClassModel) IsObject() bool    { return c.Kind == ClassKindObject }
func (c *ClassModel) IsEnum() bool      { return c.Kind == ClassKindEnum }
func (c *ClassModel) IsArray() bool     { return c.Kind == ClassKindArray }

// Supertypes returns the declared superclass (if any) followed by the
// declared interfaces, unsubstituted.
func (c *ClassModel) Supertypes() []TypeModel {
	var result []TypeModel
	if c.SuperClass != nil {
		result = append(result, *c.SuperClass)
	}
	return append(result, c.Interfaces...)
}

// Member looks up a function or property by key.
func (c *ClassModel) Member(key string) Declaration {
	for _, f := range c.Functions {
		if f.Key() == key {
			return f
		}
	}
	for _, p := range c.Properties {
		if p.Key() == key {
			return p
		}
	}
	return nil
}

// memberLike finds the single member with the same name, arity and receiver
// shape as d. Keys differ when a generic member is overridden with concrete
// types.
func (c *ClassModel) memberLike(d Declaration) Declaration {
	var found Declaration
	count := 0
	switch m := d.(type) {
	case *FunctionModel:
		for _, f := range c.Functions {
			if f.Name == m.Name && len(f.Parameters) == len(m.Parameters) && (f.Receiver == nil) == (m.Receiver == nil) {
				found = f
				count++
			}
		}
	case *PropertyModel:
		for _, p := range c.Properties {
			if p.Name == m.Name && (p.Receiver == nil) == (m.Receiver == nil) {
				found = p
				count++
			}
		}
	}
	if count != 1 {
		return nil
	}
	return found
}

type FunctionModel struct {
	Name          string           `yaml:"name" json:"name"`
	Receiver      *TypeModel       `yaml:"receiver" json:"receiver,omitempty"`
	Parameters    []ParameterModel `yaml:"parameters" json:"parameters,omitempty"`
	ReturnType    TypeModel        `yaml:"returns" json:"returns"`
	Visibility    Visibility       `yaml:"visibility" json:"visibility,omitempty"`
	IsConstructor bool             `yaml:"-" json:"-"`
	Overrides     []string         `yaml:"overrides" json:"overrides,omitempty"`

	Owner    string         `yaml:"-" json:"-"`
	Package  string         `yaml:"-" json:"-"`
	Accessor AccessorKind   `yaml:"-" json:"-"`
	Property *PropertyModel `yaml:"-" json:"-"`
}

func (f *FunctionModel) declaration() {}

// Key identifies the function among the members of its owner.
func (f *FunctionModel) Key() string {
	if f.Accessor != AccessorNone {
		return "<" + string(f.Accessor) + ">" + f.Property.Key()
	}
	types := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		types[i] = p.Type.String()
	}
	key := f.Name + "(" + strings.Join(types, ",") + ")"
	if f.Receiver != nil {
		key = f.Receiver.String() + "." + key
	}
	return key
}

func (f *FunctionModel) ID() string {
	return scope(f.Owner, f.Package) + "#" + f.Key()
}

// IsTopLevel reports whether the function is declared outside any class.
func (f *FunctionModel) IsTopLevel() bool { return f.Owner == "" }

type ParameterModel struct {
	Name string    `yaml:"name" json:"name"`
	Type TypeModel `yaml:"type" json:"type"`
}

type PropertyModel struct {
	Name             string     `yaml:"name" json:"name"`
	Type             TypeModel  `yaml:"type" json:"type"`
	Receiver         *TypeModel `yaml:"receiver" json:"receiver,omitempty"`
	Mutable          bool       `yaml:"mutable" json:"mutable,omitempty"`
	Visibility       Visibility `yaml:"visibility" json:"visibility,omitempty"`
	SetterVisibility Visibility `yaml:"setterVisibility" json:"setterVisibility,omitempty"`
	Overrides        []string   `yaml:"overrides" json:"overrides,omitempty"`

	Owner   string `yaml:"-" json:"-"`
	Package string `yaml:"-" json:"-"`

	getter *FunctionModel
	setter *FunctionModel
}

func (p *PropertyModel) declaration() {}

func (p *PropertyModel) Key() string {
	if p.Receiver != nil {
		return p.Receiver.String() + "." + p.Name
	}
	return p.Name
}

func (p *PropertyModel) ID() string {
	return scope(p.Owner, p.Package) + "#" + p.Key()
}

func (p *PropertyModel) IsTopLevel() bool { return p.Owner == "" }

// Getter returns the accessor function reading the property.
func (p *PropertyModel) Getter() *FunctionModel {
	if p.getter == nil {
		p.getter = &FunctionModel{
			Name:       p.Name,
			Receiver:   p.Receiver,
			ReturnType: p.Type,
			Visibility: p.Visibility,
			Owner:      p.Owner,
			Package:    p.Package,
			Accessor:   AccessorGetter,
			Property:   p,
		}
	}
	return p.getter
}

// Setter returns the accessor function writing the property, or nil for
// read-only properties.
func (p *PropertyModel) Setter() *FunctionModel {
	if !p.Mutable {
		return nil
	}
	if p.setter == nil {
		vis := p.SetterVisibility
		if vis == "" {
			vis = p.Visibility
		}
		p.setter = &FunctionModel{
			Name:       p.Name,
			Receiver:   p.Receiver,
			Parameters: []ParameterModel{{Name: "value", Type: p.Type}},
			ReturnType: TypeModel{Name: UnitName},
			Visibility: vis,
			Owner:      p.Owner,
			Package:    p.Package,
			Accessor:   AccessorSetter,
			Property:   p,
		}
	}
	return p.setter
}

type TypeModel struct {
	Name      string      `yaml:"name" json:"name"`
	Nullable  bool        `yaml:"nullable" json:"nullable,omitempty"`
	Parameter bool        `yaml:"param" json:"param,omitempty"`
	Arguments []TypeModel `yaml:"args" json:"args,omitempty"`
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Arguments) > 0 {
		sb.WriteString("<")
		for i, a := range t.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	if t.Nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

func scope(owner, pkg string) string {
	if owner != "" {
		return owner
	}
	return pkg
}

func splitClassName(name string) (pkg, simple string) {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if len(part) > 0 && part[0] >= 'A' && part[0] <= 'Z' {
			return strings.Join(parts[:i], "."), strings.Join(parts[i:], ".")
		}
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
