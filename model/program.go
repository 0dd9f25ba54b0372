package model

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// PackageModel groups the declarations of one namespace.
type PackageModel struct {
	Name       string           `yaml:"name" json:"name"`
	Classes    []*ClassModel    `yaml:"classes" json:"classes,omitempty"`
	Functions  []*FunctionModel `yaml:"functions" json:"functions,omitempty"`
	Properties []*PropertyModel `yaml:"properties" json:"properties,omitempty"`
}

// Program is a resolved, validated program model plus the built-in
// declarations every program depends on.
type Program struct {
	Module   string
	Packages []*PackageModel

	classes map[string]*ClassModel
	sorted  []*ClassModel
}

// NewProgram indexes pkgs together with the built-in packages and validates
// the result. Class names in pkgs are relative to their package.
func NewProgram(module string, pkgs ...*PackageModel) (*Program, error) {
	p := &Program{
		Module:  module,
		classes: make(map[string]*ClassModel),
	}

	for _, pkg := range pkgs {
		for _, c := range pkg.Classes {
			c.Name = qualify(pkg.Name, c.Name)
		}
	}

	all := append(Builtins(), pkgs...)
	for _, pkg := range all {
		for _, c := range pkg.Classes {
			if _, dup := p.classes[c.Name]; dup {
				return nil, errors.Newf("class %s declared twice", c.Name)
			}
			p.classes[c.Name] = c
			p.sorted = append(p.sorted, c)
		}
	}
	sort.Slice(p.sorted, func(i, j int) bool { return p.sorted[i].Name < p.sorted[j].Name })
	p.Packages = all

	for _, pkg := range all {
		for _, c := range pkg.Classes {
			finishClass(pkg.Name, c)
		}
		for _, f := range pkg.Functions {
			finishFunction(f, "", pkg.Name)
		}
		for _, prop := range pkg.Properties {
			prop.Owner, prop.Package = "", pkg.Name
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	if len(name) > len(pkg) && name[:len(pkg)+1] == pkg+"." {
		return name
	}
	return pkg + "." + name
}

func finishClass(pkg string, c *ClassModel) {
	c.Package = pkg
	c.SimpleName = c.Name
	if pkg != "" {
		c.SimpleName = c.Name[len(pkg)+1:]
	}
	if c.Kind == "" {
		c.Kind = ClassKindClass
	}
	if c.IsEnum() && c.SuperClass == nil {
		c.SuperClass = &TypeModel{Name: EnumName, Arguments: []TypeModel{{Name: c.Name}}}
	}
	if c.IsEnum() || c.IsObject() {
		c.IsFinal = true
	}
	for _, f := range c.Constructors {
		finishFunction(f, c.Name, pkg)
		f.IsConstructor = true
		f.ReturnType = TypeModel{Name: c.Name}
	}
	for _, f := range c.Functions {
		finishFunction(f, c.Name, pkg)
	}
	for _, prop := range c.Properties {
		prop.Owner, prop.Package = c.Name, pkg
	}
}

func finishFunction(f *FunctionModel, owner, pkg string) {
	f.Owner, f.Package = owner, pkg
	if f.ReturnType.Name == "" {
		f.ReturnType = TypeModel{Name: UnitName}
	}
}

// Class returns the declaration named name, or nil.
func (p *Program) Class(name string) *ClassModel {
	return p.classes[name]
}

// Classes returns every class of the program sorted by name.
func (p *Program) Classes() []*ClassModel {
	return p.sorted
}

// ModuleClasses returns the classes declared by the module itself, sorted by
// name. External and built-in declarations are only reached through
// references.
func (p *Program) ModuleClasses() []*ClassModel {
	var result []*ClassModel
	for _, c := range p.sorted {
		if !c.External {
			result = append(result, c)
		}
	}
	return result
}

// Supertypes returns the direct supertypes of ref with the declaration's type
// parameters replaced by ref's type arguments.
func (p *Program) Supertypes(ref TypeModel) []TypeModel {
	if ref.Parameter {
		return nil
	}
	c := p.classes[ref.Name]
	if c == nil {
		return nil
	}
	subst := make(map[string]TypeModel, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		if i < len(ref.Arguments) {
			subst[tp] = ref.Arguments[i]
		}
	}
	var result []TypeModel
	for _, st := range c.Supertypes() {
		result = append(result, substitute(st, subst))
	}
	return result
}

// AllSupertypes returns ref followed by all of its transitive supertypes in
// breadth-first order. Each declaration appears once, with the first
// instantiation found.
func (p *Program) AllSupertypes(ref TypeModel) []TypeModel {
	seen := map[string]bool{ref.Name: true}
	result := []TypeModel{ref}
	for i := 0; i < len(result); i++ {
		for _, st := range p.Supertypes(result[i]) {
			if seen[st.Name] {
				continue
			}
			seen[st.Name] = true
			result = append(result, st)
		}
	}
	return result
}

// IsSubclassOf reports whether sub strictly inherits from super.
func (p *Program) IsSubclassOf(sub, super *ClassModel) bool {
	if sub == super {
		return false
	}
	for _, st := range p.AllSupertypes(TypeModel{Name: sub.Name})[1:] {
		if st.Name == super.Name {
			return true
		}
	}
	return false
}

// SuperClass returns the declared superclass of c, or nil.
func (p *Program) SuperClass(c *ClassModel) *ClassModel {
	if c.SuperClass == nil {
		return nil
	}
	return p.classes[c.SuperClass.Name]
}

// Overridden resolves the members that d directly overrides.
func (p *Program) Overridden(d Declaration) []Declaration {
	var names []string
	var key string
	switch m := d.(type) {
	case *FunctionModel:
		if m.Accessor != AccessorNone {
			var result []Declaration
			for _, o := range p.Overridden(m.Property) {
				prop, ok := o.(*PropertyModel)
				if !ok {
					continue
				}
				if acc := accessorOf(prop, m.Accessor); acc != nil {
					result = append(result, acc)
				}
			}
			return result
		}
		names, key = m.Overrides, m.Key()
	case *PropertyModel:
		names, key = m.Overrides, m.Key()
	case *ClassModel:
		return nil
	default:
		panic(errors.AssertionFailedf("unknown declaration %T", d))
	}

	var result []Declaration
	for _, name := range names {
		c := p.classes[name]
		if c == nil {
			continue
		}
		if member := c.Member(key); member != nil {
			result = append(result, member)
		} else if member := c.memberLike(d); member != nil {
			result = append(result, member)
		}
	}
	return result
}

func accessorOf(prop *PropertyModel, kind AccessorKind) *FunctionModel {
	if kind == AccessorSetter {
		return prop.Setter()
	}
	return prop.Getter()
}

func substitute(t TypeModel, subst map[string]TypeModel) TypeModel {
	if t.Parameter {
		if r, ok := subst[t.Name]; ok {
			if t.Nullable {
				r.Nullable = true
			}
			return r
		}
		return t
	}
	if len(t.Arguments) == 0 {
		return t
	}
	args := make([]TypeModel, len(t.Arguments))
	for i, a := range t.Arguments {
		args[i] = substitute(a, subst)
	}
	t.Arguments = args
	return t
}
