package model

import (
	"github.com/cockroachdb/errors"
)

// Validate checks that every type reference resolves, that inheritance is
// acyclic and well formed, and that overridden classes are supertypes of the
// overriding member's class.
func (p *Program) Validate() error {
	var errs error
	add := func(err error) {
		errs = errors.CombineErrors(errs, err)
	}

	for _, c := range p.sorted {
		params := make(map[string]bool, len(c.TypeParameters))
		for _, tp := range c.TypeParameters {
			params[tp] = true
		}
		where := c.Name

		if c.IsInterface() && c.SuperClass != nil {
			add(errors.Newf("%s: interface cannot have a superclass", where))
		}
		if c.SuperClass != nil {
			add(p.checkType(where, *c.SuperClass, params))
			if super := p.classes[c.SuperClass.Name]; super != nil && super.IsInterface() {
				add(errors.Newf("%s: superclass %s is an interface", where, super.Name))
			}
		}
		for _, iface := range c.Interfaces {
			add(p.checkType(where, iface, params))
			if decl := p.classes[iface.Name]; decl != nil && !decl.IsInterface() {
				add(errors.Newf("%s: %s is not an interface", where, decl.Name))
			}
		}
		if len(c.EnumEntries) > 0 && !c.IsEnum() {
			add(errors.Newf("%s: only enums have entries", where))
		}
		for _, f := range c.Constructors {
			add(p.checkFunction(where, f, params))
		}
		for _, f := range c.Functions {
			add(p.checkFunction(where, f, params))
		}
		for _, prop := range c.Properties {
			add(p.checkProperty(where, prop, params))
		}
	}

	for _, pkg := range p.Packages {
		for _, f := range pkg.Functions {
			add(p.checkFunction(pkg.Name, f, nil))
		}
		for _, prop := range pkg.Properties {
			add(p.checkProperty(pkg.Name, prop, nil))
		}
	}

	add(p.checkAcyclic())
	return errs
}

func (p *Program) checkFunction(where string, f *FunctionModel, params map[string]bool) error {
	var errs error
	where = where + "." + f.Name
	if f.Receiver != nil {
		errs = errors.CombineErrors(errs, p.checkType(where, *f.Receiver, params))
	}
	for _, param := range f.Parameters {
		errs = errors.CombineErrors(errs, p.checkType(where, param.Type, params))
	}
	errs = errors.CombineErrors(errs, p.checkType(where, f.ReturnType, params))
	return errors.CombineErrors(errs, p.checkOverrides(where, f.Owner, f.Overrides))
}

func (p *Program) checkProperty(where string, prop *PropertyModel, params map[string]bool) error {
	where = where + "." + prop.Name
	errs := p.checkType(where, prop.Type, params)
	if prop.Receiver != nil {
		errs = errors.CombineErrors(errs, p.checkType(where, *prop.Receiver, params))
	}
	return errors.CombineErrors(errs, p.checkOverrides(where, prop.Owner, prop.Overrides))
}

// checkOverrides requires every overridden class to be a strict supertype of
// owner. Top-level members override nothing.
func (p *Program) checkOverrides(where, owner string, names []string) error {
	var errs error
	for _, name := range names {
		super := p.classes[name]
		if super == nil {
			errs = errors.CombineErrors(errs, errors.Newf("%s: overrides member of unknown class %s", where, name))
			continue
		}
		if !p.isStrictSupertype(owner, super) {
			errs = errors.CombineErrors(errs, errors.Newf("%s: overrides member of %s, which is not a supertype", where, name))
		}
	}
	return errs
}

// isStrictSupertype reports whether super is a proper ancestor of the class
// named owner. The universal root is an ancestor of every other class.
func (p *Program) isStrictSupertype(owner string, super *ClassModel) bool {
	sub := p.classes[owner]
	if sub == nil || sub == super {
		return false
	}
	return super.Name == AnyName || p.IsSubclassOf(sub, super)
}

func (p *Program) checkType(where string, t TypeModel, params map[string]bool) error {
	var errs error
	if t.Parameter {
		// Function-level type parameters are not declared anywhere, so
		// single-letter names are always accepted.
		if len(params) > 0 && !params[t.Name] && !isPlaceholder(t.Name) {
			errs = errors.Newf("%s: unknown type parameter %s", where, t.Name)
		}
	} else if p.classes[t.Name] == nil {
		errs = errors.Newf("%s: unknown type %s", where, t.Name)
	}
	for _, a := range t.Arguments {
		errs = errors.CombineErrors(errs, p.checkType(where, a, params))
	}
	return errs
}

func isPlaceholder(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

func (p *Program) checkAcyclic() error {
	const (
		white = iota
		grey
		black
	)
	state := make(map[string]int, len(p.classes))

	var visit func(c *ClassModel) error
	visit = func(c *ClassModel) error {
		switch state[c.Name] {
		case grey:
			return errors.Newf("%s: cyclic inheritance", c.Name)
		case black:
			return nil
		}
		state[c.Name] = grey
		for _, st := range c.Supertypes() {
			if next := p.classes[st.Name]; next != nil {
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		state[c.Name] = black
		return nil
	}

	for _, c := range p.sorted {
		if err := visit(c); err != nil {
			return err
		}
	}
	return nil
}
