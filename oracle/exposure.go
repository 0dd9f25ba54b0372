package oracle

import (
	"sort"

	"github.com/dhamidi/objcexport/model"
)

// DefaultExposure exposes public declarations that are not handled by a
// custom type mapping.
type DefaultExposure struct {
	program *model.Program
	special func(c *model.ClassModel) bool

	categories map[string][]model.Declaration
}

// NewExposure returns the default exposure policy. special reports
// declarations that never surface as classes of their own: custom-mapped,
// hidden and root declarations.
func NewExposure(program *model.Program, special func(c *model.ClassModel) bool) *DefaultExposure {
	return &DefaultExposure{program: program, special: special}
}

func (e *DefaultExposure) ShouldBeExposed(c *model.ClassModel) bool {
	if c == nil || !c.Visibility.IsPublic() {
		return false
	}
	if c.Name == model.AnyName {
		return false
	}
	return !e.special(c)
}

func (e *DefaultExposure) ShouldBeExposedMember(d model.Declaration) bool {
	switch m := d.(type) {
	case *model.ClassModel:
		return e.ShouldBeExposed(m)
	case *model.FunctionModel:
		if !m.Visibility.IsPublic() {
			return false
		}
		if m.Accessor != model.AccessorNone && !m.Property.Visibility.IsPublic() {
			return false
		}
		if m.IsTopLevel() {
			return true
		}
		owner := e.program.Class(m.Owner)
		if m.IsConstructor && owner != nil && (owner.IsObject() || owner.IsEnum()) {
			return false
		}
		return e.ShouldBeExposed(owner)
	case *model.PropertyModel:
		if !m.Visibility.IsPublic() {
			return false
		}
		if m.IsTopLevel() {
			return true
		}
		return e.ShouldBeExposed(e.program.Class(m.Owner))
	}
	panic("oracle: unknown declaration")
}

func (e *DefaultExposure) Overridden(d model.Declaration) []model.Declaration {
	var result []model.Declaration
	for _, o := range e.program.Overridden(d) {
		if e.ShouldBeExposedMember(o) {
			result = append(result, o)
		}
	}
	return result
}

func (e *DefaultExposure) IsBaseMethod(f *model.FunctionModel) bool {
	return len(e.Overridden(f)) == 0
}

func (e *DefaultExposure) IsBaseProperty(p *model.PropertyModel) bool {
	return len(e.Overridden(p)) == 0
}

func (e *DefaultExposure) BaseMethods(f *model.FunctionModel) []*model.FunctionModel {
	if e.IsBaseMethod(f) {
		return []*model.FunctionModel{f}
	}
	seen := make(map[string]bool)
	var result []*model.FunctionModel
	for _, o := range e.Overridden(f) {
		fn, ok := o.(*model.FunctionModel)
		if !ok {
			continue
		}
		for _, base := range e.BaseMethods(fn) {
			if !seen[base.ID()] {
				seen[base.ID()] = true
				result = append(result, base)
			}
		}
	}
	return result
}

func (e *DefaultExposure) BaseProperties(p *model.PropertyModel) []*model.PropertyModel {
	if e.IsBaseProperty(p) {
		return []*model.PropertyModel{p}
	}
	seen := make(map[string]bool)
	var result []*model.PropertyModel
	for _, o := range e.Overridden(p) {
		prop, ok := o.(*model.PropertyModel)
		if !ok {
			continue
		}
		for _, base := range e.BaseProperties(prop) {
			if !seen[base.ID()] {
				seen[base.ID()] = true
				result = append(result, base)
			}
		}
	}
	return result
}

func (e *DefaultExposure) ClassIfCategory(d model.Declaration) *model.ClassModel {
	var receiver *model.TypeModel
	switch m := d.(type) {
	case *model.FunctionModel:
		if !m.IsTopLevel() || m.Accessor != model.AccessorNone {
			return nil
		}
		receiver = m.Receiver
	case *model.PropertyModel:
		if !m.IsTopLevel() {
			return nil
		}
		receiver = m.Receiver
	default:
		return nil
	}
	if receiver == nil || receiver.Nullable || receiver.Parameter {
		return nil
	}
	c := e.program.Class(receiver.Name)
	if c == nil || c.IsInterface() || !e.ShouldBeExposed(c) {
		return nil
	}
	return c
}

func (e *DefaultExposure) CategoryMembers(c *model.ClassModel) []model.Declaration {
	if e.categories == nil {
		e.categories = make(map[string][]model.Declaration)
		for _, pkg := range e.program.Packages {
			var members []model.Declaration
			for _, f := range pkg.Functions {
				members = append(members, f)
			}
			for _, p := range pkg.Properties {
				members = append(members, p)
			}
			for _, m := range members {
				if !e.ShouldBeExposedMember(m) {
					continue
				}
				if owner := e.ClassIfCategory(m); owner != nil {
					e.categories[owner.Name] = append(e.categories[owner.Name], m)
				}
			}
		}
		for _, members := range e.categories {
			sort.SliceStable(members, func(i, j int) bool { return members[i].ID() < members[j].ID() })
		}
	}
	return e.categories[c.Name]
}

func (e *DefaultExposure) IsObjCProperty(p *model.PropertyModel) bool {
	return p.Receiver == nil || e.ClassIfCategory(p) != nil
}
