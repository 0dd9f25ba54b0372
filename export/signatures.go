package export

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/oracle"
)

func swiftNameAttribute(name string) string {
	return `__attribute__((swift_name("` + name + `")))`
}

const (
	unavailable           = "__attribute__((unavailable))"
	designatedInitializer = "__attribute__((objc_designated_initializer))"
)

// MethodSignatures returns the distinct declarations f needs, one per base
// method it honors.
func (g *Generator) MethodSignatures(f *model.FunctionModel) ([]string, error) {
	if sigs, ok := g.methodSignatures[f.ID()]; ok {
		return sigs, nil
	}
	var sigs []string
	seen := make(map[string]bool)
	for _, base := range g.exposure.BaseMethods(f) {
		if !g.exposure.IsBaseMethod(base) {
			return nil, errors.AssertionFailedf("%s is not a base method", base.ID())
		}
		sel := g.namer.Selector(base)
		if seen[sel] {
			continue
		}
		seen[sel] = true
		sig, err := g.buildMethod(f, base)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	sigs = distinct(sigs)
	g.methodSignatures[f.ID()] = sigs
	return sigs, nil
}

// PropertySignatures returns the distinct @property declarations p needs.
func (g *Generator) PropertySignatures(p *model.PropertyModel) ([]string, error) {
	if sigs, ok := g.propertySignatures[p.ID()]; ok {
		return sigs, nil
	}
	var sigs []string
	seen := make(map[string]bool)
	for _, base := range g.exposure.BaseProperties(p) {
		if !g.exposure.IsBaseProperty(base) {
			return nil, errors.AssertionFailedf("%s is not a base property", base.ID())
		}
		name := g.namer.PropertyName(base)
		if seen[name] {
			continue
		}
		seen[name] = true
		sig, err := g.buildProperty(p, base)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	sigs = distinct(sigs)
	g.propertySignatures[p.ID()] = sigs
	return sigs, nil
}

// buildMethod declares method with the selector and bridge of base. Types
// come from method, so covariant overrides get their own declaration.
func (g *Generator) buildMethod(method, base *model.FunctionModel) (string, error) {
	bridge := g.bridge.BridgeMethod(base)
	params := g.bridge.ValueParameters(method)
	if len(params) != len(bridge.Parameters) {
		return "", errors.AssertionFailedf("%s has %d parameters but its base %s has %d",
			method.ID(), len(params), base.ID(), len(bridge.Parameters))
	}

	sel := g.namer.Selector(base)
	parts := strings.Split(sel, ":")
	if len(params) != len(parts)-1 {
		return "", errors.AssertionFailedf("selector %s does not fit the %d parameters of %s", sel, len(params), method.ID())
	}

	var sb strings.Builder
	if g.isStatic(method) {
		sb.WriteString("+ (")
	} else {
		sb.WriteString("- (")
	}
	if method.IsConstructor {
		sb.WriteString("instancetype")
	} else {
		ret, err := g.mapType(method.ReturnType, bridge.Return)
		if err != nil {
			return "", errors.Wrapf(err, "return type of %s", method.ID())
		}
		sb.WriteString(ret.Render(""))
	}
	sb.WriteString(")")

	if len(params) == 0 {
		sb.WriteString(sel)
	}
	used := make(map[string]bool)
	for i, p := range params {
		t, err := g.mapType(p.Type, bridge.Parameters[i])
		if err != nil {
			return "", errors.Wrapf(err, "parameter %s of %s", p.Name, method.ID())
		}
		name := parameterName(p)
		for used[name] {
			name += "_"
		}
		used[name] = true

		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(parts[i] + ":(" + t.Render("") + ")" + name)
	}

	sb.WriteString(" " + swiftNameAttribute(g.namer.SwiftMethodName(base)))
	if method.IsConstructor && !g.ownerIsArray(method) {
		sb.WriteString(" " + designatedInitializer)
	}
	return sb.String(), nil
}

func parameterName(p oracle.Parameter) string {
	switch {
	case p.Kind == oracle.ParameterReceiver:
		return "receiver"
	case p.Kind == oracle.ParameterSetterValue:
		return "value"
	case p.Name == "":
		return "p"
	}
	return p.Name
}

// buildProperty declares property with the names of base.
func (g *Generator) buildProperty(property, base *model.PropertyModel) (string, error) {
	if !g.exposure.IsObjCProperty(property) {
		return "", errors.AssertionFailedf("%s cannot be declared as a property", property.ID())
	}

	getter := base.Getter()
	bridge := g.bridge.BridgeMethod(getter)
	t, err := g.mapType(property.Type, bridge.Return)
	if err != nil {
		return "", errors.Wrapf(err, "type of %s", property.ID())
	}

	name := g.namer.PropertyName(base)
	var attrs []string
	if g.isStaticProperty(property) {
		attrs = append(attrs, "class")
	}

	setter := property.Setter()
	if setter != nil && g.exposure.ShouldBeExposedMember(setter) {
		if baseSetter := base.Setter(); baseSetter != nil {
			setter = baseSetter
		}
	} else {
		setter = nil
		attrs = append(attrs, "readonly")
	}

	if sel := g.namer.Selector(getter); sel != name {
		attrs = append(attrs, "getter="+sel)
	}
	if setter != nil {
		if sel := g.namer.Selector(setter); sel != "set"+upperFirst(name)+":" {
			attrs = append(attrs, "setter="+sel)
		}
	}

	var sb strings.Builder
	sb.WriteString("@property ")
	if len(attrs) > 0 {
		sb.WriteString("(" + strings.Join(attrs, ", ") + ") ")
	}
	sb.WriteString(t.Render(name))
	sb.WriteString(" " + swiftNameAttribute(name))
	return sb.String(), nil
}

// isStatic reports whether f is declared as a class method: top-level
// functions outside categories and array factories.
func (g *Generator) isStatic(f *model.FunctionModel) bool {
	if f.IsConstructor {
		return g.ownerIsArray(f)
	}
	if !f.IsTopLevel() {
		return false
	}
	if f.Accessor != model.AccessorNone {
		return g.exposure.ClassIfCategory(f.Property) == nil
	}
	return g.exposure.ClassIfCategory(f) == nil
}

func (g *Generator) isStaticProperty(p *model.PropertyModel) bool {
	return p.IsTopLevel() && g.exposure.ClassIfCategory(p) == nil
}

func (g *Generator) ownerIsArray(f *model.FunctionModel) bool {
	owner := g.program.Class(f.Owner)
	return owner != nil && owner.IsArray()
}

// ownSignatures returns the declarations of member that are not already
// declared by an exposed member it overrides.
func (g *Generator) ownSignatures(member model.Declaration) ([]string, error) {
	own, err := g.signaturesOf(member)
	if err != nil {
		return nil, err
	}
	inherited := make(map[string]bool)
	for _, o := range g.exposure.Overridden(member) {
		sigs, err := g.signaturesOf(o)
		if err != nil {
			return nil, err
		}
		for _, s := range sigs {
			inherited[s] = true
		}
	}
	var result []string
	for _, s := range own {
		if !inherited[s] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (g *Generator) signaturesOf(d model.Declaration) ([]string, error) {
	switch m := d.(type) {
	case *model.FunctionModel:
		return g.MethodSignatures(m)
	case *model.PropertyModel:
		return g.PropertySignatures(m)
	case *model.ClassModel:
		return nil, errors.AssertionFailedf("%s is not a member", m.Name)
	}
	return nil, errors.AssertionFailedf("unknown declaration %T", d)
}

// distinct sorts sigs and drops duplicates.
func distinct(sigs []string) []string {
	sort.Strings(sigs)
	result := sigs[:0]
	for i, s := range sigs {
		if i == 0 || s != sigs[i-1] {
			result = append(result, s)
		}
	}
	return result
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
