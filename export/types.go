package export

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
	"github.com/dhamidi/objcexport/oracle"
)

// mapType maps ref as passed through bridge.
func (g *Generator) mapType(ref model.TypeModel, bridge oracle.ValueBridge) (objc.Type, error) {
	switch bridge.Kind {
	case oracle.BridgeVoid:
		return objc.VoidType{}, nil
	case oracle.BridgeValue:
		return bridge.Value.Primitive(), nil
	case oracle.BridgeReference:
		return g.mapReferenceType(ref)
	}
	return nil, errors.AssertionFailedf("unknown bridge kind %d", bridge.Kind)
}

type mapperMatch struct {
	matched model.TypeModel
	mapper  *customMapper
}

// mapReferenceType maps ref to an object type, discovering the referenced
// declaration if it needs a stub.
func (g *Generator) mapReferenceType(ref model.TypeModel) (objc.Type, error) {
	if ref.Parameter {
		return objc.IdType{Nullable: ref.Nullable}, nil
	}
	decl := g.program.Class(ref.Name)
	if decl == nil {
		return nil, errors.AssertionFailedf("reference to unknown declaration %s", ref.Name)
	}

	var matches []mapperMatch
	for _, st := range g.program.AllSupertypes(ref) {
		if m, ok := g.mappers[st.Name]; ok {
			matches = append(matches, mapperMatch{matched: st, mapper: m})
		}
	}
	if len(matches) > 0 {
		candidates := g.mostSpecific(matches)
		if len(candidates) > 1 {
			targets := make([]string, len(candidates))
			for i, c := range candidates {
				targets[i] = c.mapper.target
			}
			g.warnf("exported type %s is ambiguous: %s all apply; using %s",
				ref, strings.Join(targets, ", "), targets[0])
		}
		chosen := candidates[0]
		t, err := chosen.mapper.mapType(g, ref, chosen.matched)
		if err != nil {
			return nil, err
		}
		return objc.WithNullability(t, ref.Nullable), nil
	}

	if decl.Name == model.AnyName || g.hidden[decl.Name] {
		return objc.IdType{Nullable: ref.Nullable}, nil
	}

	name, err := g.nameOf(decl)
	if err != nil {
		return nil, err
	}
	g.enqueue(decl)
	if decl.IsInterface() {
		return objc.ProtocolType{Name: name, Nullable: ref.Nullable}, nil
	}
	return objc.ClassType{Name: name, Nullable: ref.Nullable}, nil
}

// mostSpecific drops every match whose target is a strict supertype of
// another match's target.
func (g *Generator) mostSpecific(matches []mapperMatch) []mapperMatch {
	var result []mapperMatch
	for _, a := range matches {
		target := g.program.Class(a.mapper.target)
		shadowed := false
		for _, b := range matches {
			if g.program.IsSubclassOf(g.program.Class(b.mapper.target), target) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			result = append(result, a)
		}
	}
	return result
}

// mapElementType maps a type argument of a collection. Null elements are
// stored as NSNull, so a nullable argument is just id.
func (g *Generator) mapElementType(arg model.TypeModel) (objc.Type, error) {
	if arg.Nullable {
		return objc.IdType{}, nil
	}
	return g.mapReferenceType(arg)
}
