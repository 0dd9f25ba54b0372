package export

import (
	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
)

// customMapper replaces the default class or protocol rendering for every
// reference whose supertypes include target.
type customMapper struct {
	target string
	// mapType receives the original reference and the supertype of it that
	// matched target, with type arguments substituted. It returns the non-null
	// form; the reference's nullability is applied by the caller.
	mapType func(g *Generator, ref, matched model.TypeModel) (objc.Type, error)
}

func simpleMapper(target, objcName string) *customMapper {
	return &customMapper{
		target: target,
		mapType: func(g *Generator, ref, matched model.TypeModel) (objc.Type, error) {
			return objc.ClassType{Name: objcName}, nil
		},
	}
}

// collectionMapper maps target to a generic Objective-C collection with
// arity type arguments.
func collectionMapper(target, objcName string, arity int) *customMapper {
	return &customMapper{
		target: target,
		mapType: func(g *Generator, ref, matched model.TypeModel) (objc.Type, error) {
			args := make([]objc.Type, arity)
			for i := range args {
				if i >= len(matched.Arguments) {
					args[i] = objc.IdType{}
					continue
				}
				arg, err := g.mapElementType(matched.Arguments[i])
				if err != nil {
					return nil, err
				}
				args[i] = arg
			}
			return objc.ClassType{Name: objcName, Arguments: args}, nil
		},
	}
}

// functionMapper maps the function type of the given arity to a block.
func functionMapper(arity int) *customMapper {
	return &customMapper{
		target: model.FunctionTypeName(arity),
		mapType: func(g *Generator, ref, matched model.TypeModel) (objc.Type, error) {
			var block objc.BlockPointerType
			for i := 0; i < arity; i++ {
				p := model.TypeModel{Name: model.AnyName, Nullable: true}
				if i < len(matched.Arguments) {
					p = matched.Arguments[i]
				}
				t, err := g.mapReferenceType(p)
				if err != nil {
					return nil, err
				}
				block.Parameters = append(block.Parameters, t)
			}

			ret := model.TypeModel{Name: model.AnyName, Nullable: true}
			if arity < len(matched.Arguments) {
				ret = matched.Arguments[arity]
			}
			if ret.Name == model.UnitName && !ret.Nullable && !ret.Parameter {
				block.Return = objc.VoidType{}
				return block, nil
			}
			t, err := g.mapReferenceType(ret)
			if err != nil {
				return nil, err
			}
			block.Return = t
			return block, nil
		},
	}
}

// registerMappers installs the built-in mappers for declarations present in
// the program and computes the hidden set.
func (g *Generator) registerMappers() {
	var all []*customMapper
	all = append(all, simpleMapper(model.StringName, "NSString"))
	for _, name := range model.NumberNames {
		all = append(all, simpleMapper(name, "NSNumber"))
	}
	all = append(all,
		simpleMapper(model.NumberName, "NSNumber"),
		collectionMapper(model.ListName, "NSArray", 1),
		collectionMapper(model.MutableListName, "NSMutableArray", 1),
		collectionMapper(model.SetName, "NSSet", 1),
		collectionMapper(model.MutableSetName, g.namer.MutableSetName(), 1),
		collectionMapper(model.MapName, "NSDictionary", 2),
		collectionMapper(model.MutableMapName, g.namer.MutableDictionaryName(), 2),
	)
	for arity := 0; arity <= g.maxArity; arity++ {
		all = append(all, functionMapper(arity))
	}

	for _, m := range all {
		if g.program.Class(m.target) != nil {
			g.mappers[m.target] = m
		}
	}

	for target := range g.mappers {
		for _, st := range g.program.AllSupertypes(model.TypeModel{Name: target})[1:] {
			if _, mapped := g.mappers[st.Name]; mapped || st.Name == model.AnyName {
				continue
			}
			g.hidden[st.Name] = true
		}
	}
}

// isSpecial reports declarations that never get a stub of their own.
func (g *Generator) isSpecial(c *model.ClassModel) bool {
	if c.Name == model.AnyName || g.hidden[c.Name] {
		return true
	}
	_, mapped := g.mappers[c.Name]
	return mapped
}
