package model

import "strconv"

const (
	AnyName        = "kotlin.Any"
	UnitName       = "kotlin.Unit"
	NothingName    = "kotlin.Nothing"
	StringName     = "kotlin.String"
	NumberName     = "kotlin.Number"
	EnumName       = "kotlin.Enum"
	ArrayName      = "kotlin.Array"
	FunctionName   = "kotlin.Function"
	ComparableName = "kotlin.Comparable"
	BooleanName    = "kotlin.Boolean"
	CharName       = "kotlin.Char"
	ByteName       = "kotlin.Byte"
	ShortName      = "kotlin.Short"
	IntName        = "kotlin.Int"
	LongName       = "kotlin.Long"
	UByteName      = "kotlin.UByte"
	UShortName     = "kotlin.UShort"
	UIntName       = "kotlin.UInt"
	ULongName      = "kotlin.ULong"
	FloatName      = "kotlin.Float"
	DoubleName     = "kotlin.Double"

	ListName              = "kotlin.collections.List"
	MutableListName       = "kotlin.collections.MutableList"
	SetName               = "kotlin.collections.Set"
	MutableSetName        = "kotlin.collections.MutableSet"
	MapName               = "kotlin.collections.Map"
	MutableMapName        = "kotlin.collections.MutableMap"
	CollectionName        = "kotlin.collections.Collection"
	MutableCollectionName = "kotlin.collections.MutableCollection"
	IterableName          = "kotlin.collections.Iterable"
	MutableIterableName   = "kotlin.collections.MutableIterable"
)

// MaxFunctionArity is the largest N for which kotlin.FunctionN is declared.
const MaxFunctionArity = 22

// FunctionTypeName returns the name of the function interface of the given
// arity.
func FunctionTypeName(arity int) string {
	return FunctionName + strconv.Itoa(arity)
}

// NumberNames lists the numeric box declarations in declaration order.
var NumberNames = []string{
	BooleanName, CharName, ByteName, ShortName, IntName, LongName,
	UByteName, UShortName, UIntName, ULongName, FloatName, DoubleName,
}

func ref(name string, args ...TypeModel) TypeModel {
	return TypeModel{Name: name, Arguments: args}
}

func param(name string) TypeModel {
	return TypeModel{Name: name, Parameter: true}
}

func builtinClass(name string, kind ClassKind, params []string, super *TypeModel, ifaces ...TypeModel) *ClassModel {
	return &ClassModel{
		Name:           name,
		Kind:           kind,
		Visibility:     VisibilityPublic,
		External:       true,
		TypeParameters: params,
		SuperClass:     super,
		Interfaces:     ifaces,
	}
}

// Builtins returns fresh copies of the declarations every program depends
// on: the root type, strings, numeric boxes, enums, arrays, collections and
// function types.
func Builtins() []*PackageModel {
	anyRef := ref(AnyName)
	root := builtinClass(AnyName, ClassKindClass, nil, nil)
	root.Functions = []*FunctionModel{
		{Name: "equals", Parameters: []ParameterModel{{Name: "other", Type: TypeModel{Name: AnyName, Nullable: true}}}, ReturnType: ref(BooleanName)},
		{Name: "hashCode", ReturnType: ref(IntName)},
		{Name: "toString", ReturnType: ref(StringName)},
	}

	comparable := builtinClass(ComparableName, ClassKindInterface, []string{"T"}, nil)
	comparable.Functions = []*FunctionModel{
		{Name: "compareTo", Parameters: []ParameterModel{{Name: "other", Type: param("T")}}, ReturnType: ref(IntName)},
	}
	comparableOf := func(name string) TypeModel { return ref(ComparableName, ref(name)) }

	charSequence := builtinClass("kotlin.CharSequence", ClassKindInterface, nil, nil)
	str := builtinClass(StringName, ClassKindClass, nil, &anyRef, ref("kotlin.CharSequence"), comparableOf(StringName))
	str.IsFinal = true

	number := builtinClass(NumberName, ClassKindClass, nil, &anyRef)
	number.IsAbstract = true
	numberRef := ref(NumberName)

	unit := builtinClass(UnitName, ClassKindObject, nil, &anyRef)
	nothing := builtinClass(NothingName, ClassKindClass, nil, &anyRef)
	nothing.IsFinal = true

	enum := builtinClass(EnumName, ClassKindClass, []string{"E"}, &anyRef, ref(ComparableName, param("E")))
	enum.IsAbstract = true
	enum.Properties = []*PropertyModel{
		{Name: "name", Type: ref(StringName)},
		{Name: "ordinal", Type: ref(IntName)},
	}
	enum.Functions = []*FunctionModel{
		{Name: "compareTo", Parameters: []ParameterModel{{Name: "other", Type: param("E")}}, ReturnType: ref(IntName), Overrides: []string{ComparableName}},
	}

	array := builtinClass(ArrayName, ClassKindArray, []string{"T"}, &anyRef)
	array.IsFinal = true
	array.Properties = []*PropertyModel{{Name: "size", Type: ref(IntName)}}
	array.Functions = []*FunctionModel{
		{Name: "get", Parameters: []ParameterModel{{Name: "index", Type: ref(IntName)}}, ReturnType: param("T")},
		{Name: "set", Parameters: []ParameterModel{{Name: "index", Type: ref(IntName)}, {Name: "value", Type: param("T")}}},
	}

	kotlin := &PackageModel{
		Name:    "kotlin",
		Classes: []*ClassModel{root, comparable, charSequence, str, number, unit, nothing, enum, array},
	}

	for _, name := range NumberNames {
		var c *ClassModel
		switch name {
		case BooleanName, CharName, UByteName, UShortName, UIntName, ULongName:
			c = builtinClass(name, ClassKindClass, nil, &anyRef, comparableOf(name))
		default:
			c = builtinClass(name, ClassKindClass, nil, &numberRef, comparableOf(name))
		}
		c.IsFinal = true
		kotlin.Classes = append(kotlin.Classes, c)
	}

	kotlin.Classes = append(kotlin.Classes, builtinClass(FunctionName, ClassKindInterface, []string{"R"}, nil))
	for arity := 0; arity <= MaxFunctionArity; arity++ {
		params := make([]string, 0, arity+1)
		for i := 1; i <= arity; i++ {
			params = append(params, "P"+strconv.Itoa(i))
		}
		params = append(params, "R")
		fn := builtinClass(FunctionTypeName(arity), ClassKindInterface, params, nil, ref(FunctionName, param("R")))
		kotlin.Classes = append(kotlin.Classes, fn)
	}

	e := param("E")
	k, v := param("K"), param("V")
	collections := &PackageModel{
		Name: "kotlin.collections",
		Classes: []*ClassModel{
			builtinClass(IterableName, ClassKindInterface, []string{"T"}, nil),
			builtinClass(MutableIterableName, ClassKindInterface, []string{"T"}, nil, ref(IterableName, param("T"))),
			builtinClass(CollectionName, ClassKindInterface, []string{"E"}, nil, ref(IterableName, e)),
			builtinClass(MutableCollectionName, ClassKindInterface, []string{"E"}, nil, ref(CollectionName, e), ref(MutableIterableName, e)),
			builtinClass(ListName, ClassKindInterface, []string{"E"}, nil, ref(CollectionName, e)),
			builtinClass(MutableListName, ClassKindInterface, []string{"E"}, nil, ref(ListName, e), ref(MutableCollectionName, e)),
			builtinClass(SetName, ClassKindInterface, []string{"E"}, nil, ref(CollectionName, e)),
			builtinClass(MutableSetName, ClassKindInterface, []string{"E"}, nil, ref(SetName, e), ref(MutableCollectionName, e)),
			builtinClass(MapName, ClassKindInterface, []string{"K", "V"}, nil),
			builtinClass(MutableMapName, ClassKindInterface, []string{"K", "V"}, nil, ref(MapName, k, v)),
		},
	}

	return []*PackageModel{kotlin, collections}
}

// IsBuiltinPackage reports whether pkg holds built-in declarations.
func IsBuiltinPackage(pkg string) bool {
	return pkg == "kotlin" || len(pkg) > 7 && pkg[:7] == "kotlin."
}
