// Package oracle defines the policies the exporter consults but does not
// own: which declarations are visible, how values cross the language
// boundary, and what everything is called. Default implementations driven by
// the program model are provided.
package oracle

import (
	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
)

type Exposure interface {
	ShouldBeExposed(c *model.ClassModel) bool
	ShouldBeExposedMember(d model.Declaration) bool
	IsBaseMethod(f *model.FunctionModel) bool
	IsBaseProperty(p *model.PropertyModel) bool
	// BaseMethods returns the distinct overridden contracts f must honor,
	// or f itself when it is a base method.
	BaseMethods(f *model.FunctionModel) []*model.FunctionModel
	BaseProperties(p *model.PropertyModel) []*model.PropertyModel
	// Overridden returns the exposed members d directly overrides.
	Overridden(d model.Declaration) []model.Declaration
	CategoryMembers(c *model.ClassModel) []model.Declaration
	// ClassIfCategory returns the class a top-level extension member is
	// attached to as a category, or nil.
	ClassIfCategory(d model.Declaration) *model.ClassModel
	// IsObjCProperty reports whether p is exported as a property rather
	// than as accessor methods.
	IsObjCProperty(p *model.PropertyModel) bool
}

type BridgeKind int

const (
	BridgeReference BridgeKind = iota
	BridgeValue
	BridgeVoid
)

type ValueBridge struct {
	Kind  BridgeKind
	Value objc.ValueKind
}

type ParameterKind int

const (
	ParameterRegular ParameterKind = iota
	ParameterReceiver
	ParameterSetterValue
)

type Parameter struct {
	Name string
	Type model.TypeModel
	Kind ParameterKind
}

type MethodBridge struct {
	Parameters []ValueBridge
	Return     ValueBridge
}

type Bridge interface {
	BridgeMethod(f *model.FunctionModel) MethodBridge
	// ValueParameters returns the parameters that surface in the
	// selector, in order. MethodBridge.Parameters is aligned with it.
	ValueParameters(f *model.FunctionModel) []Parameter
}

type Namer interface {
	ClassOrProtocolName(c *model.ClassModel) string
	SwiftName(c *model.ClassModel) string
	Selector(f *model.FunctionModel) string
	SwiftMethodName(f *model.FunctionModel) string
	PropertyName(p *model.PropertyModel) string
	PackageName(pkg string) string
	PackageSwiftName(pkg string) string
	SingletonAccessorName(c *model.ClassModel) string
	EnumCaseAccessorName(c *model.ClassModel, entry string) string
	RootName() string
	MutableSetName() string
	MutableDictionaryName() string
}
