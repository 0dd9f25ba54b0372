package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
)

var (
	stringType = model.TypeModel{Name: model.StringName}
	intType    = model.TypeModel{Name: model.IntName}
)

// fixture is a small program with a class hierarchy, an interface and a few
// extension members.
type fixture struct {
	program  *model.Program
	exposure *DefaultExposure
	bridge   *DefaultBridge
	namer    *DefaultNamer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	p, err := model.NewProgram("Shared",
		&model.PackageModel{
			Name: "demo",
			Classes: []*model.ClassModel{
				{
					Name: "Named",
					Kind: model.ClassKindInterface,
					Properties: []*model.PropertyModel{
						{Name: "name", Type: stringType},
					},
					Functions: []*model.FunctionModel{
						{Name: "rename", Parameters: []model.ParameterModel{{Name: "to", Type: stringType}}},
					},
				},
				{
					Name:       "Labeled",
					Kind:       model.ClassKindInterface,
					Interfaces: []model.TypeModel{{Name: "demo.Named"}},
					Functions: []*model.FunctionModel{
						{Name: "rename", Parameters: []model.ParameterModel{{Name: "to", Type: stringType}}, Overrides: []string{"demo.Named"}},
					},
				},
				{
					Name:       "Item",
					Interfaces: []model.TypeModel{{Name: "demo.Labeled"}},
					Constructors: []*model.FunctionModel{
						{},
						{Parameters: []model.ParameterModel{{Name: "name", Type: stringType}}},
					},
					Properties: []*model.PropertyModel{
						{Name: "name", Type: stringType, Overrides: []string{"demo.Named"}},
						{Name: "description", Type: stringType},
					},
					Functions: []*model.FunctionModel{
						{Name: "rename", Parameters: []model.ParameterModel{{Name: "to", Type: stringType}}, Overrides: []string{"demo.Labeled", "demo.Named"}},
						{Name: "hashCode", ReturnType: intType},
						{Name: "toString", ReturnType: stringType},
						{Name: "equals", Parameters: []model.ParameterModel{{Name: "other", Type: model.TypeModel{Name: model.AnyName, Nullable: true}}}, ReturnType: model.TypeModel{Name: model.BooleanName}},
						{Name: "copy", ReturnType: model.TypeModel{Name: "demo.Item"}},
						{Name: "newest", ReturnType: model.TypeModel{Name: "demo.Item"}},
						{Name: "move", Parameters: []model.ParameterModel{{Name: "x", Type: intType}}},
						{Name: "move", Parameters: []model.ParameterModel{{Name: "x", Type: stringType}}},
						{Name: "secret", Visibility: model.VisibilityInternal},
					},
				},
				{Name: "Hidden", Visibility: model.VisibilityPrivate},
				{Name: "Mode", Kind: model.ClassKindEnum, EnumEntries: []string{"DARK_BLUE", "LIGHT"}},
				{Name: "Config", Kind: model.ClassKindObject},
			},
			Functions: []*model.FunctionModel{
				{Name: "shout", Receiver: &model.TypeModel{Name: "demo.Item"}, ReturnType: stringType},
				{Name: "shoutMaybe", Receiver: &model.TypeModel{Name: "demo.Item", Nullable: true}},
				{Name: "trim", Receiver: &stringType, Parameters: []model.ParameterModel{{Name: "limit", Type: intType}}, ReturnType: stringType},
				{Name: "greet", Receiver: &model.TypeModel{Name: "demo.Named"}},
				{Name: "main"},
			},
			Properties: []*model.PropertyModel{
				{Name: "tag", Receiver: &model.TypeModel{Name: "demo.Item"}, Type: stringType, Mutable: true},
				{Name: "size", Receiver: &stringType, Type: intType, Mutable: true},
			},
		},
		&model.PackageModel{Name: "demo.util-tools"},
	)
	require.NoError(t, err)

	special := func(c *model.ClassModel) bool { return c.Name == model.StringName }
	f := &fixture{program: p, exposure: NewExposure(p, special)}
	f.bridge = NewBridge(f.exposure)
	f.namer = NewNamer("Shared", p, f.exposure, f.bridge)
	return f
}

func (f *fixture) function(t *testing.T, owner, name string, index int) *model.FunctionModel {
	t.Helper()
	var found []*model.FunctionModel
	var candidates []*model.FunctionModel
	if owner == "" {
		candidates = f.program.Packages[len(model.Builtins())].Functions
	} else {
		c := f.program.Class(owner)
		require.NotNil(t, c, owner)
		candidates = append(candidates, c.Constructors...)
		candidates = append(candidates, c.Functions...)
	}
	for _, fn := range candidates {
		if fn.Name == name {
			found = append(found, fn)
		}
	}
	require.Greater(t, len(found), index, "%s.%s", owner, name)
	return found[index]
}

func (f *fixture) property(t *testing.T, owner, name string) *model.PropertyModel {
	t.Helper()
	var candidates []*model.PropertyModel
	if owner == "" {
		candidates = f.program.Packages[len(model.Builtins())].Properties
	} else {
		candidates = f.program.Class(owner).Properties
	}
	for _, p := range candidates {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no property %s.%s", owner, name)
	return nil
}

func TestExposure(t *testing.T) {
	f := newFixture(t)
	e := f.exposure

	assert.True(t, e.ShouldBeExposed(f.program.Class("demo.Item")))
	assert.False(t, e.ShouldBeExposed(f.program.Class("demo.Hidden")))
	assert.False(t, e.ShouldBeExposed(f.program.Class(model.AnyName)))
	assert.False(t, e.ShouldBeExposed(f.program.Class(model.StringName)))
	assert.False(t, e.ShouldBeExposed(nil))

	assert.False(t, e.ShouldBeExposedMember(f.function(t, "demo.Item", "secret", 0)))
	assert.True(t, e.ShouldBeExposedMember(f.function(t, "demo.Item", "", 0)))
	assert.True(t, e.ShouldBeExposedMember(f.function(t, "", "main", 0)))
	assert.True(t, e.ShouldBeExposedMember(f.property(t, "demo.Item", "description")))
}

func TestBaseMethods(t *testing.T) {
	f := newFixture(t)
	rename := f.function(t, "demo.Item", "rename", 0)

	assert.False(t, f.exposure.IsBaseMethod(rename))
	assert.Len(t, f.exposure.Overridden(rename), 2)

	var ids []string
	for _, base := range f.exposure.BaseMethods(rename) {
		ids = append(ids, base.ID())
	}
	assert.Equal(t, []string{"demo.Named#rename(kotlin.String)"}, ids)

	named := f.function(t, "demo.Named", "rename", 0)
	assert.Equal(t, []*model.FunctionModel{named}, f.exposure.BaseMethods(named))

	name := f.property(t, "demo.Item", "name")
	assert.Equal(t, []*model.PropertyModel{f.property(t, "demo.Named", "name")}, f.exposure.BaseProperties(name))
	getter := name.Getter()
	require.Len(t, f.exposure.BaseMethods(getter), 1)
	assert.Equal(t, "demo.Named#<getter>name", f.exposure.BaseMethods(getter)[0].ID())
}

func TestClassIfCategory(t *testing.T) {
	f := newFixture(t)
	item := f.program.Class("demo.Item")

	tests := []struct {
		name     string
		decl     model.Declaration
		expected *model.ClassModel
	}{
		{"extension of exposed class", f.function(t, "", "shout", 0), item},
		{"nullable receiver", f.function(t, "", "shoutMaybe", 0), nil},
		{"receiver is custom mapped", f.function(t, "", "trim", 0), nil},
		{"receiver is an interface", f.function(t, "", "greet", 0), nil},
		{"no receiver", f.function(t, "", "main", 0), nil},
		{"class member", f.function(t, "demo.Item", "copy", 0), nil},
		{"extension property", f.property(t, "", "tag"), item},
		{"accessor", f.property(t, "", "tag").Getter(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.exposure.ClassIfCategory(tt.decl))
		})
	}
}

func TestCategoryMembers(t *testing.T) {
	f := newFixture(t)

	var ids []string
	for _, m := range f.exposure.CategoryMembers(f.program.Class("demo.Item")) {
		ids = append(ids, m.ID())
	}

	assert.Equal(t, []string{"demo#demo.Item.shout()", "demo#demo.Item.tag"}, ids)
	assert.Empty(t, f.exposure.CategoryMembers(f.program.Class("demo.Mode")))
}

func TestIsObjCProperty(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.exposure.IsObjCProperty(f.property(t, "demo.Item", "description")))
	assert.True(t, f.exposure.IsObjCProperty(f.property(t, "", "tag")))
	assert.False(t, f.exposure.IsObjCProperty(f.property(t, "", "size")))
}

func TestBridgeMethod(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		fn       *model.FunctionModel
		expected MethodBridge
	}{
		{
			name: "unit returns void",
			fn:   f.function(t, "demo.Item", "move", 0),
			expected: MethodBridge{
				Parameters: []ValueBridge{{Kind: BridgeValue, Value: objc.ValueInt}},
				Return:     ValueBridge{Kind: BridgeVoid},
			},
		},
		{
			name: "hashCode returns NSUInteger",
			fn:   f.function(t, "demo.Item", "hashCode", 0),
			expected: MethodBridge{
				Parameters: []ValueBridge{},
				Return:     ValueBridge{Kind: BridgeValue, Value: objc.ValueHashCode},
			},
		},
		{
			name: "constructor returns a reference",
			fn:   f.function(t, "demo.Item", "", 1),
			expected: MethodBridge{
				Parameters: []ValueBridge{{Kind: BridgeReference}},
				Return:     ValueBridge{Kind: BridgeReference},
			},
		},
		{
			name: "receiver is a parameter",
			fn:   f.function(t, "", "trim", 0),
			expected: MethodBridge{
				Parameters: []ValueBridge{{Kind: BridgeReference}, {Kind: BridgeValue, Value: objc.ValueInt}},
				Return:     ValueBridge{Kind: BridgeReference},
			},
		},
		{
			name: "category receiver is self",
			fn:   f.function(t, "", "shout", 0),
			expected: MethodBridge{
				Parameters: []ValueBridge{},
				Return:     ValueBridge{Kind: BridgeReference},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.bridge.BridgeMethod(tt.fn))
		})
	}
}

func TestBridgeNullablePrimitiveIsReference(t *testing.T) {
	assert.Equal(t, ValueBridge{Kind: BridgeReference}, bridgeValue(model.TypeModel{Name: model.IntName, Nullable: true}))
	assert.Equal(t, ValueBridge{Kind: BridgeReference}, bridgeValue(model.TypeModel{Name: model.UnitName, Nullable: true}))
	assert.Equal(t, ValueBridge{Kind: BridgeValue, Value: objc.ValueBool}, bridgeValue(model.TypeModel{Name: model.BooleanName}))
	assert.Equal(t, ValueBridge{Kind: BridgeValue, Value: objc.ValueDouble}, bridgeValue(model.TypeModel{Name: model.DoubleName}))
	assert.Equal(t, ValueBridge{Kind: BridgeReference}, bridgeValue(model.TypeModel{Name: model.StringName}))
}

func TestValueParameters(t *testing.T) {
	f := newFixture(t)
	size := f.property(t, "", "size")

	assert.Equal(t, []Parameter{
		{Name: "receiver", Type: stringType, Kind: ParameterReceiver},
		{Name: "value", Type: intType, Kind: ParameterSetterValue},
	}, f.bridge.ValueParameters(size.Setter()))

	assert.Equal(t, []Parameter{
		{Name: "value", Type: stringType, Kind: ParameterSetterValue},
	}, f.bridge.ValueParameters(f.property(t, "", "tag").Setter()))
}
