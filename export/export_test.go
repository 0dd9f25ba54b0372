package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/objcexport/model"
)

func typ(name string, args ...model.TypeModel) model.TypeModel {
	return model.TypeModel{Name: name, Arguments: args}
}

func nullable(t model.TypeModel) model.TypeModel {
	t.Nullable = true
	return t
}

func params(nameTypes ...any) []model.ParameterModel {
	var result []model.ParameterModel
	for i := 0; i < len(nameTypes); i += 2 {
		result = append(result, model.ParameterModel{
			Name: nameTypes[i].(string),
			Type: nameTypes[i+1].(model.TypeModel),
		})
	}
	return result
}

var (
	stringType = typ(model.StringName)
	intType    = typ(model.IntName)
	doubleType = typ(model.DoubleName)
)

func build(t *testing.T, pkgs ...*model.PackageModel) *model.Program {
	t.Helper()
	p, err := model.NewProgram("Shared", pkgs...)
	require.NoError(t, err)
	return p
}

func demo(classes ...*model.ClassModel) *model.PackageModel {
	return &model.PackageModel{Name: "demo", Classes: classes}
}

func translate(t *testing.T, p *model.Program, opts ...Option) (*Generator, *Header) {
	t.Helper()
	g := New(p, opts...)
	h, err := g.Translate()
	require.NoError(t, err)
	return g, h
}

func findStub(t *testing.T, g *Generator, name string) *Stub {
	t.Helper()
	for _, s := range g.Stubs() {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no stub named %s", name)
	return nil
}

func stubNames(g *Generator) []string {
	var names []string
	for _, s := range g.Stubs() {
		names = append(names, s.Name)
	}
	return names
}

func TestFinalClassWithStringProperty(t *testing.T) {
	p := build(t, demo(&model.ClassModel{
		Name:       "Greeter",
		IsFinal:    true,
		Properties: []*model.PropertyModel{{Name: "name", Type: stringType}},
	}))

	g, h := translate(t, p)

	assert.Equal(t, []string{
		"__attribute__((objc_subclassing_restricted))",
		`__attribute__((swift_name("Greeter")))`,
		"@interface SharedGreeter : SharedBase",
		`@property (readonly) NSString *name __attribute__((swift_name("name")));`,
		"@end;",
	}, findStub(t, g, "SharedGreeter").Lines)
	assert.Contains(t, h.Lines(), "@class SharedGreeter;")
	assert.Empty(t, g.Warnings())
}

func TestFunctionTypeParameters(t *testing.T) {
	p := build(t, demo(&model.ClassModel{
		Name: "Events",
		Functions: []*model.FunctionModel{
			{Name: "onEvent", Parameters: params("handler", typ(model.FunctionTypeName(2), stringType, intType, typ(model.UnitName)))},
			{Name: "onReady", Parameters: params("callback", nullable(typ(model.FunctionTypeName(0), typ(model.UnitName))))},
		},
	}))

	g, _ := translate(t, p)

	assert.Equal(t, []string{
		`__attribute__((swift_name("Events")))`,
		"@interface SharedEvents : SharedBase",
		`- (void)onEventHandler:(void (^)(NSString *, NSNumber *))handler __attribute__((swift_name("onEvent(handler:)")));`,
		`- (void)onReadyCallback:(void (^ _Nullable)(void))callback __attribute__((swift_name("onReady(callback:)")));`,
		"@end;",
	}, findStub(t, g, "SharedEvents").Lines)
}

func TestEnumEntries(t *testing.T) {
	p := build(t, demo(&model.ClassModel{
		Name:        "Color",
		Kind:        model.ClassKindEnum,
		EnumEntries: []string{"RED", "GREEN", "DARK_BLUE"},
	}))

	g, _ := translate(t, p)

	lines := findStub(t, g, "SharedColor").Lines
	assert.Equal(t, []string{
		"__attribute__((objc_subclassing_restricted))",
		`__attribute__((swift_name("Color")))`,
		"@interface SharedColor : SharedKotlinEnum",
		"+ (instancetype)alloc __attribute__((unavailable));",
		"+ (instancetype)allocWithZone:(struct _NSZone *)zone __attribute__((unavailable));",
		`@property (class, readonly) SharedColor *red __attribute__((swift_name("red")));`,
		`@property (class, readonly) SharedColor *green __attribute__((swift_name("green")));`,
		`@property (class, readonly) SharedColor *darkBlue __attribute__((swift_name("darkBlue")));`,
		"@end;",
	}, lines)

	accessors := 0
	for _, line := range lines {
		if strings.Contains(line, "alloc") {
			assert.Contains(t, line, "__attribute__((unavailable))", "allocator %q must not be callable", line)
		}
		if strings.HasPrefix(line, "- (instancetype)init") {
			t.Errorf("unexpected initializer %q", line)
		}
		if strings.HasPrefix(line, "@property (class, readonly) SharedColor *") {
			accessors++
		}
	}
	assert.Equal(t, 3, accessors)

	assert.Equal(t, []string{"SharedKotlinEnum", "SharedColor"}, stubNames(g))
}

func TestInheritedConstructorsAreUnavailable(t *testing.T) {
	p := build(t, demo(
		&model.ClassModel{
			Name: "Parent",
			Constructors: []*model.FunctionModel{
				{},
				{Parameters: params("value", intType)},
			},
		},
		&model.ClassModel{
			Name:         "Child",
			SuperClass:   &model.TypeModel{Name: "demo.Parent"},
			Constructors: []*model.FunctionModel{{}},
		},
		&model.ClassModel{
			Name:         "Leaf",
			SuperClass:   &model.TypeModel{Name: "demo.Parent"},
			Constructors: []*model.FunctionModel{{Parameters: params("name", stringType)}},
		},
	))

	g, _ := translate(t, p)

	assert.Equal(t, []string{"SharedParent", "SharedChild", "SharedLeaf"}, stubNames(g))
	assert.Equal(t, []string{
		`__attribute__((swift_name("Parent")))`,
		"@interface SharedParent : SharedBase",
		`- (instancetype)init __attribute__((swift_name("init()"))) __attribute__((objc_designated_initializer));`,
		`- (instancetype)initWithValue:(int32_t)value __attribute__((swift_name("init(value:)"))) __attribute__((objc_designated_initializer));`,
		"@end;",
	}, findStub(t, g, "SharedParent").Lines)
	assert.Equal(t, []string{
		`__attribute__((swift_name("Child")))`,
		"@interface SharedChild : SharedParent",
		`- (instancetype)init __attribute__((swift_name("init()"))) __attribute__((objc_designated_initializer));`,
		`- (instancetype)initWithValue:(int32_t)value __attribute__((swift_name("init(value:)"))) __attribute__((objc_designated_initializer)) __attribute__((unavailable));`,
		"@end;",
	}, findStub(t, g, "SharedChild").Lines)
	assert.Equal(t, []string{
		`__attribute__((swift_name("Leaf")))`,
		"@interface SharedLeaf : SharedParent",
		`- (instancetype)initWithName:(NSString *)name __attribute__((swift_name("init(name:)"))) __attribute__((objc_designated_initializer));`,
		`- (instancetype)init __attribute__((swift_name("init()"))) __attribute__((objc_designated_initializer)) __attribute__((unavailable));`,
		`- (instancetype)initWithValue:(int32_t)value __attribute__((swift_name("init(value:)"))) __attribute__((objc_designated_initializer)) __attribute__((unavailable));`,
		"+ (instancetype)new __attribute__((unavailable));",
		"@end;",
	}, findStub(t, g, "SharedLeaf").Lines)
}

func TestTranslateTwice(t *testing.T) {
	p := build(t, demo(&model.ClassModel{Name: "Greeter"}))
	g := New(p)
	_, err := g.Translate()
	require.NoError(t, err)

	_, err = g.Translate()
	assert.Error(t, err)
}

func TestUnexposedReferenceIsFatal(t *testing.T) {
	p := build(t, demo(
		&model.ClassModel{Name: "Secret", Visibility: model.VisibilityInternal},
		&model.ClassModel{
			Name:      "Api",
			Functions: []*model.FunctionModel{{Name: "secret", ReturnType: typ("demo.Secret")}},
		},
	))

	h, err := New(p).Translate()

	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrNotExposed)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "demo.Secret")
}
