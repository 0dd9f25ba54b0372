package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/objcexport/model"
)

func TestClassNameIsIdempotent(t *testing.T) {
	p := build(t,
		&model.PackageModel{Name: "demo.a", Classes: []*model.ClassModel{{Name: "Item"}}},
		&model.PackageModel{Name: "demo.b", Classes: []*model.ClassModel{{Name: "Item"}}},
	)
	g := New(p)
	a, b := p.Class("demo.a.Item"), p.Class("demo.b.Item")

	first, err := g.ClassName(a)
	require.NoError(t, err)
	other, err := g.ClassName(b)
	require.NoError(t, err)
	again, err := g.ClassName(a)
	require.NoError(t, err)

	assert.Equal(t, "SharedItem", first)
	assert.Equal(t, "SharedItem_", other)
	assert.Equal(t, first, again)
}

func TestClassAndProtocolNamesAreSeparate(t *testing.T) {
	p := build(t,
		&model.PackageModel{Name: "demo.x", Classes: []*model.ClassModel{{Name: "Thing", Kind: model.ClassKindInterface}}},
		&model.PackageModel{Name: "demo.y", Classes: []*model.ClassModel{{Name: "Thing"}}},
	)
	g := New(p)

	protocol, err := g.ProtocolName(p.Class("demo.x.Thing"))
	require.NoError(t, err)
	class, err := g.ClassName(p.Class("demo.y.Thing"))
	require.NoError(t, err)

	assert.Equal(t, "SharedThing", protocol)
	assert.Equal(t, "SharedThing", class)
}

func TestClassNameAvoidsFixedNames(t *testing.T) {
	p := build(t, demo(
		&model.ClassModel{Name: "Base"},
		&model.ClassModel{Name: "MutableSet"},
	))
	g, h := translate(t, p)

	name, err := g.ClassName(p.Class("demo.Base"))
	require.NoError(t, err)
	assert.Equal(t, "SharedBase_", name)
	name, err = g.ClassName(p.Class("demo.MutableSet"))
	require.NoError(t, err)
	assert.Equal(t, "SharedMutableSet_", name)
	assert.Contains(t, h.Lines(), "@interface SharedBase_ : SharedBase")
}

func TestClassNameOfUnexposedDeclaration(t *testing.T) {
	p := build(t, demo(&model.ClassModel{Name: "Hidden", Visibility: model.VisibilityPrivate}))
	g := New(p)

	_, err := g.ClassName(p.Class("demo.Hidden"))
	assert.ErrorIs(t, err, ErrNotExposed)

	_, err = g.ClassName(p.Class(model.StringName))
	assert.ErrorIs(t, err, ErrNotExposed)
}
