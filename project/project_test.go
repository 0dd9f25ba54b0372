package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const config = `
[module]
name = "Shared"
prefix = "SH"

[input]
models = ["models/demo.yaml"]

[output]
header = "build/Shared.h"

[mapping]
max-function-arity = 3
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), config)

	p, err := Load(dir)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, p.Dir)
	assert.Equal(t, filepath.Join(abs, FileName), p.Path)
	assert.Equal(t, "Shared", p.Module.Name)
	assert.Equal(t, "SH", p.Module.Prefix)
	assert.Equal(t, 3, p.Mapping.MaxFunctionArity)
	assert.Equal(t, []string{filepath.Join(abs, "models", "demo.yaml")}, p.ModelPaths())
	assert.Equal(t, filepath.Join(abs, "build", "Shared.h"), p.HeaderPath())
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[module]\nname = \"Shared\"\n")

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Shared", p.Module.Prefix)
	assert.Equal(t, 22, p.Mapping.MaxFunctionArity)
	assert.Empty(t, p.HeaderPath())
	assert.Empty(t, p.ModelPaths())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", "[module\n", "parse"},
		{"unknown key", "[module]\nname = \"Shared\"\nprefx = \"S\"\n", "unknown key module.prefx"},
		{"arity too large", "[mapping]\nmax-function-arity = 40\n", "max-function-arity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), tt.content)

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), config)
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := FindAndLoad(nested)
	require.NoError(t, err)
	require.NotNil(t, p)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, abs, p.Dir)
}

func TestFindAndLoadWithoutConfig(t *testing.T) {
	p, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgram(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), config)
	writeFile(t, filepath.Join(dir, "models", "demo.yaml"), `
packages:
  - name: demo
    classes:
      - name: Greeter
        functions:
          - name: greet
            returns: kotlin.String
`)

	p, err := Load(dir)
	require.NoError(t, err)
	program, err := p.Program()
	require.NoError(t, err)

	assert.Equal(t, "Shared", program.Module)
	assert.NotNil(t, program.Class("demo.Greeter"))
}

func TestProgramWithoutModels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[module]\nname = \"Shared\"\n")

	p, err := Load(dir)
	require.NoError(t, err)
	_, err = p.Program()

	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "[input]")
}
