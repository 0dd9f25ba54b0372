package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const config = "testdata/objcexport.toml"

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestHeaderCommand(t *testing.T) {
	out := run(t, newHeaderCmd(), "-c", config)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "#import <Foundation/Foundation.h>", lines[0])
	assert.Contains(t, lines, "@class GEOCircle, GEOGeometryKt;")
	assert.Contains(t, lines, "@protocol GEOShape;")
	assert.Contains(t, lines, "@interface GEOCircle : GEOBase <GEOShape>")
	assert.Contains(t, lines, `@property (readonly) double radius __attribute__((swift_name("radius")));`)
	assert.Contains(t, lines, `- (double)area __attribute__((swift_name("area()")));`)
	assert.Contains(t, lines, `+ (GEOCircle *)unitCircle __attribute__((swift_name("unitCircle()")));`)
	assert.True(t, strings.HasSuffix(out, "NS_ASSUME_NONNULL_END\n"))
}

func TestHeaderCommandFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "include", "Shapes.h")

	out := run(t, newHeaderCmd(), "-c", config, "--prefix", "SH", "-o", path)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@interface SHCircle : SHBase <SHShape>")
}

func TestHeaderCommandWithModelArguments(t *testing.T) {
	out := run(t, newHeaderCmd(), "-c", config, "--module", "Geo", "testdata/shapes.yaml")

	assert.Contains(t, out, "@interface GeoCircle : GeoBase <GeoShape>")
}

func TestHeaderCommandWatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"objcexport.toml", "shapes.yaml"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	output := filepath.Join(dir, "Shapes.h")
	header := func() string {
		data, _ := os.ReadFile(output)
		return string(data)
	}

	cmd := newHeaderCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", filepath.Join(dir, "objcexport.toml"), "-o", output, "--watch"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(header(), "@interface GEOCircle")
	}, 5*time.Second, 20*time.Millisecond)

	model, err := os.ReadFile(filepath.Join(dir, "shapes.yaml"))
	require.NoError(t, err)
	renamed := strings.ReplaceAll(string(model), "Circle", "Disk")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.yaml"), []byte(renamed), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(header(), "@interface GEODisk")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestNamesCommand(t *testing.T) {
	out := run(t, newNamesCmd(), "-c", config)

	assert.Equal(t, "class\tgeometry\tGEOGeometryKt\n"+
		"class\tgeometry.Circle\tGEOCircle\n"+
		"protocol\tgeometry.Shape\tGEOShape\n", out)
}

func TestDumpCommand(t *testing.T) {
	out := run(t, newDumpCmd(), "-c", config)

	assert.Contains(t, out, "class\tgeometry.Circle\tGEOCircle\tpublic,final\n")
	assert.Contains(t, out, "interface\tgeometry.Shape\tGEOShape\tpublic\n")
	assert.NotContains(t, out, "kotlin.Any\t")
}

func TestDumpCommandRejectsUnknownFormat(t *testing.T) {
	cmd := newDumpCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", config, "-f", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExitCode(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "secret.yaml")
	require.NoError(t, os.WriteFile(model, []byte(`module: Secret
packages:
  - name: demo
    classes:
      - name: Secret
        visibility: internal
      - name: Api
        functions:
          - name: secret
            returns: demo.Secret
`), 0644))

	cmd := newHeaderCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", config, model})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err), "unexposed reference stops translation")

	cmd = newDumpCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", config, "-f", "xml"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err), "usage errors")
}
