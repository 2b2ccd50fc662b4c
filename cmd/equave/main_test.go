package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// write a settings file pointing at a library in dir and return its path
func testConfig(t *testing.T, dir string) string {
	t.Helper()
	lib, err := os.ReadFile(filepath.Join("..", "..", "config", "scales.yaml"))
	require.NoError(t, err)
	libPath := filepath.Join(dir, "scales.yaml")
	require.NoError(t, os.WriteFile(libPath, lib, 0o644))
	path := filepath.Join(dir, "settings.csv")
	settings := fmt.Sprintf("ReferenceFreq, 440\nLogLevel, error\nScaleLibrary, %s\n", libPath)
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o644))
	return path
}

// run the command line and return its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", testConfig(t, t.TempDir())}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShowCmd(t *testing.T) {
	out, err := run(t, "show", "5/4", "3/2", "2/1")
	require.NoError(t, err)
	assert.Equal(t, "[1/1 5/4 3/2] / 2/1\nsteps: 5/4 6/5\n", out)

	out, err = run(t, "show", "--scale", "bohlen-pierce")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.SplitN(out, "\n", 2)[0], "/ 3/1"), out)

	_, err = run(t, "show")
	assert.Error(t, err)
	_, err = run(t, "show", "--scale", "nope")
	assert.ErrorIs(t, err, errUnknownScale)
}

func TestModeCmd(t *testing.T) {
	out, err := run(t, "mode", "1", "--scale", "ji-major")
	require.NoError(t, err)
	assert.Equal(t, "[1/1 10/9 32/27 4/3 40/27 5/3 16/9] / 2/1\n", out)

	out, err = run(t, "mode", "--equave", "3/1", "1", "1/1", "5/3")
	require.NoError(t, err)
	assert.Equal(t, "[1/1 9/5] / 3/1\n", out)

	_, err = run(t, "mode", "x", "1/1")
	assert.Error(t, err)
}

func TestResolveCmd(t *testing.T) {
	out, err := run(t, "resolve", "6", "8", "--scale", "ji-major")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "6\t15/8\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "7\t2/1\tA5"), lines[1])

	out, err = run(t, "resolve", "--ref", "100", "0", "1", "3/2")
	require.NoError(t, err)
	assert.Contains(t, out, "100.000 Hz")

	_, err = run(t, "resolve", "2", "1", "3/2")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	_, err := run(t, "export", path, "0", "5", "--scale", "slendro")
	require.NoError(t, err)
	notes, _ := readSMF(t, path)
	assert.Len(t, notes, 5)
}

func TestScalesAndImportCmd(t *testing.T) {
	dir := t.TempDir()
	config := testConfig(t, dir)
	scl := filepath.Join(dir, "pentatonic.scl")
	require.NoError(t, os.WriteFile(scl, []byte(pentatonic), 0o644))

	exec := func(args ...string) string {
		var out bytes.Buffer
		cmd := newRootCmd(&out)
		cmd.SetArgs(append([]string{"--config", config}, args...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	assert.NotContains(t, exec("scales"), "pentatonic")
	exec("import", scl)
	out := exec("scales")
	assert.Contains(t, out, "pentatonic\t5\tJust pentatonic\n")
	assert.Contains(t, out, "ji-major\t7\t")

	assert.Equal(t, "[1/1 9/8 5/4 3/2 5/3] / 2/1\nsteps: 9/8 10/9 6/5 10/9\n",
		exec("show", "--scale", "pentatonic"))
	assert.Equal(t, "[1/1 9/8 5/4 3/2 5/3] / 2/1\nsteps: 9/8 10/9 6/5 10/9\n",
		exec("show", "--scale", scl))
}
