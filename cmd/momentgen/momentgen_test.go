package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMomentCmd(t *testing.T) {
	for _, policy := range []string{"never", "always"} {
		out, err := execute(t, "moment", "--ops", "a,b", "--level", "1", "--policy", policy)
		require.NoError(t, err, policy)
		assert.Contains(t, out, "# moment[1], 3x3 Hermitian monomial matrix")
		assert.Contains(t, out, "[#1, #2, #3]\n[#2, #4, #5]\n[#3, #5*, #6]\n")
		assert.Contains(t, out, "#5\ta b\tb a\n")
		assert.Contains(t, out, "#4\ta a\n")
	}
}

func TestLocalizingCmd(t *testing.T) {
	out, err := execute(t, "localizing", "--ops", "x,y", "--non-hermitian", "x", "--word", "x", "--words")
	require.NoError(t, err)
	assert.Contains(t, out, "# localizing[1; x], 4x4 non-Hermitian monomial matrix")
	assert.Contains(t, out, "# words\n[x, ")

	_, err = execute(t, "localizing", "--ops", "x", "--word", "z")
	assert.Error(t, err)
	_, err = execute(t, "localizing", "--ops", "x")
	assert.Error(t, err, "--word is required")
}

func TestConfigCmd_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "momentgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threading:\n  policy: always\n  threshold: 9\n"), 0o644))

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "policy: always")
	assert.Contains(t, out, "threshold: 9")

	t.Setenv("MOMENTGEN_THREADING_POLICY", "never")
	out, err = execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "policy: never")

	out, err = execute(t, "config", "--config", path, "--policy", "optional")
	require.NoError(t, err)
	assert.Contains(t, out, "policy: optional")
}

func TestMomentCmd_AlgebraFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momentgen.yaml")
	doc := "algebra:\n  operators:\n    - {name: a, hermitian: true}\n    - {name: b, hermitian: true}\n  commuting: true\n  symmetries:\n    - {a: b, b: a}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "moment", "--config", path, "--words")
	require.NoError(t, err)
	assert.Contains(t, out, "# aliased words")
	assert.Contains(t, out, "[#1, #2, #2]")
}

func TestMomentCmd_Errors(t *testing.T) {
	_, err := execute(t, "moment")
	assert.ErrorIs(t, err, errNoAlgebra)

	_, err = execute(t, "moment", "--ops", "a", "--policy", "sometimes")
	assert.Error(t, err)

	_, err = execute(t, "moment", "--ops", "a", "--level", "-1")
	assert.Error(t, err)
}

func TestMomentCmd_Metrics(t *testing.T) {
	out, err := execute(t, "moment", "--ops", "a,b", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "# metrics")
	assert.Contains(t, out, "lvlmoment_matrix_builds_total")
}
