package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/vitestrap/cli/internal/errors"
	"github.com/vitestrap/cli/internal/testutil"
)

func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".vitestrap", "config.yaml")

	out, _, err := runRoot(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	content := testutil.ReadFile(t, home, ".vitestrap/config.yaml")
	assert.Contains(t, content, "packageManager: npm")
	assert.Contains(t, content, "defaultBranch: main")

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, _, err := runRoot(t, "config", "init")
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrValidation)
		assert.Contains(t, err.Error(), "--force")
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("packageManager: yarn\n"), 0o644))

		_, _, err := runRoot(t, "config", "init", "--force")
		require.NoError(t, err)
		assert.Contains(t, testutil.ReadFile(t, home, ".vitestrap/config.yaml"), "packageManager: npm")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestConfigInit_RespectsConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "custom.yaml")

	_, _, err := runRoot(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	home := isolate(t)

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runRoot(t, "config", "vet")
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("generated defaults are valid", func(t *testing.T) {
		_, _, err := runRoot(t, "config", "init", "--force")
		require.NoError(t, err)

		out, _, err := runRoot(t, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid")
	})

	t.Run("invalid values are reported", func(t *testing.T) {
		testutil.WriteFile(t, home, ".vitestrap/config.yaml", "packageManager: bun\nregistry: x\n")

		_, stderr, err := runRoot(t, "config", "vet")
		require.Error(t, err)

		var exitErr *oerrors.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.True(t, exitErr.Printed)
		assert.Equal(t, oerrors.ExitGeneralError, exitErr.Code)
		assert.Contains(t, stderr, "config validation failed")
		assert.Contains(t, stderr, "packageManager")
		assert.Contains(t, stderr, "registry")
	})
}

func TestConfigView(t *testing.T) {
	home := isolate(t)
	testutil.WriteFile(t, home, ".vitestrap/config.yaml", "template: typescript\n")
	t.Setenv("VITESTRAP_TAILWIND", "true")

	out, _, err := runRoot(t, "config", "view")
	require.NoError(t, err)
	assert.Contains(t, out, "packageManager: npm")
	assert.Contains(t, out, "template: typescript")
	assert.Contains(t, out, "tailwind: true")

	out, _, err = runRoot(t, "config", "view", "--sources")
	require.NoError(t, err)
	assert.Contains(t, out, "template:\n  source: config\n  value: typescript")
	assert.Contains(t, out, "tailwind:\n  source: env\n  value: true")
	assert.Contains(t, out, "packageManager:\n  source: default\n  value: npm")
}

func TestConfigSchema(t *testing.T) {
	isolate(t)

	out, _, err := runRoot(t, "config", "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, schema["properties"], "packageManager")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vitestrap version")
	assert.Contains(t, out, "Go:")
}
