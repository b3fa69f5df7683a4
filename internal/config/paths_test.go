package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err, "should get home directory")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no tilde",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path without tilde",
			input:    "relative/path",
			expected: "relative/path",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "tilde with path",
			input:    "~/.vitestrap/config.yaml",
			expected: filepath.Join(homeDir, ".vitestrap", "config.yaml"),
		},
		{
			name:     "tilde username is left alone",
			input:    "~other/config.yaml",
			expected: "~other/config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".vitestrap"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".vitestrap", "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".vitestrap", "config.yaml"), got)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "/custom/config.yaml")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/custom/config.yaml", got)
	})
}
