package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.Equal(t, "javascript", cfg.Template)
	require.NotNil(t, cfg.Tailwind)
	assert.False(t, *cfg.Tailwind)
	require.NotNil(t, cfg.Hooks)
	assert.True(t, *cfg.Hooks)
	require.NotNil(t, cfg.Git.Init)
	assert.True(t, *cfg.Git.Init)
	assert.Equal(t, "main", cfg.Git.DefaultBranch)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestDefaultConfig_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, string(data), "packageManager: npm")
	assert.Contains(t, string(data), "defaultBranch: main")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *DefaultConfig(), decoded)
}

func TestConfig_ZeroValueOmitsEverything(t *testing.T) {
	data, err := yaml.Marshal(&Config{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestJSONSchema(t *testing.T) {
	data, err := JSONSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "vitestrap configuration", schema["title"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema should have properties")
	for _, key := range []string{"packageManager", "template", "tailwind", "hooks", "git", "log"} {
		assert.Contains(t, props, key)
	}

	pm := props["packageManager"].(map[string]any)
	assert.ElementsMatch(t, []any{"npm", "yarn", "pnpm"}, pm["enum"])
}
