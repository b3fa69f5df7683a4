package overlay

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_PreservesOrder(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": [3, 1, 2]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())

	nested, err := doc.Object("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "b"}, nested.Keys())

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{
  "z": 1,
  "a": {
    "y": true,
    "b": null
  },
  "m": [
    3,
    1,
    2
  ]
}
`, string(out))
}

func TestParseDocument_DuplicateKeys(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"a": 1, "b": true, "a": 2, "c": {"x": 1, "x": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())
	v, _ := doc.Get("a")
	assert.Equal(t, "2", fmt.Sprint(v))

	doc.Set("a", 3)
	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{
  "a": 3,
  "b": true,
  "c": {
    "x": 2
  }
}
`, string(out))
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"malformed", `{"a": `, ""},
		{"array top level", `[1, 2]`, "an array"},
		{"string top level", `"hello"`, "a string"},
		{"trailing data", `{} {}`, "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestParseDocument_EmptyInput(t *testing.T) {
	doc, err := ParseDocument([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestDocument_NumbersAndEscaping(t *testing.T) {
	doc := MustParseDocument(`{"version": 1.50, "big": 12345678901234567890, "html": "<a href=\"x\">&</a>"}`)

	out, err := doc.Bytes()
	require.NoError(t, err)

	assert.Contains(t, string(out), `"version": 1.50`)
	assert.Contains(t, string(out), `"big": 12345678901234567890`)
	assert.Contains(t, string(out), `"html": "<a href=\"x\">&</a>"`)
}

func TestDocument_SetKeepsPosition(t *testing.T) {
	doc := MustParseDocument(`{"a": 1, "b": 2, "c": 3}`)
	doc.Set("b", "two")
	doc.Set("d", 4)

	assert.Equal(t, []string{"a", "b", "c", "d"}, doc.Keys())
	assert.Equal(t, "two", doc.GetString("b"))
}

func TestDocument_SetDefault(t *testing.T) {
	doc := MustParseDocument(`{"semi": false}`)

	assert.False(t, doc.SetDefault("semi", true))
	assert.True(t, doc.SetDefault("printWidth", 100))

	v, ok := doc.Get("semi")
	require.True(t, ok)
	assert.Equal(t, false, v)
	assert.Equal(t, []string{"semi", "printWidth"}, doc.Keys())
}

func TestDocument_Object(t *testing.T) {
	doc := MustParseDocument(`{"scripts": {"dev": "vite"}, "name": "my-app"}`)

	scripts, err := doc.Object("scripts")
	require.NoError(t, err)
	scripts.SetDefault("lint", "eslint .")

	created, err := doc.Object("lint-staged")
	require.NoError(t, err)
	assert.Equal(t, 0, created.Len())
	assert.True(t, doc.Has("lint-staged"))

	_, err = doc.Object("name")
	assert.ErrorContains(t, err, "not an object")

	assert.Equal(t, []string{"dev", "lint"}, scripts.Keys())
}

func TestDocument_AddToSet(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		add       []any
		want      string
		wantAdded bool
		wantErr   bool
	}{
		{
			name:      "absent key creates array",
			input:     `{}`,
			add:       []any{"prettier-plugin-tailwindcss"},
			want:      `["prettier-plugin-tailwindcss"]`,
			wantAdded: true,
		},
		{
			name:      "existing elements keep order",
			input:     `{"plugins": ["b", "a"]}`,
			add:       []any{"c"},
			want:      `["b","a","c"]`,
			wantAdded: true,
		},
		{
			name:  "present value is not duplicated",
			input: `{"plugins": ["prettier-plugin-tailwindcss"]}`,
			add:   []any{"prettier-plugin-tailwindcss"},
			want:  `["prettier-plugin-tailwindcss"]`,
		},
		{
			name:    "non-array value is an error",
			input:   `{"plugins": "oops"}`,
			add:     []any{"x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := MustParseDocument(tt.input)
			added, err := doc.AddToSet("plugins", tt.add...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)

			v, _ := doc.Get("plugins")
			var buf bytes.Buffer
			require.NoError(t, writeValue(&buf, v))
			assert.JSONEq(t, tt.want, buf.String())
		})
	}
}

func TestDocument_MergeDefaults(t *testing.T) {
	doc := MustParseDocument(`{
  "editor.formatOnSave": false,
  "custom": {"keep": 1},
  "eslint.validate": ["javascript"]
}`)
	defaults := MustParseDocument(`{
  "editor.formatOnSave": true,
  "editor.defaultFormatter": "esbenp.prettier-vscode",
  "custom": {"keep": 2, "added": true},
  "eslint.validate": ["javascript", "javascriptreact"]
}`)

	doc.MergeDefaults(defaults)

	assert.Equal(t, []string{"editor.formatOnSave", "custom", "eslint.validate", "editor.defaultFormatter"}, doc.Keys())

	v, _ := doc.Get("editor.formatOnSave")
	assert.Equal(t, false, v, "existing scalar wins")

	custom, err := doc.Object("custom")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "added"}, custom.Keys())

	arr, _ := doc.Get("eslint.validate")
	assert.Len(t, arr, 1, "existing array wins")
}

func TestDocument_MergeDefaultsCopies(t *testing.T) {
	defaults := MustParseDocument(`{"settings": {"react": {"version": "detect"}}}`)
	doc := NewDocument()
	doc.MergeDefaults(defaults)

	settings, err := doc.Object("settings")
	require.NoError(t, err)
	settings.Set("extra", true)

	original, err := defaults.Object("settings")
	require.NoError(t, err)
	assert.False(t, original.Has("extra"), "merged values must not alias the defaults")
}

func TestDocument_SetNormalizes(t *testing.T) {
	doc := NewDocument()
	doc.Set("list", []string{"a", "b"})
	doc.Set("map", map[string]string{"z": "1", "a": "2"})
	doc.Set("n", 100)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"list": ["a", "b"], "map": {"a": "2", "z": "1"}, "n": 100}`, string(out))

	m, err := doc.Object("map")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z"}, m.Keys(), "map keys are sorted for determinism")
}

func TestDocument_SetPanicsOnUnsupportedType(t *testing.T) {
	assert.Panics(t, func() {
		NewDocument().Set("x", struct{}{})
	})
}
