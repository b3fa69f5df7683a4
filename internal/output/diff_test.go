package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocumentDiff(t *testing.T) {
	tests := []struct {
		name      string
		before    string
		after     string
		wantEmpty bool
		contains  []string
	}{
		{
			name:      "identical documents",
			before:    `{"name": "my-app", "private": true}`,
			after:     "{\n  \"name\": \"my-app\",\n  \"private\": true\n}\n",
			wantEmpty: true,
		},
		{
			name:     "added script",
			before:   `{"scripts": {"dev": "vite"}}`,
			after:    `{"scripts": {"dev": "vite", "lint": "eslint ."}}`,
			contains: []string{"scripts", "lint"},
		},
		{
			name:     "new file diffs against empty object",
			before:   "",
			after:    `{"semi": true}`,
			contains: []string{"semi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderDocumentDiff("package.json", []byte(tt.before), []byte(tt.after))
			require.NoError(t, err)

			if tt.wantEmpty {
				assert.Empty(t, out)
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRenderDocumentDiff_InvalidInput(t *testing.T) {
	_, err := RenderDocumentDiff("package.json", []byte("{"), []byte("{}"))
	assert.Error(t, err)
}
