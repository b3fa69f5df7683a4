package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Equal(t, "", RenderFileTree("my-app", nil))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	out := RenderFileTree("my-app", map[string]string{
		"README.md":             StatusUpdated,
		".prettierrc.json":      StatusCreated,
		".vscode/settings.json": StatusCreated,
		"src/App.jsx":           StatusUpdated,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "my-app/")
	assert.Contains(t, lines[1], "├── .vscode/")
	assert.Contains(t, lines[2], "│   └── settings.json")
	assert.Contains(t, lines[3], "├── src/")
	assert.Contains(t, lines[4], "│   └── App.jsx")
	assert.Contains(t, lines[5], "├── .prettierrc.json")
	assert.Contains(t, lines[6], "└── README.md")
	assert.Contains(t, lines[6], StatusUpdated)
}
