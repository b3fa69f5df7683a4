package overlay

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitestrap/cli/internal/output"
)

const root = "/work/my-app"

func newTestWriter(t *testing.T) (*Writer, afero.Fs, *[]Change) {
	t.Helper()
	memfs := afero.NewMemMapFs()
	require.NoError(t, memfs.MkdirAll(root, 0o755))

	var seen []Change
	w := NewWriter(memfs, root, WithOnChange(func(c Change) {
		seen = append(seen, c)
	}))
	return w, memfs, &seen
}

func readFile(t *testing.T, fsys afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, root+"/"+rel)
	require.NoError(t, err)
	return string(data)
}

func TestWriteFile_CreatesAncestors(t *testing.T) {
	w, memfs, seen := newTestWriter(t)

	require.NoError(t, w.WriteFile(".vscode/settings.json", "{}\n"))

	isDir, err := afero.IsDir(memfs, root+"/.vscode")
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Equal(t, "{}\n", readFile(t, memfs, ".vscode/settings.json"))
	assert.Equal(t, []Change{{Path: ".vscode/settings.json", Status: output.StatusCreated}}, *seen)
}

func TestWriteFile_FullOverwrite(t *testing.T) {
	w, memfs, _ := newTestWriter(t)
	require.NoError(t, afero.WriteFile(memfs, root+"/src/App.jsx", []byte("export default function App() { return <h1>Vite</h1> }\n// a very long original file"), 0o644))

	require.NoError(t, w.WriteFile("src/App.jsx", "short"))
	assert.Equal(t, "short", readFile(t, memfs, "src/App.jsx"), "no trace of the previous content")
}

func TestWriteFile_Statuses(t *testing.T) {
	w, _, seen := newTestWriter(t)

	require.NoError(t, w.WriteFile("README.md", "a"))
	require.NoError(t, w.WriteFile("README.md", "a"))
	require.NoError(t, w.WriteFile("README.md", "b"))

	require.Len(t, *seen, 3)
	assert.Equal(t, output.StatusCreated, (*seen)[0].Status)
	assert.Equal(t, output.StatusUnchanged, (*seen)[1].Status)
	assert.Equal(t, output.StatusUpdated, (*seen)[2].Status)

	assert.Equal(t, map[string]string{"README.md": output.StatusCreated}, w.Summary())
	assert.Len(t, w.Changes(), 3)
}

func TestWriteFile_RejectsEscapingPaths(t *testing.T) {
	w, _, _ := newTestWriter(t)

	for _, rel := range []string{"../outside.txt", "/etc/passwd", ".", "a/../../b"} {
		t.Run(rel, func(t *testing.T) {
			assert.Error(t, w.WriteFile(rel, "x"))
		})
	}
}

func TestWriteFileMode_AppliesToExistingFile(t *testing.T) {
	w, memfs, _ := newTestWriter(t)
	require.NoError(t, memfs.MkdirAll(root+"/.husky", 0o755))
	require.NoError(t, afero.WriteFile(memfs, root+"/.husky/pre-commit", []byte("npm test\n"), 0o644))

	require.NoError(t, w.WriteFileMode(".husky/pre-commit", "npx lint-staged\n", 0o755))

	info, err := memfs.Stat(root + "/.husky/pre-commit")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
	assert.Equal(t, "npx lint-staged\n", readFile(t, memfs, ".husky/pre-commit"))
}

func TestWriteAll_SortedOrder(t *testing.T) {
	w, memfs, seen := newTestWriter(t)

	files := map[string]string{
		"src/App.jsx":      "app",
		".prettierignore":  "dist\n",
		"README.md":        "# my-app\n",
		".vscode/ext.json": "{}",
	}
	require.NoError(t, w.WriteAll(files))

	var order []string
	for _, c := range *seen {
		order = append(order, c.Path)
	}
	assert.Equal(t, []string{".prettierignore", ".vscode/ext.json", "README.md", "src/App.jsx"}, order)

	for rel, content := range files {
		assert.Equal(t, content, readFile(t, memfs, rel))
	}
}

func TestAppendFile(t *testing.T) {
	w, memfs, seen := newTestWriter(t)

	require.NoError(t, w.AppendFile("README.md", "# my-app\n"))
	require.NoError(t, w.AppendFile("README.md", "\n## Tailwind CSS\n"))

	assert.Equal(t, "# my-app\n\n## Tailwind CSS\n", readFile(t, memfs, "README.md"))
	require.Len(t, *seen, 2)
	assert.Equal(t, output.StatusCreated, (*seen)[0].Status)
	assert.Equal(t, output.StatusUpdated, (*seen)[1].Status)
}

func TestReadFileAndExists(t *testing.T) {
	w, _, _ := newTestWriter(t)

	ok, err := w.Exists("package.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = w.ReadFile("package.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, w.WriteFile("package.json", "{}\n"))
	ok, err = w.Exists("package.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteFile_ReadOnlyFs(t *testing.T) {
	memfs := afero.NewMemMapFs()
	w := NewWriter(afero.NewReadOnlyFs(memfs), root, WithOnChange(nil))

	err := w.WriteFile("README.md", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "README.md")
	assert.Empty(t, w.Changes())
}
