// Package overlay writes tooling files into a generated project: full-content
// writes for static templates and order-preserving, set-if-absent merges for
// JSON documents that the generator or the user may already have edited.
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/vitestrap/cli/internal/output"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// Change records one write performed by a Writer.
type Change struct {
	// Path is slash-separated and relative to the project root.
	Path string

	// Status is output.StatusCreated, output.StatusUpdated or output.StatusUnchanged.
	Status string
}

// Writer writes files beneath a project root on an afero filesystem.
// All paths given to its methods are slash-separated and relative to the root.
type Writer struct {
	fs       afero.Fs
	root     string
	onChange func(Change)
	changes  []Change
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithOnChange replaces the default progress line emitted after each write.
func WithOnChange(fn func(Change)) WriterOption {
	return func(w *Writer) {
		w.onChange = fn
	}
}

// NewWriter creates a Writer rooted at root.
func NewWriter(fsys afero.Fs, root string, opts ...WriterOption) *Writer {
	w := &Writer{
		fs:       fsys,
		root:     root,
		onChange: logChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func logChange(c Change) {
	output.Info(output.FormatFileLine(c.Status, c.Path))
}

// Root returns the project directory.
func (w *Writer) Root() string {
	return w.root
}

// Fs returns the underlying filesystem.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// Changes returns every write in the order performed.
func (w *Writer) Changes() []Change {
	out := make([]Change, len(w.changes))
	copy(out, w.changes)
	return out
}

// Summary collapses Changes to one status per path. A file created and then
// updated in the same run reports "created".
func (w *Writer) Summary() map[string]string {
	rank := map[string]int{
		output.StatusUnchanged: 0,
		output.StatusUpdated:   1,
		output.StatusCreated:   2,
	}

	summary := make(map[string]string, len(w.changes))
	for _, c := range w.changes {
		if prev, ok := summary[c.Path]; ok && rank[prev] >= rank[c.Status] {
			continue
		}
		summary[c.Path] = c.Status
	}
	return summary
}

// abs resolves rel against the root, refusing paths that leave it.
func (w *Writer) abs(rel string) (string, error) {
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("%s: path must be inside the project directory", rel)
	}
	return filepath.Join(w.root, filepath.FromSlash(clean)), nil
}

// Exists reports whether rel exists.
func (w *Writer) Exists(rel string) (bool, error) {
	p, err := w.abs(rel)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(w.fs, p)
	if err != nil {
		return false, fmt.Errorf("%s: %w", rel, err)
	}
	return ok, nil
}

// ReadFile returns the content of rel. A missing file yields an error
// matching fs.ErrNotExist.
func (w *Writer) ReadFile(rel string) ([]byte, error) {
	p, err := w.abs(rel)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(w.fs, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return data, nil
}

// WriteFile creates every missing ancestor of rel, then replaces its content.
func (w *Writer) WriteFile(rel, content string) error {
	return w.write(rel, content, fileMode, false)
}

// WriteFileMode is WriteFile with an explicit permission that is applied even
// when the file already exists.
func (w *Writer) WriteFileMode(rel, content string, mode os.FileMode) error {
	return w.write(rel, content, mode, true)
}

func (w *Writer) write(rel, content string, mode os.FileMode, chmod bool) error {
	p, err := w.abs(rel)
	if err != nil {
		return err
	}

	status, err := w.statusFor(p, []byte(content))
	if err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	if err := w.fs.MkdirAll(filepath.Dir(p), dirMode); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	if err := afero.WriteFile(w.fs, p, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	if chmod {
		if err := w.fs.Chmod(p, mode); err != nil {
			return fmt.Errorf("setting mode on %s: %w", rel, err)
		}
	}

	w.record(rel, status)
	return nil
}

// AppendFile appends content to rel, creating it (and its ancestors) when
// absent. Existing bytes are never rewritten.
func (w *Writer) AppendFile(rel, content string) error {
	p, err := w.abs(rel)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(w.fs, p)
	if err != nil {
		return fmt.Errorf("appending to %s: %w", rel, err)
	}

	if err := w.fs.MkdirAll(filepath.Dir(p), dirMode); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	f, err := w.fs.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("appending to %s: %w", rel, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("appending to %s: %w", rel, err)
	}

	status := output.StatusUpdated
	switch {
	case !exists:
		status = output.StatusCreated
	case content == "":
		status = output.StatusUnchanged
	}
	w.record(rel, status)
	return nil
}

// WriteAll writes every entry of files in sorted path order.
func (w *Writer) WriteAll(files map[string]string) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := w.WriteFile(p, files[p]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) statusFor(p string, content []byte) (string, error) {
	prev, err := afero.ReadFile(w.fs, p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return output.StatusCreated, nil
	case err != nil:
		return "", err
	case bytes.Equal(prev, content):
		return output.StatusUnchanged, nil
	default:
		return output.StatusUpdated, nil
	}
}

func (w *Writer) record(rel, status string) {
	c := Change{Path: path.Clean(filepath.ToSlash(rel)), Status: status}
	w.changes = append(w.changes, c)
	if w.onChange != nil {
		w.onChange(c)
	}
}
