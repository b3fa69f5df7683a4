package overlay

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vitestrap/cli/internal/output"
)

// Mutator transforms a parsed JSON document.
//
// It may edit doc in place and return nil, or return a replacement document.
// Either way the result is what gets written. Mutators should only add
// defaults (SetDefault, MergeDefaults) or extend known structures (AddToSet)
// so that applying one twice is a no-op.
type Mutator func(doc *Document) (*Document, error)

// Defaults returns a Mutator that deep-merges defaults into the document
// without overwriting any existing value.
func Defaults(defaults *Document) Mutator {
	return func(doc *Document) (*Document, error) {
		doc.MergeDefaults(defaults)
		return nil, nil
	}
}

// UpsertJSON loads rel as a JSON object (an absent file is an empty object),
// applies mutate and writes the result back through WriteFile.
// A parse or mutator failure aborts without writing.
func (w *Writer) UpsertJSON(rel string, mutate Mutator) error {
	before, err := w.ReadFile(rel)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	doc, err := ParseDocument(before)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", rel, err)
	}

	result, err := mutate(doc)
	if err != nil {
		return fmt.Errorf("updating %s: %w", rel, err)
	}
	if result != nil {
		doc = result
	}

	after, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}

	if output.IsDebug() {
		w.logDiff(rel, before, after)
	}

	return w.WriteFile(rel, string(after))
}

func (w *Writer) logDiff(rel string, before, after []byte) {
	diff, err := output.RenderDocumentDiff(rel, before, after)
	if err != nil {
		output.Debug("could not diff document", "path", rel, "err", err)
		return
	}
	if diff != "" {
		output.Debug("merged "+rel+"\n"+diff, "path", rel)
	}
}
