package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// RenderDocumentDiff computes a structural diff between two JSON or YAML
// documents with dyff. Returns an empty string when they are equivalent.
func RenderDocumentDiff(name string, before, after []byte) (string, error) {
	from, err := loadInput(name+" (before)", before)
	if err != nil {
		return "", fmt.Errorf("parsing previous %s: %w", name, err)
	}

	to, err := loadInput(name+" (after)", after)
	if err != nil {
		return "", fmt.Errorf("parsing new %s: %w", name, err)
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing %s: %w", name, err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// loadInput parses document bytes into a dyff input. An empty document is
// treated as an empty object so a freshly created file diffs against "{}".
func loadInput(location string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  location,
		Documents: docs,
	}, nil
}
