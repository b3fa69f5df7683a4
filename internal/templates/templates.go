// Package templates provides the embedded tooling files vitestrap overlays on
// a generated project, rendered as a pure function of the scaffold options.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
)

//go:embed files/*.tmpl
var filesFS embed.FS

// parsed holds every template, keyed by file base name.
var parsed = template.Must(template.New("vitestrap").Option("missingkey=error").ParseFS(filesFS, "files/*.tmpl"))

// Template names used outside the registry.
const (
	TailwindReadme = "tailwind-readme.md.tmpl"
	TailwindCSS    = "tailwind-index.css.tmpl"
)

// FileRegistry maps slash-separated project-relative paths to file content.
type FileRegistry map[string]string

// Paths returns the registry keys in sorted order.
func (r FileRegistry) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// IsJSON reports whether path names a JSON document that should be merged
// rather than overwritten.
func IsJSON(path string) bool {
	return strings.HasSuffix(path, ".json")
}

// Split partitions the registry into JSON documents and plain files.
func (r FileRegistry) Split() (jsonFiles, plainFiles FileRegistry) {
	jsonFiles, plainFiles = FileRegistry{}, FileRegistry{}
	for p, content := range r {
		if IsJSON(p) {
			jsonFiles[p] = content
		} else {
			plainFiles[p] = content
		}
	}
	return jsonFiles, plainFiles
}

// entry binds a project path to the template that renders it.
type entry struct {
	path     func(project.Options) string
	template string
}

func fixed(p string) func(project.Options) string {
	return func(project.Options) string { return p }
}

var registry = []entry{
	{fixed(".prettierrc.json"), "prettierrc.json.tmpl"},
	{fixed(".prettierignore"), "prettierignore.tmpl"},
	{fixed(".eslintrc.json"), "eslintrc.json.tmpl"},
	{fixed(".eslintignore"), "eslintignore.tmpl"},
	{fixed(".vscode/settings.json"), "vscode-settings.json.tmpl"},
	{fixed(".vscode/extensions.json"), "vscode-extensions.json.tmpl"},
	{fixed("README.md"), "README.md.tmpl"},
	{project.Options.EntryFile, "App.tmpl"},
}

// Files renders the registry for opts. It does not validate opts; the only
// possible error is a template execution failure.
func Files(opts project.Options) (FileRegistry, error) {
	files := make(FileRegistry, len(registry))
	for _, e := range registry {
		content, err := Render(e.template, opts)
		if err != nil {
			return nil, err
		}
		files[e.path(opts)] = content
	}
	return files, nil
}

// Render executes a single named template for opts.
func Render(name string, opts project.Options) (string, error) {
	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, name, newData(opts)); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// data is the value templates execute against.
type data struct {
	AppName   string
	Typed     bool
	Tailwind  bool
	SourceExt string
	ConfigExt string

	pm pkgmanager.Manager
}

func newData(opts project.Options) data {
	pm, _ := pkgmanager.Parse(opts.PackageManager)
	return data{
		AppName:   opts.AppName,
		Typed:     opts.Typed(),
		Tailwind:  opts.Tailwind,
		SourceExt: opts.SourceExt(),
		ConfigExt: opts.ConfigExt(),
		pm:        pm,
	}
}

// Run renders the command that runs a package.json script.
func (d data) Run(script string) string {
	return d.pm.RunScript(script).String()
}

// InstallAll renders the command that installs every dependency.
func (d data) InstallAll() string {
	return d.pm.InstallAll().String()
}
