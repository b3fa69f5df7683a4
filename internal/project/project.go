// Package project defines the immutable scaffold options shared by every
// step of a vitestrap run.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	oerrors "github.com/vitestrap/cli/internal/errors"
)

// Language selects the source flavour of the generated project.
type Language string

const (
	// JavaScript generates plain .jsx sources.
	JavaScript Language = "javascript"

	// TypeScript generates statically typed .tsx sources.
	TypeScript Language = "typescript"
)

// DefaultLanguage is used when no template is given or the value is unknown.
const DefaultLanguage = JavaScript

// ParseLanguage maps a template argument to a Language.
// The boolean is false when the input was not recognized and the default
// was returned instead. Empty input returns the default with ok=true.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLanguage, true
	case "javascript", "js", "react":
		return JavaScript, true
	case "typescript", "ts", "react-ts":
		return TypeScript, true
	default:
		return DefaultLanguage, false
	}
}

// ValidLanguages returns the canonical language names.
func ValidLanguages() []string {
	return []string{string(JavaScript), string(TypeScript)}
}

// String returns the canonical name.
func (l Language) String() string {
	return string(l)
}

// Options is the input record for one scaffold run. It is created once from
// parsed input and never mutated; derive modified copies with the With* methods.
type Options struct {
	// AppName is used verbatim as the directory name and in generated text.
	AppName string

	// Language selects the plain or typed variant.
	Language Language

	// PackageManager is the package manager binary name (npm, yarn, pnpm).
	PackageManager string

	// Tailwind enables the Tailwind CSS add-on.
	Tailwind bool
}

// Typed reports whether the project uses TypeScript.
func (o Options) Typed() bool {
	return o.Language == TypeScript
}

// ViteTemplate returns the create-vite template name.
func (o Options) ViteTemplate() string {
	if o.Typed() {
		return "react-ts"
	}
	return "react"
}

// SourceExt returns the component source extension without a dot.
func (o Options) SourceExt() string {
	if o.Typed() {
		return "tsx"
	}
	return "jsx"
}

// ConfigExt returns the config file extension without a dot.
func (o Options) ConfigExt() string {
	if o.Typed() {
		return "ts"
	}
	return "js"
}

// EntryFile returns the slash-separated path of the starter component.
func (o Options) EntryFile() string {
	return "src/App." + o.SourceExt()
}

// WithPackageManager returns a copy of o using pm.
func (o Options) WithPackageManager(pm string) Options {
	o.PackageManager = pm
	return o
}

// Validate checks that AppName can be used as a single directory name.
func (o Options) Validate() error {
	name := strings.TrimSpace(o.AppName)

	switch {
	case name == "":
		return oerrors.NewValidationError(
			"application name must not be empty", "", "app-name",
			"Pass a name: vitestrap my-app")
	case name != o.AppName:
		return oerrors.NewValidationError(
			fmt.Sprintf("application name %q has leading or trailing whitespace", o.AppName),
			"", "app-name", "")
	case name == "." || name == "..":
		return oerrors.NewValidationError(
			fmt.Sprintf("application name %q is not a directory name", name),
			"", "app-name", "Use --overlay-only -d <dir> to re-apply tooling to an existing project")
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return oerrors.NewValidationError(
			fmt.Sprintf("application name %q must not contain path separators", name),
			"", "app-name", "Use --dir to choose the parent directory")
	}

	return nil
}
