package scaffold

import (
	"github.com/vitestrap/cli/internal/overlay"
	"github.com/vitestrap/cli/internal/project"
)

// DevDependencies returns the tooling packages installed into every project.
func DevDependencies(opts project.Options) []string {
	deps := []string{
		"prettier",
		"eslint",
		"eslint-config-prettier",
		"eslint-plugin-react",
		"eslint-plugin-react-hooks",
		"eslint-plugin-jsx-a11y",
		"husky",
		"lint-staged",
	}
	if opts.Typed() {
		deps = append(deps, "@typescript-eslint/parser", "@typescript-eslint/eslint-plugin")
	}
	return deps
}

// manifestDefaults adds the lint/format scripts and the lint-staged map to
// package.json. Existing scripts and an existing lint-staged config win.
func manifestDefaults(opts project.Options) overlay.Mutator {
	return func(doc *overlay.Document) (*overlay.Document, error) {
		scripts, err := doc.Object("scripts")
		if err != nil {
			return nil, err
		}
		scripts.SetDefault("lint", "eslint .")
		scripts.SetDefault("lint:fix", "eslint . --fix")
		scripts.SetDefault("format", "prettier --write .")
		scripts.SetDefault("format:check", "prettier --check .")

		doc.SetDefault("lint-staged", lintStaged(opts))
		return nil, nil
	}
}

func lintStaged(opts project.Options) *overlay.Document {
	sources := "*.{js,jsx}"
	if opts.Typed() {
		sources = "*.{js,jsx,ts,tsx}"
	}

	staged := overlay.NewDocument()
	staged.Set(sources, []string{"eslint --fix", "prettier --write"})
	staged.Set("*.{json,css,md}", []string{"prettier --write"})
	return staged
}
