package addon

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vitestrap/cli/internal/overlay"
	"github.com/vitestrap/cli/internal/templates"
)

// TailwindName identifies the Tailwind CSS add-on.
const TailwindName = "tailwind"

const (
	tailwindVitePlugin     = "@tailwindcss/vite"
	tailwindPrettierPlugin = "prettier-plugin-tailwindcss"
	tailwindImport         = "import tailwindcss from '@tailwindcss/vite'"
	tailwindCall           = "tailwindcss()"
	tailwindReadmeHeading  = "## Tailwind CSS"

	stylesheetPath        = "src/index.css"
	stylesheetPlaceholder = "/* Tailwind CSS entry point */\n"
)

// ErrViteConfigNotFound is returned when no Vite config file exists.
var ErrViteConfigNotFound = errors.New("vite config not found")

// ErrPluginListNotFound is returned when the Vite config has no plugin list
// containing react() to splice into.
var ErrPluginListNotFound = errors.New("no plugins: [ ... react() ... ] list in vite config")

// reactPlugins matches a plugins array literal up to and including react(...).
// The react call may carry options, but not nested parentheses.
var reactPlugins = regexp.MustCompile(`(plugins\s*:\s*\[[^\]]*?\breact\([^()]*\))`)

// Tailwind installs Tailwind CSS v4 through its Vite plugin.
type Tailwind struct{}

// Name implements Addon.
func (Tailwind) Name() string {
	return TailwindName
}

// Apply implements Addon.
func (t Tailwind) Apply(ctx context.Context, p *Project) error {
	steps := []struct {
		name string
		run  func(context.Context, *Project) error
	}{
		{"install dependencies", t.install},
		{"configure vite", t.configureVite},
		{"write stylesheet", t.writeStylesheet},
		{"register prettier plugin", t.configurePrettier},
		{"configure editor", t.configureEditor},
		{"document in README", t.documentReadme},
	}

	for _, s := range steps {
		if p.Log != nil {
			p.Log.Debug("tailwind: " + s.name)
		}
		if err := s.run(ctx, p); err != nil {
			return fmt.Errorf("tailwind: %s: %w", s.name, err)
		}
	}
	return nil
}

func (Tailwind) install(ctx context.Context, p *Project) error {
	if p.SkipInstall {
		return nil
	}
	if err := p.Exec(ctx, p.PackageManager.Add("tailwindcss", tailwindVitePlugin)); err != nil {
		return err
	}
	return p.Exec(ctx, p.PackageManager.AddDev(tailwindPrettierPlugin))
}

// ViteConfigCandidates lists the config paths checked, in order.
func ViteConfigCandidates(configExt string) []string {
	other := "ts"
	if configExt == "ts" {
		other = "js"
	}
	return []string{
		"vite.config." + configExt,
		"vite.config." + other,
		"vite.config.mjs",
		"vite.config.mts",
	}
}

func (Tailwind) configureVite(_ context.Context, p *Project) error {
	for _, rel := range ViteConfigCandidates(p.Options.ConfigExt()) {
		ok, err := p.Writer.Exists(rel)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		src, err := p.Writer.ReadFile(rel)
		if err != nil {
			return err
		}

		updated, err := RewriteViteConfig(string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		return p.Writer.WriteFile(rel, updated)
	}

	return fmt.Errorf("%w in %s (looked for %s)", ErrViteConfigNotFound, p.Dir,
		strings.Join(ViteConfigCandidates(p.Options.ConfigExt()), ", "))
}

// RewriteViteConfig adds the Tailwind import and plugin call to a Vite
// config. Each addition is skipped when already present, so rewriting an
// already rewritten config returns it unchanged.
func RewriteViteConfig(src string) (string, error) {
	out := src

	if !strings.Contains(out, tailwindCall) {
		if !reactPlugins.MatchString(out) {
			return "", ErrPluginListNotFound
		}
		out = reactPlugins.ReplaceAllString(out, "${1}, "+tailwindCall)
	}

	if !strings.Contains(out, tailwindVitePlugin) {
		out = tailwindImport + "\n" + out
	}

	return out, nil
}

// writeStylesheet ensures the global stylesheet exists, then replaces it with
// the Tailwind entry point.
func (Tailwind) writeStylesheet(_ context.Context, p *Project) error {
	ok, err := p.Writer.Exists(stylesheetPath)
	if err != nil {
		return err
	}
	if !ok {
		if err := p.Writer.WriteFile(stylesheetPath, stylesheetPlaceholder); err != nil {
			return err
		}
	}

	css, err := templates.Render(templates.TailwindCSS, p.Options)
	if err != nil {
		return err
	}
	return p.Writer.WriteFile(stylesheetPath, css)
}

func (Tailwind) configurePrettier(_ context.Context, p *Project) error {
	return p.Writer.UpsertJSON(".prettierrc.json", func(doc *overlay.Document) (*overlay.Document, error) {
		_, err := doc.AddToSet("plugins", tailwindPrettierPlugin)
		return nil, err
	})
}

func (Tailwind) configureEditor(_ context.Context, p *Project) error {
	return p.Writer.UpsertJSON(".vscode/settings.json", func(doc *overlay.Document) (*overlay.Document, error) {
		assoc, err := doc.Object("files.associations")
		if err != nil {
			return nil, err
		}
		assoc.SetDefault("*.css", "tailwindcss")
		return nil, nil
	})
}

func (Tailwind) documentReadme(_ context.Context, p *Project) error {
	var existing []byte
	ok, err := p.Writer.Exists("README.md")
	if err != nil {
		return err
	}
	if ok {
		if existing, err = p.Writer.ReadFile("README.md"); err != nil {
			return err
		}
	}
	if strings.Contains(string(existing), tailwindReadmeHeading) {
		return nil
	}

	section, err := templates.Render(templates.TailwindReadme, p.Options)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		section = "\n" + section
	}
	return p.Writer.AppendFile("README.md", section)
}
