// Package addon extends an already overlaid project with optional features.
package addon

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vitestrap/cli/internal/overlay"
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
	"github.com/vitestrap/cli/internal/runner"
)

// Addon is an optional extension applied after the base overlay.
type Addon interface {
	// Name is the identifier used in flags and config.
	Name() string

	// Apply performs every step of the add-on in order. Any error is fatal;
	// steps already applied are not rolled back.
	Apply(ctx context.Context, p *Project) error
}

// Project is what an add-on operates on.
type Project struct {
	// Dir is the absolute project directory.
	Dir string

	// Options are the effective scaffold options.
	Options project.Options

	// Writer is rooted at Dir.
	Writer *overlay.Writer

	// Runner executes package-manager commands.
	Runner runner.Runner

	// PackageManager is the detected package manager.
	PackageManager pkgmanager.Manager

	// SkipInstall suppresses dependency installation steps.
	SkipInstall bool

	// Log receives progress messages. May be nil.
	Log *log.Logger
}

// Exec runs cmd in the project directory.
func (p *Project) Exec(ctx context.Context, cmd pkgmanager.Command) error {
	return p.Runner.Run(ctx, p.Dir, cmd.Name, cmd.Args...)
}

var registry = map[string]Addon{}

// Register makes a an available add-on. It panics on duplicate names.
func Register(a Addon) {
	if _, dup := registry[a.Name()]; dup {
		panic(fmt.Sprintf("addon: %q registered twice", a.Name()))
	}
	registry[a.Name()] = a
}

// Lookup returns the add-on registered under name.
func Lookup(name string) (Addon, bool) {
	a, ok := registry[name]
	return a, ok
}

// Names returns every registered add-on name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Enabled returns the add-ons opts asks for, in application order.
func Enabled(opts project.Options) []Addon {
	var out []Addon
	if opts.Tailwind {
		if a, ok := Lookup(TailwindName); ok {
			out = append(out, a)
		}
	}
	return out
}

func init() {
	Register(Tailwind{})
}
