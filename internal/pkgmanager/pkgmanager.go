// Package pkgmanager formats the command lines each supported JavaScript
// package manager uses for the operations vitestrap needs.
package pkgmanager

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Manager identifies a package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
)

// Default is used when nothing else is requested or detected.
const Default = NPM

// Parse maps a name to a Manager. The boolean is false when the name was not
// recognized and Default was returned instead. Empty input returns Default with ok=true.
func Parse(s string) (Manager, bool) {
	switch Manager(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return Default, true
	case NPM:
		return NPM, true
	case Yarn:
		return Yarn, true
	case PNPM:
		return PNPM, true
	default:
		return Default, false
	}
}

// Valid returns the supported manager names.
func Valid() []string {
	return []string{string(NPM), string(Yarn), string(PNPM)}
}

// String returns the binary name.
func (m Manager) String() string {
	return string(m)
}

// Command is a program name plus arguments.
type Command struct {
	Name string
	Args []string
}

// String renders the command line with single spaces.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

func cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Create returns the command that runs the Vite generator for app with template.
func (m Manager) Create(app, template string) Command {
	switch m {
	case Yarn:
		return cmd("yarn", "create", "vite", app, "--template", template)
	case PNPM:
		return cmd("pnpm", "create", "vite", app, "--template", template)
	default:
		return cmd("npm", "create", "vite@latest", app, "--", "--template", template)
	}
}

// AddDev returns the command that installs pkgs as development dependencies.
func (m Manager) AddDev(pkgs ...string) Command {
	switch m {
	case Yarn:
		return cmd("yarn", append([]string{"add", "-D"}, pkgs...)...)
	case PNPM:
		return cmd("pnpm", append([]string{"add", "-D"}, pkgs...)...)
	default:
		return cmd("npm", append([]string{"install", "-D"}, pkgs...)...)
	}
}

// Add returns the command that installs pkgs as runtime dependencies.
func (m Manager) Add(pkgs ...string) Command {
	switch m {
	case Yarn:
		return cmd("yarn", append([]string{"add"}, pkgs...)...)
	case PNPM:
		return cmd("pnpm", append([]string{"add"}, pkgs...)...)
	default:
		return cmd("npm", append([]string{"install"}, pkgs...)...)
	}
}

// InstallAll returns the command that installs every declared dependency.
func (m Manager) InstallAll() Command {
	switch m {
	case Yarn:
		return cmd("yarn", "install")
	case PNPM:
		return cmd("pnpm", "install")
	default:
		return cmd("npm", "install")
	}
}

// RunScript returns the command that runs a package.json script.
func (m Manager) RunScript(script string) Command {
	switch m {
	case Yarn:
		return cmd("yarn", script)
	case PNPM:
		return cmd("pnpm", script)
	default:
		return cmd("npm", "run", script)
	}
}

// Exec returns the command that runs a locally installed binary.
func (m Manager) Exec(bin string, args ...string) Command {
	switch m {
	case Yarn:
		return cmd("yarn", append([]string{bin}, args...)...)
	case PNPM:
		return cmd("pnpm", append([]string{"exec", bin}, args...)...)
	default:
		return cmd("npx", append([]string{bin}, args...)...)
	}
}

// LockFile returns the lock file name the manager writes.
func (m Manager) LockFile() string {
	switch m {
	case Yarn:
		return "yarn.lock"
	case PNPM:
		return "pnpm-lock.yaml"
	default:
		return "package-lock.json"
	}
}

// detectOrder lists managers whose lock file wins over the requested one.
var detectOrder = []Manager{PNPM, Yarn}

// Detect returns the manager whose lock file exists in dir, checking pnpm
// before yarn. Without a matching lock file it returns requested.
func Detect(fs afero.Fs, dir string, requested Manager) Manager {
	for _, m := range detectOrder {
		if ok, _ := afero.Exists(fs, filepath.Join(dir, m.LockFile())); ok {
			return m
		}
	}
	return requested
}
