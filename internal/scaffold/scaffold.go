// Package scaffold sequences a full vitestrap run: generator, overlay,
// dependency installation, add-ons, git and hooks.
package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/vitestrap/cli/internal/addon"
	oerrors "github.com/vitestrap/cli/internal/errors"
	"github.com/vitestrap/cli/internal/hooks"
	"github.com/vitestrap/cli/internal/output"
	"github.com/vitestrap/cli/internal/overlay"
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
	"github.com/vitestrap/cli/internal/runner"
	"github.com/vitestrap/cli/internal/templates"
	"github.com/vitestrap/cli/internal/vcs"
)

// Request describes one scaffold run.
type Request struct {
	// Options are the validated-on-run scaffold options.
	Options project.Options

	// ParentDir is where the project directory is created. Empty means ".".
	ParentDir string

	// SkipGenerator re-applies the overlay to an existing project directory.
	SkipGenerator bool

	// SkipInstall skips every dependency installation command.
	SkipInstall bool

	// InitGit ensures the project is inside a git repository.
	InitGit bool

	// DefaultBranch names the initial branch of a new repository.
	DefaultBranch string

	// InstallHooks bootstraps Husky and writes the pre-commit hook.
	InstallHooks bool
}

// Result summarizes a completed run.
type Result struct {
	// Dir is the absolute project directory.
	Dir string

	// PackageManager is the manager actually used after lock file detection.
	PackageManager pkgmanager.Manager

	// Changes lists every file write in order.
	Changes []overlay.Change

	// Files maps each touched path to its overall status.
	Files map[string]string

	// RepoCreated is true when a new git repository was initialized.
	RepoCreated bool

	// NextSteps are the commands to run next, in order.
	NextSteps []string
}

// Scaffolder runs scaffold requests.
type Scaffolder struct {
	runner runner.Runner
	fs     afero.Fs
	addons []addon.Addon
	custom bool
	log    *log.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithRunner sets the program runner. Defaults to runner.NewExec().
func WithRunner(r runner.Runner) Option {
	return func(s *Scaffolder) {
		s.runner = r
	}
}

// WithFs sets the filesystem used for overlay writes and lock file detection.
// Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *Scaffolder) {
		s.fs = fsys
	}
}

// WithAddons replaces add-on selection: the given add-ons run on every
// request instead of the ones addon.Enabled picks from the options.
func WithAddons(addons ...addon.Addon) Option {
	return func(s *Scaffolder) {
		s.addons = addons
		s.custom = true
	}
}

// WithOutput sets the logger progress is reported to. Defaults to a logger
// prefixed with the app name.
func WithOutput(l *log.Logger) Option {
	return func(s *Scaffolder) {
		s.log = l
	}
}

// New creates a Scaffolder.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{
		runner: runner.NewExec(),
		fs:     afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes req. Every failure is fatal; files already written stay.
func (s *Scaffolder) Run(ctx context.Context, req Request) (*Result, error) {
	opts := req.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	l := s.log
	if l == nil {
		l = output.ProjectLogger(opts.AppName)
	}

	parent := req.ParentDir
	if parent == "" {
		parent = "."
	}
	parent, err := filepath.Abs(parent)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", req.ParentDir, err)
	}
	dir := filepath.Join(parent, opts.AppName)

	requested, _ := pkgmanager.Parse(opts.PackageManager)

	if req.SkipGenerator {
		if err := s.requireDir(dir, "project directory does not exist",
			"Drop --overlay-only to generate the project first"); err != nil {
			return nil, err
		}
	} else {
		if err := s.requireDir(parent, "parent directory does not exist",
			"Create it first or pass an existing directory with --dir"); err != nil {
			return nil, err
		}
		l.Info(output.StyleAction.Render("Generating") + " Vite " + opts.ViteTemplate() + " project")
		if err := s.exec(ctx, l, parent, requested.Create(opts.AppName, opts.ViteTemplate())); err != nil {
			return nil, err
		}
		if err := s.requireDir(dir, "the generator did not create the project directory", ""); err != nil {
			return nil, err
		}
	}

	pm := pkgmanager.Detect(s.fs, dir, requested)
	if pm != requested {
		l.Info("using detected package manager", "requested", requested, "detected", pm)
	}
	effective := opts.WithPackageManager(pm.String())

	w := overlay.NewWriter(s.fs, dir, overlay.WithOnChange(func(c overlay.Change) {
		l.Info(output.FormatFileLine(c.Status, c.Path))
	}))

	l.Info(output.StyleAction.Render("Writing") + " tooling configuration")
	if err := applyRegistry(w, effective); err != nil {
		return nil, err
	}
	if err := w.UpsertJSON("package.json", manifestDefaults(effective)); err != nil {
		return nil, err
	}

	if !req.SkipInstall {
		l.Info(output.StyleAction.Render("Installing") + " formatter, linter and hook tooling")
		if err := s.exec(ctx, l, dir, pm.AddDev(DevDependencies(effective)...)); err != nil {
			return nil, err
		}
	}

	addons := s.addons
	if !s.custom {
		addons = addon.Enabled(effective)
	}
	for _, a := range addons {
		l.Info(output.StyleAction.Render("Adding") + " " + output.StyleNoun.Render(a.Name()))
		p := &addon.Project{
			Dir:            dir,
			Options:        effective,
			Writer:         w,
			Runner:         loggingRunner{s.runner, l},
			PackageManager: pm,
			SkipInstall:    req.SkipInstall,
			Log:            l,
		}
		if err := a.Apply(ctx, p); err != nil {
			return nil, err
		}
	}

	if !req.SkipInstall {
		l.Info(output.StyleAction.Render("Installing") + " dependencies")
		if err := s.exec(ctx, l, dir, pm.InstallAll()); err != nil {
			return nil, err
		}
	}

	result := &Result{Dir: dir, PackageManager: pm}

	if req.InitGit {
		err := output.RunWithSpinner(ctx, "Initializing git repository", func() error {
			created, err := vcs.EnsureRepository(dir, req.DefaultBranch)
			result.RepoCreated = created
			return err
		})
		if err != nil {
			return nil, err
		}
		if result.RepoCreated {
			l.Info("initialized git repository", "branch", branchOrDefault(req.DefaultBranch))
		} else {
			l.Debug("git repository already present")
		}
	}

	if req.InstallHooks {
		l.Info(output.StyleAction.Render("Installing") + " pre-commit hook")
		if err := hooks.Install(ctx, loggingRunner{s.runner, l}, w, pm); err != nil {
			return nil, err
		}
	}

	result.Changes = w.Changes()
	result.Files = w.Summary()
	result.NextSteps = nextSteps(effective.AppName, pm, req.SkipInstall)
	return result, nil
}

// applyRegistry writes plain files first, then merges every JSON document
// as defaults so user edits survive a re-run.
func applyRegistry(w *overlay.Writer, opts project.Options) error {
	files, err := templates.Files(opts)
	if err != nil {
		return err
	}

	jsonFiles, plainFiles := files.Split()
	if err := w.WriteAll(plainFiles); err != nil {
		return err
	}

	for _, rel := range jsonFiles.Paths() {
		defaults, err := overlay.ParseDocument([]byte(jsonFiles[rel]))
		if err != nil {
			return fmt.Errorf("template %s: %w", rel, err)
		}
		if err := w.UpsertJSON(rel, overlay.Defaults(defaults)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scaffolder) exec(ctx context.Context, l *log.Logger, dir string, cmd pkgmanager.Command) error {
	return loggingRunner{s.runner, l}.Run(ctx, dir, cmd.Name, cmd.Args...)
}

func (s *Scaffolder) requireDir(dir, msg, hint string) error {
	ok, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !ok {
		return oerrors.NewNotFoundError(msg, dir, hint)
	}
	return nil
}

// loggingRunner prints each command line before running it.
type loggingRunner struct {
	runner.Runner
	log *log.Logger
}

func (r loggingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.log.Info(output.FormatCommand(pkgmanager.Command{Name: name, Args: args}.String()))
	return r.Runner.Run(ctx, dir, name, args...)
}

func branchOrDefault(b string) string {
	if b == "" {
		return vcs.DefaultBranch
	}
	return b
}

func nextSteps(app string, pm pkgmanager.Manager, skippedInstall bool) []string {
	steps := []string{"cd " + app}
	if skippedInstall {
		steps = append(steps, pm.InstallAll().String())
	}
	return append(steps, pm.RunScript("dev").String())
}

