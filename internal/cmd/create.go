package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	oerrors "github.com/vitestrap/cli/internal/errors"
	"github.com/vitestrap/cli/internal/output"
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
	"github.com/vitestrap/cli/internal/scaffold"
)

// createFlags are the root command's scaffold flags.
type createFlags struct {
	packageManager string
	tailwind       bool
	overlayOnly    bool
	skipInstall    bool
	noGit          bool
	noHooks        bool
	dir            string
	interactive    bool
}

func (f *createFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.packageManager, "package-manager", "p", pkgmanager.Default.String(),
		fmt.Sprintf("Package manager: %s (env: VITESTRAP_PACKAGE_MANAGER)", strings.Join(pkgmanager.Valid(), ", ")))
	c.Flags().BoolVarP(&f.tailwind, "tailwind", "t", false,
		"Add Tailwind CSS (env: VITESTRAP_TAILWIND)")
	c.Flags().BoolVar(&f.overlayOnly, "overlay-only", false,
		"Skip the Vite generator and reapply the overlay to an existing project")
	c.Flags().BoolVar(&f.skipInstall, "skip-install", false,
		"Skip every dependency installation")
	c.Flags().BoolVar(&f.noGit, "no-git", false,
		"Do not initialize a git repository")
	c.Flags().BoolVar(&f.noHooks, "no-hooks", false,
		"Do not install the Husky pre-commit hook")
	c.Flags().StringVarP(&f.dir, "dir", "d", ".",
		"Parent directory the project is created in")
	c.Flags().BoolVarP(&f.interactive, "interactive", "i", false,
		"Prompt for missing values")
}

func runCreate(cmd *cobra.Command, args []string, flags *createFlags, ro *rootOptions) error {
	answers := projectAnswers{
		Template:       settings.Template,
		PackageManager: settings.PackageManager,
		Tailwind:       settings.Tailwind,
	}
	if len(args) > 0 {
		answers.AppName = args[0]
	}

	if answers.AppName == "" {
		if !flags.interactive {
			return cmd.Help()
		}
		if err := ro.prompt(cmd.Context(), &answers); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: errors.New("aborted")}
			}
			return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("prompt: %w", err)}
		}
	}

	pm, ok := pkgmanager.Parse(answers.PackageManager)
	if !ok {
		output.Warn("unknown package manager, using default",
			"value", answers.PackageManager, "default", pm)
	}
	lang, ok := project.ParseLanguage(answers.Template)
	if !ok {
		output.Warn("unknown template, using default",
			"value", answers.Template, "default", lang)
	}

	opts := project.Options{
		AppName:        answers.AppName,
		Language:       lang,
		PackageManager: pm.String(),
		Tailwind:       answers.Tailwind,
	}

	req := scaffold.Request{
		Options:       opts,
		ParentDir:     flags.dir,
		SkipGenerator: flags.overlayOnly,
		SkipInstall:   flags.skipInstall,
		InitGit:       settings.GitInit,
		DefaultBranch: settings.DefaultBranch,
		InstallHooks:  settings.Hooks,
	}

	res, err := scaffold.New(ro.scaffold...).Run(cmd.Context(), req)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	printSummary(cmd.OutOrStdout(), opts.AppName, res)
	return nil
}

// printSummary writes the file tree and next steps to w.
func printSummary(w io.Writer, app string, res *scaffold.Result) {
	fmt.Fprintln(w)
	fmt.Fprint(w, output.RenderFileTree(app, res.Files))
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Project %s ready in %s",
		output.StyleNoun.Render(app), res.Dir)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	for _, step := range res.NextSteps {
		fmt.Fprintln(w, "  "+output.FormatCommand(step))
	}
}
