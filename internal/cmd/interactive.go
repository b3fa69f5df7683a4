package cmd

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	oerrors "github.com/vitestrap/cli/internal/errors"
	"github.com/vitestrap/cli/internal/output"
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
)

// projectAnswers are the values the prompt can fill in. Fields hold the
// resolved defaults on entry.
type projectAnswers struct {
	AppName        string
	Template       string
	PackageManager string
	Tailwind       bool
}

type promptFunc func(ctx context.Context, answers *projectAnswers) error

var errNoTerminal = errors.New("interactive mode requires a terminal")

// promptProject asks for every value with a huh form.
func promptProject(ctx context.Context, answers *projectAnswers) error {
	if !output.IsTTY() {
		return errNoTerminal
	}

	if lang, ok := project.ParseLanguage(answers.Template); ok {
		answers.Template = lang.String()
	} else {
		answers.Template = project.DefaultLanguage.String()
	}
	if pm, ok := pkgmanager.Parse(answers.PackageManager); ok {
		answers.PackageManager = pm.String()
	} else {
		answers.PackageManager = pkgmanager.Default.String()
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&answers.AppName).
				Validate(validateAppName),
			huh.NewSelect[string]().
				Title("Template").
				Options(huh.NewOptions(project.ValidLanguages()...)...).
				Value(&answers.Template),
			huh.NewSelect[string]().
				Title("Package manager").
				Options(huh.NewOptions(pkgmanager.Valid()...)...).
				Value(&answers.PackageManager),
			huh.NewConfirm().
				Title("Add Tailwind CSS?").
				Value(&answers.Tailwind),
		),
	)

	return form.RunWithContext(ctx)
}

// validateAppName reports only the message; the form has no room for hints.
func validateAppName(s string) error {
	err := project.Options{AppName: s}.Validate()
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return errors.New(detail.Message)
	}
	return err
}
