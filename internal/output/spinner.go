package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while a spinner with title is shown.
// When stdout is not a terminal the action runs directly.
// Returns the action's error if any.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	var actionErr error
	spinnerErr := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			actionErr = <-errCh
		}).
		Run()

	if spinnerErr != nil {
		return fmt.Errorf("spinner: %w", spinnerErr)
	}

	return actionErr
}
