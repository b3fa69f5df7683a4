// Package hooks installs the Husky pre-commit hook that runs lint-staged.
package hooks

import (
	"context"

	"github.com/vitestrap/cli/internal/overlay"
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/runner"
)

const (
	// PreCommitPath is the hook file Husky runs before each commit.
	PreCommitPath = ".husky/pre-commit"

	// PreCommitScript replaces whatever hook `husky init` generated.
	PreCommitScript = "npx lint-staged\n"

	hookMode = 0o755
)

// Install bootstraps Husky through the package manager's exec form, then
// overwrites the generated pre-commit hook with PreCommitScript.
func Install(ctx context.Context, r runner.Runner, w *overlay.Writer, pm pkgmanager.Manager) error {
	cmd := pm.Exec("husky", "init")
	if err := r.Run(ctx, w.Root(), cmd.Name, cmd.Args...); err != nil {
		return err
	}
	return w.WriteFileMode(PreCommitPath, PreCommitScript, hookMode)
}
