// Package vcs makes sure a scaffolded project lives in a git repository.
// It uses go-git, so no git binary is required.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultBranch is used when no branch name is configured.
const DefaultBranch = "main"

// IsRepository reports whether dir is inside a git working tree, checking
// dir and each of its parents.
func IsRepository(dir string) (bool, error) {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrRepositoryNotExists):
		return false, nil
	default:
		return false, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
}

// EnsureRepository initializes a repository in dir with branch as the
// initial HEAD unless dir already belongs to one. Returns true when a
// repository was created.
func EnsureRepository(dir, branch string) (bool, error) {
	exists, err := IsRepository(dir)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if branch == "" {
		branch = DefaultBranch
	}

	_, err = git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
	})
	if err != nil {
		return false, fmt.Errorf("initializing repository at %s: %w", dir, err)
	}
	return true, nil
}
