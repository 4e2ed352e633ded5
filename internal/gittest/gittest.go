// Package gittest builds throwaway repositories for tests.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gorewood/gitobj/internal/git"
)

// Identity pins author, committer and config so hashes and records are
// the same on every machine.
var Identity = []string{
	"GIT_AUTHOR_NAME=Test User",
	"GIT_AUTHOR_EMAIL=test@example.com",
	"GIT_AUTHOR_DATE=1700000000 +0000",
	"GIT_COMMITTER_NAME=Test User",
	"GIT_COMMITTER_EMAIL=test@example.com",
	"GIT_COMMITTER_DATE=1700000000 +0000",
	"GIT_CONFIG_NOSYSTEM=1",
	"GIT_CONFIG_GLOBAL=/dev/null",
	"HOME=/nonexistent",
}

// Repo is a repository with two commits:
//
//	First:  README.md, src/main.go                      tag "light" (lightweight)
//	Second: + src/lib/util.go, ünïcode.txt             tag "v1.0" (annotated, "release one")
type Repo struct {
	Dir    string
	Runner *git.Runner
	First  string
	Second string
}

// NewRepo creates the repository in a temporary directory. The test is
// skipped when git is not installed.
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runner := git.NewRunner(git.WithDir(dir), git.WithEnv(Identity...))
	repo := &Repo{Dir: dir, Runner: runner}

	repo.Git(t, "init", "--quiet")
	repo.WriteFile(t, "README.md", "hello world\n")
	repo.WriteFile(t, "src/main.go", "package main\n\nfunc main() {}\n")
	repo.Git(t, "add", ".")
	repo.Git(t, "commit", "--quiet", "-m", "initial commit")
	repo.First = repo.Git(t, "rev-parse", "HEAD")
	repo.Git(t, "tag", "light")

	repo.WriteFile(t, "src/lib/util.go", "package lib\n\n// TODO: grep me\n")
	repo.WriteFile(t, "ünïcode.txt", "non-ascii name\n")
	repo.Git(t, "add", ".")
	repo.Git(t, "commit", "--quiet", "-m", "second commit\n\nwith a body")
	repo.Second = repo.Git(t, "rev-parse", "HEAD")
	repo.Git(t, "tag", "-a", "v1.0", "-m", "release one")

	return repo
}

// Git runs git in the repository and returns its trimmed output.
func (r *Repo) Git(t *testing.T, args ...string) string {
	t.Helper()
	out, err := r.Runner.Run(t.Context(), args...)
	require.NoError(t, err, "git %v", args)
	return out
}

// WriteFile writes content to name below the work tree.
func (r *Repo) WriteFile(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
