package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/gitobj/internal/gittest"
	"github.com/gorewood/gitobj/internal/output"
)

// execute runs the root command with args and returns stdout, stderr and
// the error. The config directory is isolated so no user config leaks in.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GITOBJ_CONFIG_HOME", t.TempDir())
	t.Setenv("GITOBJ_LOG_LEVEL", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeIn runs the root command against repo.
func executeIn(t *testing.T, repo *gittest.Repo, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, append([]string{"-C", repo.Dir}, args...)...)
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "gitobj") {
		t.Errorf("--version output should contain 'gitobj': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	expectations := []string{
		"gitobj",
		"Usage:",
		"--json",
		"--repo",
		"--timeout",
		"Object Commands:",
		"show",
		"serve",
	}
	for _, expected := range expectations {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_JSONWithoutSubcommand(t *testing.T) {
	out, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("expected error without a subcommand")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !strings.Contains(result["error"].(string), "no command specified") {
		t.Errorf("error = %v", result["error"])
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"dev build", "dev", "none", "unknown", "dev"},
		{"release build", "1.0.0", "abcdef1234567", "2026-01-01", "1.0.0 (abcdef1, 2026-01-01)"},
		{"short commit", "1.0.0", "abc", "2026-01-01", "1.0.0 (abc, 2026-01-01)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit, oldDate := version, commit, date
			t.Cleanup(func() { version, commit, date = oldVersion, oldCommit, oldDate })
			version, commit, date = tt.version, tt.commit, tt.date

			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCommand_BadConfig(t *testing.T) {
	repo := gittest.NewRepo(t)
	_, stderr, err := executeIn(t, repo, "--log-level", "loud", "show", "HEAD")
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(stderr, "loud") {
		t.Errorf("stderr should name the bad level: %q", stderr)
	}
}

func TestRootCommand_BadColor(t *testing.T) {
	repo := gittest.NewRepo(t)
	_, stderr, err := executeIn(t, repo, "--color", "rainbow", "show", "HEAD")
	if err == nil {
		t.Fatal("expected error for invalid color mode")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(stderr, "rainbow") {
		t.Errorf("stderr should name the bad mode: %q", stderr)
	}
}

func TestRootCommand_NotARepo(t *testing.T) {
	gittest.NewRepo(t) // skips without git
	_, _, err := execute(t, "-C", t.TempDir(), "show", "HEAD")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("err = %v", err)
	}
}
