package store

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorewood/gitobj/internal/git"
)

// DefaultLogCount is how many commits Log returns when count is not positive.
const DefaultLogCount = 30

// Log returns up to count commits reachable from ref, newest first, fully
// parsed so callers can hydrate commits without further git calls.
func (s *Store) Log(ctx context.Context, ref string, count int) ([]*CommitRecord, error) {
	if count <= 0 {
		count = DefaultLogCount
	}
	out, err := s.runner.NewCommand("log", "--pretty=raw", "--no-color", "--max-count="+strconv.Itoa(count)).
		AddDynamicArguments(ref).
		AddDashesAndList().
		RunStdBytes(ctx, nil)
	if err != nil {
		return nil, err
	}
	return parseRawLog(out), nil
}

// Diff returns the patch between two objectish. An empty to diffs from
// against the working tree.
func (s *Store) Diff(ctx context.Context, from, to string) (string, error) {
	cmd := s.runner.NewCommand("diff", "--no-color", "--no-ext-diff").AddDynamicArguments(from)
	if to != "" {
		cmd.AddDynamicArguments(to)
	}
	return cmd.AddDashesAndList().RunStdString(ctx, nil)
}

// NameRev returns a symbolic name for a commit relative to the nearest ref,
// such as "main~2" or "tags/v1.0^0".
func (s *Store) NameRev(ctx context.Context, sha string) (string, error) {
	out, err := s.runner.NewCommand("name-rev", "--name-only").AddDynamicArguments(sha).RunStdString(ctx, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GrepOptions tunes Grep.
type GrepOptions struct {
	IgnoreCase     bool
	InvertMatch    bool
	ExtendedRegexp bool
}

// GrepMatch is one matching line.
type GrepMatch struct {
	Line int
	Text string
}

var grepLineRegex = regexp.MustCompile(`^(.*?):(\d+):(.*)$`)

// Grep searches the tree of ref for pattern, optionally limited to a
// pathspec. Results are keyed by path. No match is not an error.
func (s *Store) Grep(ctx context.Context, ref, pattern, pathLimiter string, opts GrepOptions) (map[string][]GrepMatch, error) {
	cmd := s.runner.NewCommand("grep", "-n", "--no-color", "--full-name")
	if opts.IgnoreCase {
		cmd.AddArguments("-i")
	}
	if opts.InvertMatch {
		cmd.AddArguments("-v")
	}
	if opts.ExtendedRegexp {
		cmd.AddArguments("-E")
	}
	cmd.AddOptionValues("-e", pattern).AddDynamicArguments(ref)
	if pathLimiter != "" {
		cmd.AddDashesAndList(pathLimiter)
	}

	out, err := cmd.RunStdString(ctx, nil)
	if err != nil {
		if exitedWith(err, 1) {
			return map[string][]GrepMatch{}, nil
		}
		return nil, err
	}
	return parseGrep(ref, out), nil
}

func parseGrep(ref, out string) map[string][]GrepMatch {
	matches := map[string][]GrepMatch{}
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimPrefix(line, ref+":")
		parts := grepLineRegex.FindStringSubmatch(line)
		if parts == nil {
			continue
		}
		lineNo, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		matches[parts[1]] = append(matches[parts[1]], GrepMatch{Line: lineNo, Text: parts[3]})
	}
	return matches
}

// FetchOptions tunes Fetch.
type FetchOptions struct {
	Ref   string
	Tags  bool
	Prune bool
	Depth int
}

// Fetch fetches from remote. The remote and ref are passed as positional
// values, so a remote called "--upload-pack=..." is looked up as a remote
// name and never parsed as an option.
func (s *Store) Fetch(ctx context.Context, remote string, opts FetchOptions) error {
	cmd := s.runner.NewCommand("fetch")
	if opts.Tags {
		cmd.AddArguments("--tags")
	}
	if opts.Prune {
		cmd.AddArguments("--prune")
	}
	if opts.Depth > 0 {
		cmd.AddArguments("--depth=" + strconv.Itoa(opts.Depth))
	}
	if remote == "" {
		remote = "origin"
	}
	cmd.AddDynamicArguments(remote)
	if opts.Ref != "" {
		cmd.AddDynamicArguments(opts.Ref)
	}
	_, err := cmd.Run(ctx, nil)
	return err
}

// TagOptions tunes AddTag.
type TagOptions struct {
	Annotate bool
	Message  string
	Force    bool
}

// AddTag creates a tag called name pointing at target (HEAD when empty).
// An annotated tag needs a message; that is checked before git runs.
func (s *Store) AddTag(ctx context.Context, name, target string, opts TagOptions) error {
	if opts.Annotate && opts.Message == "" {
		return &git.InvalidArgumentError{Message: "Cannot create an annotated tag without a message."}
	}
	cmd := s.runner.NewCommand("tag")
	if opts.Annotate {
		cmd.AddArguments("-a")
	}
	if opts.Force {
		cmd.AddArguments("-f")
	}
	if opts.Message != "" {
		cmd.AddOptionValues("-m", opts.Message)
	}
	cmd.AddDynamicArguments(name)
	if target != "" {
		cmd.AddDynamicArguments(target)
	}
	_, err := cmd.Run(ctx, nil)
	return err
}
