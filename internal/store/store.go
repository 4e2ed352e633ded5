// Package store reads repository objects through the git executable.
//
// Store is the backing store of the object model: it resolves refs, reads
// object metadata and content, and parses git's text output into records.
// It holds no cache; every call is one or more independent git invocations.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorewood/gitobj/internal/git"
)

// Store is a git-backed object store for one repository.
type Store struct {
	runner *git.Runner
}

// New creates a Store that runs git through runner.
func New(runner *git.Runner) *Store {
	return &Store{runner: runner}
}

// Open creates a Store for the repository at dir and checks that dir is
// inside a git work tree or git directory.
func Open(ctx context.Context, dir string, opts ...git.RunnerOption) (*Store, error) {
	opts = append([]git.RunnerOption{git.WithDir(dir)}, opts...)
	s := New(git.NewRunner(opts...))
	if _, err := s.runner.Run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("opening repository %q: %w", dir, err)
	}
	return s, nil
}

// Runner returns the runner the store executes commands with.
func (s *Store) Runner() *git.Runner {
	return s.runner
}

// ResolveRef resolves any objectish to its full object hash.
// Returns a *git.NotFoundError when git cannot resolve it.
func (s *Store) ResolveRef(ctx context.Context, ref string) (string, error) {
	out, err := s.runner.NewCommand("rev-parse", "--verify", "--quiet").
		AddDynamicArguments(ref).
		RunStdString(ctx, nil)
	if err != nil {
		if exitedWith(err, 1) {
			return "", &git.NotFoundError{Ref: ref}
		}
		return "", err
	}
	sha := strings.TrimSpace(out)
	if sha == "" {
		return "", &git.NotFoundError{Ref: ref}
	}
	return sha, nil
}

// ObjectType returns the object type name: blob, tree, commit or tag.
func (s *Store) ObjectType(ctx context.Context, ref string) (string, error) {
	out, err := s.runner.NewCommand("cat-file", "-t").AddDynamicArguments(ref).RunStdString(ctx, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ObjectSize returns the size of the object's content in bytes.
func (s *Store) ObjectSize(ctx context.Context, ref string) (int64, error) {
	out, err := s.runner.NewCommand("cat-file", "-s").AddDynamicArguments(ref).RunStdString(ctx, nil)
	if err != nil {
		return 0, err
	}
	size, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing size of %s: %w", ref, err)
	}
	return size, nil
}

// ObjectContents returns the object's content, pretty-printed for trees.
func (s *Store) ObjectContents(ctx context.Context, ref string) ([]byte, error) {
	return s.runner.NewCommand("cat-file", "-p").AddDynamicArguments(ref).RunStdBytes(ctx, nil)
}

// StreamObjectContents hands the object's content to consumer as it is read
// from git, without holding it in memory.
func (s *Store) StreamObjectContents(ctx context.Context, ref string, consumer func(io.Reader) error) error {
	return s.runner.NewCommand("cat-file", "-p").
		AddDynamicArguments(ref).
		RunWithStdoutPipe(ctx, nil, consumer)
}

// TagTargetHash returns the hash refs/tags/<name> points at: the tag object
// for annotated tags, the tagged object for lightweight ones. Returns an
// empty string when the tag does not exist.
func (s *Store) TagTargetHash(ctx context.Context, name string) (string, error) {
	out, err := s.runner.NewCommand("rev-parse", "--verify", "--quiet").
		AddDynamicArguments(tagRef(name)).
		RunStdString(ctx, nil)
	if err != nil {
		if exitedWith(err, 1) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ReadCommit reads the commit objectish resolves to. Tags are peeled.
func (s *Store) ReadCommit(ctx context.Context, ref string) (*CommitRecord, error) {
	obj, err := s.readBatch(ctx, ref, ref+"^{commit}")
	if err != nil {
		return nil, err
	}
	record := parseCommit(obj.body)
	record.SHA = obj.sha
	return record, nil
}

// ReadAnnotatedTag reads the annotated tag object for the tag called name.
func (s *Store) ReadAnnotatedTag(ctx context.Context, name string) (*TagRecord, error) {
	return s.ReadTagObject(ctx, tagRef(name))
}

// ReadTagObject reads a tag object by any objectish.
func (s *Store) ReadTagObject(ctx context.Context, ref string) (*TagRecord, error) {
	obj, err := s.readBatch(ctx, ref, ref)
	if err != nil {
		return nil, err
	}
	if obj.kind != "tag" {
		return nil, fmt.Errorf("reading tag %s: object %s is a %s", ref, obj.sha, obj.kind)
	}
	record := parseTag(obj.body)
	record.SHA = obj.sha
	return record, nil
}

// batchObject is one object returned by cat-file --batch.
type batchObject struct {
	sha  string
	kind string
	body []byte
}

// readBatch fetches one object through cat-file --batch. The object name is
// written to stdin, so it never reaches the argument vector.
func (s *Store) readBatch(ctx context.Context, ref, query string) (*batchObject, error) {
	if strings.ContainsAny(query, "\n\r") {
		return nil, &git.InvalidArgumentError{Message: fmt.Sprintf("invalid object name %q", ref)}
	}
	out, err := s.runner.NewCommand("cat-file", "--batch").
		RunStdBytes(ctx, &git.RunOpts{Stdin: strings.NewReader(query + "\n")})
	if err != nil {
		return nil, err
	}
	return parseBatch(ref, out)
}

func parseBatch(ref string, out []byte) (*batchObject, error) {
	header, rest, ok := bytes.Cut(out, []byte("\n"))
	if !ok {
		return nil, fmt.Errorf("reading %s: truncated cat-file output", ref)
	}
	fields := strings.Fields(string(header))
	if len(fields) == 2 && (fields[1] == "missing" || fields[1] == "ambiguous") {
		return nil, &git.NotFoundError{Ref: ref}
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("reading %s: unexpected cat-file header %q", ref, header)
	}
	size, err := strconv.Atoi(fields[2])
	if err != nil || size > len(rest) {
		return nil, fmt.Errorf("reading %s: bad object size %q", ref, fields[2])
	}
	return &batchObject{sha: fields[0], kind: fields[1], body: rest[:size]}, nil
}

func tagRef(name string) string {
	return "refs/tags/" + name
}

// exitedWith reports whether err is a git failure with the given exit code.
func exitedWith(err error, code int) bool {
	var failed *git.FailedError
	return errors.As(err, &failed) && failed.ExitCode() == code
}
