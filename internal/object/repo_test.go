package object

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/gittest"
	"github.com/gorewood/gitobj/internal/store"
)

func openRepo(t *testing.T) (*gittest.Repo, *store.Store) {
	t.Helper()
	repo := gittest.NewRepo(t)
	return repo, store.New(repo.Runner)
}

func TestRepo_LookupHead(t *testing.T) {
	repo, st := openRepo(t)
	ctx := t.Context()

	obj, err := Lookup(ctx, st, "HEAD")
	require.NoError(t, err)
	commit, ok := obj.(*Commit)
	require.True(t, ok)

	sha, err := commit.SHA(ctx)
	require.NoError(t, err)
	assert.Equal(t, repo.Second, sha)

	msg, err := commit.Message(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second commit\n\nwith a body", msg)

	author, err := commit.Author(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test User <test@example.com> 1700000000 +0000", author.String())

	parent, err := commit.Parent(ctx)
	require.NoError(t, err)
	assert.Equal(t, repo.First, parent.Objectish())

	name, err := commit.Name(ctx)
	require.NoError(t, err)
	assert.Contains(t, name, "v1.0")

	diff, err := commit.DiffParent(ctx)
	require.NoError(t, err)
	assert.Contains(t, diff, "src/lib/util.go")
	assert.Contains(t, diff, "deleted file mode", "the patch runs from the commit back to its parent")

	direct, err := commit.Diff(ctx, parent.Objectish())
	require.NoError(t, err)
	assert.Equal(t, direct, diff)

	stat, err := commit.Stat(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DiffStat{Files: 2, Insertions: 4}, stat)
}

func TestRepo_CommitOnAnnotatedTag(t *testing.T) {
	repo, st := openRepo(t)
	ctx := t.Context()

	sha, err := NewCommit(st, "v1.0").SHA(ctx)
	require.NoError(t, err)
	assert.Equal(t, repo.Second, sha)

	c := NewCommit(st, "v1.0")
	_, err = c.Message(ctx)
	require.NoError(t, err)
	sha, err = c.SHA(ctx)
	require.NoError(t, err)
	assert.Equal(t, repo.Second, sha)
}

func TestRepo_TreeWalk(t *testing.T) {
	_, st := openRepo(t)
	ctx := t.Context()

	commit := NewCommit(st, "HEAD")
	root, err := commit.Tree(ctx)
	require.NoError(t, err)

	names, err := root.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src", "ünïcode.txt"}, names)

	trees, err := root.Trees(ctx)
	require.NoError(t, err)
	src := trees["src"]
	require.NotNil(t, src)

	files, err := src.Files(ctx)
	require.NoError(t, err)
	require.Contains(t, files, "main.go")

	data, err := files["main.go"].Contents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(data))

	size, err := files["main.go"].Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	depth, err := root.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, depth)
}

func TestRepo_StreamBlob(t *testing.T) {
	_, st := openRepo(t)

	obj, err := Lookup(t.Context(), st, "HEAD:README.md")
	require.NoError(t, err)
	require.True(t, obj.IsBlob())

	var buf bytes.Buffer
	err = obj.StreamContents(t.Context(), func(r io.Reader) error {
		_, err := io.Copy(&buf, r)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", buf.String())
}

func TestRepo_Tags(t *testing.T) {
	repo, st := openRepo(t)
	ctx := t.Context()

	light, err := LookupTag(ctx, st, "light")
	require.NoError(t, err)
	annotated, err := light.Annotated(ctx)
	require.NoError(t, err)
	assert.False(t, annotated)
	msg, err := light.Message(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)
	tagger, err := light.Tagger(ctx)
	require.NoError(t, err)
	assert.Nil(t, tagger)

	release, err := LookupTag(ctx, st, "v1.0")
	require.NoError(t, err)
	annotated, err = release.Annotated(ctx)
	require.NoError(t, err)
	assert.True(t, annotated)
	msg, err = release.Message(ctx)
	require.NoError(t, err)
	assert.Equal(t, "release one", msg)
	tagger, err = release.Tagger(ctx)
	require.NoError(t, err)
	require.NotNil(t, tagger)
	assert.Equal(t, "Test User", tagger.Name)

	target, err := release.Target(ctx)
	require.NoError(t, err)
	assert.Equal(t, repo.Second, target.Objectish())

	_, err = LookupTag(ctx, st, "missing")
	require.Error(t, err)
	assert.Equal(t, "Tag 'missing' does not exist.", err.Error())
	assert.True(t, git.IsNotFound(err))
}

func TestRepo_Log(t *testing.T) {
	repo, st := openRepo(t)

	commits, err := Log(t.Context(), st, "HEAD", 0)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	sha, err := commits[1].SHA(t.Context())
	require.NoError(t, err)
	assert.Equal(t, repo.First, sha)

	msg, err := commits[1].Message(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "initial commit", msg)

	parents, err := commits[1].Parents(t.Context())
	require.NoError(t, err)
	assert.Empty(t, parents)
}
