package object

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/store"
)

// Commit is a snapshot of a tree with its history and identities.
type Commit struct {
	base
	data lazy[*commitData]
}

type commitData struct {
	tree      *Tree
	parents   []*Commit
	author    *Author
	committer *Author
	message   string
}

// NewCommit returns a commit for objectish. Nothing is read until an
// attribute is asked for.
func NewCommit(s Store, objectish string) *Commit {
	return &Commit{base: newBase(s, objectish, KindCommit, "")}
}

// NewCommitFromRecord returns a commit already filled from record, as
// produced by a log query. No further store call is needed for its fields.
func NewCommitFromRecord(s Store, record *store.CommitRecord) *Commit {
	c := NewCommit(s, record.SHA)
	c.FromRecord(record)
	return c
}

// FromRecord fills the commit from record. The hash is taken from the
// record only if it has not been resolved yet. The tree and parents are
// wrapped without being read, and one trailing newline is removed from the
// message.
func (c *Commit) FromRecord(record *store.CommitRecord) {
	if record.SHA != "" {
		c.sha.setDefault(record.SHA)
	}
	c.data.set(c.fromRecord(record))
}

func (c *Commit) fromRecord(record *store.CommitRecord) *commitData {
	parents := make([]*Commit, 0, len(record.Parents))
	for _, p := range record.Parents {
		parents = append(parents, NewCommit(c.store, p))
	}
	return &commitData{
		tree:      NewTree(c.store, record.Tree, ""),
		parents:   parents,
		author:    ParseAuthor(record.Author),
		committer: ParseAuthor(record.Committer),
		message:   strings.TrimSuffix(record.Message, "\n"),
	}
}

// SHA returns the hash of the commit objectish peels to. A tag name
// resolves to the commit it points at, not to the tag object.
func (c *Commit) SHA(ctx context.Context) (string, error) {
	return c.sha.get(func() (string, error) {
		return c.store.ResolveRef(ctx, c.objectish+"^{commit}")
	})
}

// load reads the commit in one store call unless it is already filled.
func (c *Commit) load(ctx context.Context) (*commitData, error) {
	return c.data.get(func() (*commitData, error) {
		record, err := c.store.ReadCommit(ctx, c.objectish)
		if err != nil {
			return nil, err
		}
		if record.SHA != "" {
			c.sha.setDefault(record.SHA)
		}
		return c.fromRecord(record), nil
	})
}

// Message returns the commit message without its final newline.
func (c *Commit) Message(ctx context.Context) (string, error) {
	d, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return d.message, nil
}

// Tree returns the commit's root tree.
func (c *Commit) Tree(ctx context.Context) (*Tree, error) {
	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return d.tree, nil
}

// Parents returns the parents in the order git records them. The first is
// the primary parent. A root commit has none.
func (c *Commit) Parents(ctx context.Context) ([]*Commit, error) {
	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return d.parents, nil
}

// Parent returns the primary parent, or nil for a root commit.
func (c *Commit) Parent(ctx context.Context) (*Commit, error) {
	parents, err := c.Parents(ctx)
	if err != nil || len(parents) == 0 {
		return nil, err
	}
	return parents[0], nil
}

// Author returns who wrote the change.
func (c *Commit) Author(ctx context.Context) (*Author, error) {
	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return d.author, nil
}

// AuthorDate returns when the change was written.
func (c *Commit) AuthorDate(ctx context.Context) (time.Time, error) {
	a, err := c.Author(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return a.Date, nil
}

// Committer returns who committed the change.
func (c *Commit) Committer(ctx context.Context) (*Author, error) {
	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return d.committer, nil
}

// CommitterDate returns when the change was committed.
func (c *Commit) CommitterDate(ctx context.Context) (time.Time, error) {
	a, err := c.Committer(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return a.Date, nil
}

// Date is CommitterDate.
func (c *Commit) Date(ctx context.Context) (time.Time, error) {
	return c.CommitterDate(ctx)
}

// DiffParent is Diff against the primary parent: the patch from this
// commit to its parent. A root commit has no parent to diff against.
func (c *Commit) DiffParent(ctx context.Context) (string, error) {
	parent, err := c.Parent(ctx)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", &git.InvalidArgumentError{Message: fmt.Sprintf("commit %s has no parent", c.objectish)}
	}
	return c.Diff(ctx, parent.objectish)
}

// Stat summarizes what the commit changed against its first parent, or
// against the empty tree for a root commit.
func (c *Commit) Stat(ctx context.Context) (store.DiffStat, error) {
	parent, err := c.Parent(ctx)
	if err != nil {
		return store.DiffStat{}, err
	}
	from := ""
	if parent != nil {
		from = parent.objectish
	}
	return c.store.DiffStat(ctx, from, c.objectish)
}

// Name returns a name for the commit relative to the nearest ref, such as
// "tags/v1.0~2". It asks git every time.
func (c *Commit) Name(ctx context.Context) (string, error) {
	sha, err := c.SHA(ctx)
	if err != nil {
		return "", err
	}
	return c.store.NameRev(ctx, sha)
}

// Log returns up to count commits from ref, newest first, each filled from
// the same log query.
func Log(ctx context.Context, s Store, ref string, count int) ([]*Commit, error) {
	records, err := s.Log(ctx, ref, count)
	if err != nil {
		return nil, err
	}
	commits := make([]*Commit, 0, len(records))
	for _, r := range records {
		commits = append(commits, NewCommitFromRecord(s, r))
	}
	return commits, nil
}
