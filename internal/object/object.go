package object

import (
	"context"
	"io"
	"strings"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/store"
)

// Kind is the type of a git object.
type Kind int

// Object kinds.
const (
	KindBlob Kind = iota + 1
	KindTree
	KindCommit
	KindTag
)

// String returns the name git uses for the kind.
func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindTree:
		return "tree"
	case KindCommit:
		return "commit"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// ParseKind maps a type name reported by git to a Kind. Any other name is
// an *git.UnsupportedObjectTypeError for objectish.
func ParseKind(objectish, name string) (Kind, error) {
	switch name {
	case "blob":
		return KindBlob, nil
	case "tree":
		return KindTree, nil
	case "commit":
		return KindCommit, nil
	case "tag":
		return KindTag, nil
	default:
		return 0, &git.UnsupportedObjectTypeError{Objectish: objectish, Type: name}
	}
}

// Object is implemented by *Blob, *Tree, *Commit and *Tag.
type Object interface {
	Objectish() string
	Kind() Kind
	IsBlob() bool
	IsTree() bool
	IsCommit() bool
	IsTag() bool

	SHA(ctx context.Context) (string, error)
	Size(ctx context.Context) (int64, error)
	Contents(ctx context.Context) ([]byte, error)
	StreamContents(ctx context.Context, consumer func(io.Reader) error) error
	ContentsLines(ctx context.Context) ([]string, error)

	Diff(ctx context.Context, other string) (string, error)
	Log(ctx context.Context, count int) ([]*Commit, error)
	Grep(ctx context.Context, pattern, pathLimiter string, opts store.GrepOptions) (map[string][]store.GrepMatch, error)
	Archive(ctx context.Context, w io.Writer, opts store.ArchiveOptions) error

	String() string
}

// base carries what every object has: its identity, the store it reads
// from, and the attributes common to all kinds.
type base struct {
	store     Store
	objectish string
	kind      Kind
	mode      string

	sha      lazy[string]
	size     lazy[int64]
	contents lazy[[]byte]
}

func newBase(s Store, objectish string, kind Kind, mode string) base {
	return base{store: s, objectish: objectish, kind: kind, mode: mode}
}

// Objectish returns the name the object was created with.
func (b *base) Objectish() string { return b.objectish }

// Kind returns the object's kind.
func (b *base) Kind() Kind { return b.kind }

func (b *base) IsBlob() bool   { return b.kind == KindBlob }
func (b *base) IsTree() bool   { return b.kind == KindTree }
func (b *base) IsCommit() bool { return b.kind == KindCommit }
func (b *base) IsTag() bool    { return b.kind == KindTag }

// String returns the objectish.
func (b *base) String() string { return b.objectish }

// SHA resolves the objectish to the object's full hash.
func (b *base) SHA(ctx context.Context) (string, error) {
	return b.sha.get(func() (string, error) {
		return b.store.ResolveRef(ctx, b.objectish)
	})
}

// Size returns the size of the object's content in bytes.
func (b *base) Size(ctx context.Context) (int64, error) {
	return b.size.get(func() (int64, error) {
		return b.store.ObjectSize(ctx, b.objectish)
	})
}

// Contents returns the object's content and keeps it for later calls.
// Trees are listed in `git cat-file -p` form. Callers must not modify the
// returned slice.
func (b *base) Contents(ctx context.Context) ([]byte, error) {
	return b.contents.get(func() ([]byte, error) {
		return b.store.ObjectContents(ctx, b.objectish)
	})
}

// StreamContents passes the content to consumer as git produces it. Nothing
// is kept, so large objects are never held in memory.
func (b *base) StreamContents(ctx context.Context, consumer func(io.Reader) error) error {
	return b.store.StreamObjectContents(ctx, b.objectish, consumer)
}

// ContentsLines returns the content split into lines, without the line
// terminators and without trailing empty lines.
func (b *base) ContentsLines(ctx context.Context) ([]string, error) {
	data, err := b.Contents(ctx)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Diff returns the patch from this object to other. An empty other diffs
// against the working tree.
func (b *base) Diff(ctx context.Context, other string) (string, error) {
	return b.store.Diff(ctx, b.objectish, other)
}

// Log returns up to count commits reachable from this object, newest first.
func (b *base) Log(ctx context.Context, count int) ([]*Commit, error) {
	return Log(ctx, b.store, b.objectish, count)
}

// Grep searches the tree of this object for pattern.
func (b *base) Grep(ctx context.Context, pattern, pathLimiter string, opts store.GrepOptions) (map[string][]store.GrepMatch, error) {
	return b.store.Grep(ctx, b.objectish, pattern, pathLimiter, opts)
}

// Archive writes an archive of this object's tree to w.
func (b *base) Archive(ctx context.Context, w io.Writer, opts store.ArchiveOptions) error {
	return b.store.Archive(ctx, b.objectish, w, opts)
}

// Blob is file content.
type Blob struct {
	base
}

// NewBlob returns a blob for objectish. mode is the file mode from the
// containing tree and may be empty.
func NewBlob(s Store, objectish, mode string) *Blob {
	return &Blob{base: newBase(s, objectish, KindBlob, mode)}
}

// Mode returns the file mode, such as "100644", or "" when unknown.
func (b *Blob) Mode() string { return b.mode }
