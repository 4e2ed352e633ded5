package object

import (
	"context"
	"io"

	"github.com/gorewood/gitobj/internal/store"
)

// Store is what objects read the repository through. *store.Store
// implements it.
type Store interface {
	ResolveRef(ctx context.Context, ref string) (string, error)
	ObjectType(ctx context.Context, ref string) (string, error)
	ObjectSize(ctx context.Context, ref string) (int64, error)
	ObjectContents(ctx context.Context, ref string) ([]byte, error)
	StreamObjectContents(ctx context.Context, ref string, consumer func(io.Reader) error) error

	ReadCommit(ctx context.Context, ref string) (*store.CommitRecord, error)
	ReadAnnotatedTag(ctx context.Context, name string) (*store.TagRecord, error)
	ReadTagObject(ctx context.Context, ref string) (*store.TagRecord, error)
	TagTargetHash(ctx context.Context, name string) (string, error)

	ListTreeEntries(ctx context.Context, ref string) (*store.TreeEntries, error)
	FullTree(ctx context.Context, ref string) ([]string, error)
	TreeDepth(ctx context.Context, ref string) (int, error)

	Diff(ctx context.Context, from, to string) (string, error)
	DiffStat(ctx context.Context, from, to string) (store.DiffStat, error)
	Log(ctx context.Context, ref string, count int) ([]*store.CommitRecord, error)
	Grep(ctx context.Context, ref, pattern, pathLimiter string, opts store.GrepOptions) (map[string][]store.GrepMatch, error)
	Archive(ctx context.Context, ref string, w io.Writer, opts store.ArchiveOptions) error
	NameRev(ctx context.Context, sha string) (string, error)
}

var _ Store = (*store.Store)(nil)
