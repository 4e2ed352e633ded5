package object

import (
	"context"
	"strings"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/store"
)

// Tag is a named pointer to another object. An annotated tag is an object
// of its own with a message and a tagger; a lightweight tag is only a ref
// and has neither.
type Tag struct {
	base
	name      string
	annotated lazy[bool]
	info      lazy[*tagInfo]
}

type tagInfo struct {
	message string
	tagger  *Author
}

// NewTag returns the tag called name whose ref points at sha. Nothing is
// read from the store.
func NewTag(s Store, sha, name string) *Tag {
	return &Tag{base: newBase(s, sha, KindTag, ""), name: name}
}

// LookupTag finds the tag called name. It returns a *git.NotFoundError
// reading "Tag '<name>' does not exist." when there is no such tag.
func LookupTag(ctx context.Context, s Store, name string) (*Tag, error) {
	sha, err := s.TagTargetHash(ctx, name)
	if err != nil {
		return nil, err
	}
	if sha == "" {
		return nil, git.NewTagNotFoundError(name)
	}
	return NewTag(s, sha, name), nil
}

// newAnnotatedTag wraps a tag object that has already been read.
func newAnnotatedTag(s Store, record *store.TagRecord) *Tag {
	t := NewTag(s, record.SHA, record.Name)
	t.sha.set(record.SHA)
	t.annotated.set(true)
	t.info.set(tagInfoFromRecord(record))
	return t
}

func tagInfoFromRecord(record *store.TagRecord) *tagInfo {
	return &tagInfo{
		message: strings.TrimSuffix(record.Message, "\n"),
		tagger:  ParseAuthor(record.Tagger),
	}
}

// Name returns the tag's name.
func (t *Tag) Name() string { return t.name }

// Annotated reports whether the tag is a tag object rather than a plain ref.
// The answer is asked for once and remembered.
func (t *Tag) Annotated(ctx context.Context) (bool, error) {
	return t.annotated.get(func() (bool, error) {
		typ, err := t.store.ObjectType(ctx, t.objectish)
		if err != nil {
			return false, err
		}
		return typ == "tag", nil
	})
}

// load reads the tag object for annotated tags. Lightweight tags are
// settled without reading anything.
func (t *Tag) load(ctx context.Context) (*tagInfo, error) {
	return t.info.get(func() (*tagInfo, error) {
		annotated, err := t.Annotated(ctx)
		if err != nil {
			return nil, err
		}
		if !annotated {
			return &tagInfo{}, nil
		}

		record, err := t.readRecord(ctx)
		if err != nil {
			return nil, err
		}
		return tagInfoFromRecord(record), nil
	})
}

func (t *Tag) readRecord(ctx context.Context) (*store.TagRecord, error) {
	if t.name != "" {
		return t.store.ReadAnnotatedTag(ctx, t.name)
	}
	return t.store.ReadTagObject(ctx, t.objectish)
}

// Message returns the annotated tag's message without its final newline.
// It is empty for a lightweight tag.
func (t *Tag) Message(ctx context.Context) (string, error) {
	info, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	return info.message, nil
}

// Tagger returns who created an annotated tag, or nil for a lightweight tag.
func (t *Tag) Tagger(ctx context.Context) (*Author, error) {
	info, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return info.tagger, nil
}

// Target returns the object the tag points at, peeling annotated tags one
// level.
func (t *Tag) Target(ctx context.Context) (Object, error) {
	annotated, err := t.Annotated(ctx)
	if err != nil {
		return nil, err
	}
	if !annotated {
		return Lookup(ctx, t.store, t.objectish)
	}
	record, err := t.readRecord(ctx)
	if err != nil {
		return nil, err
	}
	kind, err := ParseKind(record.Object, record.Type)
	if err != nil {
		return nil, err
	}
	if kind == KindTag {
		return Lookup(ctx, t.store, record.Object)
	}
	return NewOfKind(t.store, record.Object, kind)
}
