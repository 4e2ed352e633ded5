package object

import (
	"context"

	"github.com/gorewood/gitobj/internal/git"
)

// Lookup asks the store for the type of objectish and returns the matching
// object. A tag object is returned as an annotated *Tag named from its own
// record. An unknown type is a *git.UnsupportedObjectTypeError.
func Lookup(ctx context.Context, s Store, objectish string) (Object, error) {
	typ, err := s.ObjectType(ctx, objectish)
	if err != nil {
		return nil, err
	}
	kind, err := ParseKind(objectish, typ)
	if err != nil {
		return nil, err
	}
	if kind == KindTag {
		record, err := s.ReadTagObject(ctx, objectish)
		if err != nil {
			return nil, err
		}
		return newAnnotatedTag(s, record), nil
	}
	return NewOfKind(s, objectish, kind)
}

// NewOfKind returns the object of the given kind for objectish without
// reading anything. For KindTag, objectish is the tag's hash and the tag has
// no name; use LookupTag to find a tag by name.
func NewOfKind(s Store, objectish string, kind Kind) (Object, error) {
	switch kind {
	case KindBlob:
		return NewBlob(s, objectish, ""), nil
	case KindTree:
		return NewTree(s, objectish, ""), nil
	case KindCommit:
		return NewCommit(s, objectish), nil
	case KindTag:
		return NewTag(s, objectish, ""), nil
	default:
		return nil, &git.UnsupportedObjectTypeError{Objectish: objectish, Type: kind.String()}
	}
}
