package object

import (
	"context"
	"maps"
	"slices"
)

// Tree is a directory listing.
type Tree struct {
	base
	children lazy[*treeChildren]
}

type treeChildren struct {
	blobs map[string]*Blob
	trees map[string]*Tree
}

// NewTree returns a tree for objectish. A commit objectish stands for the
// commit's root tree.
func NewTree(s Store, objectish, mode string) *Tree {
	return &Tree{base: newBase(s, objectish, KindTree, mode)}
}

// Mode returns the tree's mode, "040000" for subtrees, or "" when unknown.
func (t *Tree) Mode() string { return t.mode }

// load lists the direct children in one store call. Children are wrapped
// but not read; submodule entries are skipped.
func (t *Tree) load(ctx context.Context) (*treeChildren, error) {
	return t.children.get(func() (*treeChildren, error) {
		entries, err := t.store.ListTreeEntries(ctx, t.objectish)
		if err != nil {
			return nil, err
		}
		c := &treeChildren{
			blobs: make(map[string]*Blob, len(entries.Blobs)),
			trees: make(map[string]*Tree, len(entries.Trees)),
		}
		for name, e := range entries.Blobs {
			c.blobs[name] = NewBlob(t.store, e.SHA, e.Mode)
		}
		for name, e := range entries.Trees {
			c.trees[name] = NewTree(t.store, e.SHA, e.Mode)
		}
		return c, nil
	})
}

// Blobs returns the files directly in the tree, by name. The map is shared
// between calls and must not be modified.
func (t *Tree) Blobs(ctx context.Context) (map[string]*Blob, error) {
	c, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.blobs, nil
}

// Files is Blobs.
func (t *Tree) Files(ctx context.Context) (map[string]*Blob, error) {
	return t.Blobs(ctx)
}

// Trees returns the directories directly in the tree, by name. The map is
// shared between calls and must not be modified.
func (t *Tree) Trees(ctx context.Context) (map[string]*Tree, error) {
	c, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.trees, nil
}

// Subtrees is Trees.
func (t *Tree) Subtrees(ctx context.Context) (map[string]*Tree, error) {
	return t.Trees(ctx)
}

// Subdirectories is Trees.
func (t *Tree) Subdirectories(ctx context.Context) (map[string]*Tree, error) {
	return t.Trees(ctx)
}

// Children returns blobs and trees together in a new map. A name is never
// both a blob and a tree.
func (t *Tree) Children(ctx context.Context) (map[string]Object, error) {
	c, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	all := make(map[string]Object, len(c.blobs)+len(c.trees))
	for name, b := range c.blobs {
		all[name] = b
	}
	for name, sub := range c.trees {
		all[name] = sub
	}
	return all, nil
}

// Names returns the names of the direct children, sorted.
func (t *Tree) Names(ctx context.Context) ([]string, error) {
	all, err := t.Children(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(all)), nil
}

// FullTree returns the recursive listing of the tree, one entry per blob.
func (t *Tree) FullTree(ctx context.Context) ([]string, error) {
	return t.store.FullTree(ctx, t.objectish)
}

// Depth returns the number of entries in the recursive listing.
func (t *Tree) Depth(ctx context.Context) (int, error) {
	return t.store.TreeDepth(ctx, t.objectish)
}
