package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
)

// treeEntryView is the JSON form of one tree child.
type treeEntryView struct {
	Mode string `json:"mode"`
	Kind string `json:"kind"`
	SHA  string `json:"sha"`
	Name string `json:"name"`
}

// newTreeCmd creates the tree command.
func newTreeCmd(a *app) *cobra.Command {
	var recursiveFlag bool

	cmd := &cobra.Command{
		Use:   "tree <objectish>",
		Short: "List the children of a tree",
		Long: `List the direct children of a tree. A commit lists its root tree.
Submodule entries are not listed.

Examples:
  gitobj tree HEAD                 # Root of the current commit
  gitobj tree HEAD:src             # A subdirectory
  gitobj tree HEAD -r              # Every blob below the tree, one ls-tree line each`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, a, args[0], recursiveFlag)
		},
	}

	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "List every blob below the tree")

	return cmd
}

// runTree executes the tree command.
func runTree(cmd *cobra.Command, a *app, objectish string, recursive bool) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	tree, err := resolveTree(ctx, st, objectish)
	if err != nil {
		printer.Error(err)
		return err
	}

	if recursive {
		return outputFullTree(ctx, printer, tree)
	}

	entries, err := treeEntries(ctx, tree)
	if err != nil {
		printer.Error(err)
		return err
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"objectish": objectish, "entries": entries})
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Mode, e.Kind, printer.Hash(shortSHA(e.SHA)), e.Name})
	}
	printer.Table([]string{"MODE", "KIND", "SHA", "NAME"}, rows)
	return nil
}

func outputFullTree(ctx context.Context, printer *output.Printer, tree *object.Tree) error {
	lines, err := tree.FullTree(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"lines": lines})
	}
	for _, line := range lines {
		printer.Println(line)
	}
	return nil
}

// resolveTree returns the tree named by objectish, following a commit to
// its root tree and an annotated tag to what it points at.
func resolveTree(ctx context.Context, st object.Store, objectish string) (*object.Tree, error) {
	obj, err := object.Lookup(ctx, st, objectish)
	if err != nil {
		return nil, err
	}
	if tag, ok := obj.(*object.Tag); ok {
		if obj, err = tag.Target(ctx); err != nil {
			return nil, err
		}
	}
	switch o := obj.(type) {
	case *object.Tree:
		return o, nil
	case *object.Commit:
		return o.Tree(ctx)
	default:
		return nil, &git.InvalidArgumentError{
			Message: fmt.Sprintf("%s is a %s, not a tree", objectish, obj.Kind()),
		}
	}
}

// treeEntries lists the children of tree in name order.
func treeEntries(ctx context.Context, tree *object.Tree) ([]treeEntryView, error) {
	names, err := tree.Names(ctx)
	if err != nil {
		return nil, err
	}
	blobs, err := tree.Blobs(ctx)
	if err != nil {
		return nil, err
	}
	trees, err := tree.Trees(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]treeEntryView, 0, len(names))
	for _, name := range names {
		if b, ok := blobs[name]; ok {
			entries = append(entries, treeEntryView{Mode: b.Mode(), Kind: b.Kind().String(), SHA: b.Objectish(), Name: name})
		}
		if t, ok := trees[name]; ok {
			entries = append(entries, treeEntryView{Mode: t.Mode(), Kind: t.Kind().String(), SHA: t.Objectish(), Name: name})
		}
	}
	return entries, nil
}
