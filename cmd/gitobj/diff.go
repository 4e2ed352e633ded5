package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
	"github.com/gorewood/gitobj/internal/store"
)

// newDiffCmd creates the diff command.
func newDiffCmd(a *app) *cobra.Command {
	var statFlag bool

	cmd := &cobra.Command{
		Use:   "diff <objectish> [<other>]",
		Short: "Show the diff between two objects",
		Long: `Show the diff from objectish to other. With a single commit, show the
diff from its first parent to the commit.

Examples:
  gitobj diff HEAD                 # What the last commit changed
  gitobj diff v1.0 HEAD            # Everything since a tag
  gitobj diff HEAD --stat          # Files changed and lines added/removed`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if statFlag {
				return runDiffStat(cmd, a, args)
			}
			return runDiff(cmd, a, args)
		},
	}

	cmd.Flags().BoolVar(&statFlag, "stat", false, "Show only a summary of the changes")

	return cmd
}

// runDiff executes the diff command.
func runDiff(cmd *cobra.Command, a *app, args []string) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	diff, err := diffObjects(cmd.Context(), st, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"diff": diff})
	}
	printer.Print("%s", diff)
	return nil
}

// runDiffStat executes the diff command with --stat.
func runDiffStat(cmd *cobra.Command, a *app, args []string) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	stat, err := diffStat(cmd.Context(), st, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(stat)
	}
	printer.Println(formatStat(stat))
	return nil
}

// diffStat summarizes args[0]..args[1], or a single commit against its
// parent.
func diffStat(ctx context.Context, st object.Store, args []string) (store.DiffStat, error) {
	if len(args) == 2 {
		return st.DiffStat(ctx, args[0], args[1])
	}
	obj, err := object.Lookup(ctx, st, args[0])
	if err != nil {
		return store.DiffStat{}, err
	}
	c, ok := obj.(*object.Commit)
	if !ok {
		return store.DiffStat{}, output.NewUserError(args[0] + " is a " + obj.Kind().String() + "; give two objects to diff")
	}
	return c.Stat(ctx)
}

// diffObjects diffs args[0] against args[1], or a single commit against
// its first parent.
func diffObjects(ctx context.Context, st object.Store, args []string) (string, error) {
	obj, err := object.Lookup(ctx, st, args[0])
	if err != nil {
		return "", err
	}
	if len(args) == 2 {
		return obj.Diff(ctx, args[1])
	}
	c, ok := obj.(*object.Commit)
	if !ok {
		return "", output.NewUserError(args[0] + " is a " + obj.Kind().String() + "; give two objects to diff")
	}
	parent, err := c.Parent(ctx)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", output.NewUserError("commit " + args[0] + " has no parent")
	}
	return parent.Diff(ctx, args[0])
}
