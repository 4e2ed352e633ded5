package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
)

// newCatCmd creates the cat command.
func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <objectish>",
		Short: "Stream an object's content to stdout",
		Long: `Stream the raw content of an object to stdout without buffering it.

Examples:
  gitobj cat HEAD:README.md        # Print a file as committed
  gitobj cat v1.0:go.mod           # Print a file at a tag`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, a, args[0])
		},
	}
}

// runCat executes the cat command. --json has no effect on the content
// itself; errors are still reported as JSON.
func runCat(cmd *cobra.Command, a *app, objectish string) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	obj, err := object.Lookup(ctx, st, objectish)
	if err != nil {
		printer.Error(err)
		return err
	}

	out := cmd.OutOrStdout()
	err = obj.StreamContents(ctx, func(r io.Reader) error {
		_, copyErr := io.Copy(out, r)
		return copyErr
	})
	if err != nil {
		printer.Error(err)
		return err
	}
	return nil
}
