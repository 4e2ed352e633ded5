package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
	"github.com/gorewood/gitobj/internal/store"
)

// newArchiveCmd creates the archive command.
func newArchiveCmd(a *app) *cobra.Command {
	var outFlag string
	var opts store.ArchiveOptions

	cmd := &cobra.Command{
		Use:   "archive <objectish>",
		Short: "Write an archive of a tree",
		Long: `Write a tar, tgz or zip archive of the tree of a commit, tag or tree.
The archive goes to stdout unless --output names a file.

Examples:
  gitobj archive v1.0 -o release.tgz --format tgz --prefix app-1.0/
  gitobj archive HEAD --path src > src.tar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, a, args[0], outFlag, opts)
		},
	}

	cmd.Flags().StringVarP(&outFlag, "output", "o", "", "Write the archive to this file")
	cmd.Flags().StringVar(&opts.Format, "format", "tar", "Archive format: tar, tgz or zip")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Prepend this to every path (usually ending in /)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Only archive this path")

	return cmd
}

// runArchive executes the archive command.
func runArchive(cmd *cobra.Command, a *app, objectish, outPath string, opts store.ArchiveOptions) error {
	printer := a.printer(cmd)

	if outPath == "" && printer.IsJSON() {
		err := output.NewUserError("--json needs --output; the archive itself is written to stdout")
		printer.Error(err)
		return err
	}

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

	if outPath == "" {
		if err := obj.Archive(ctx, cmd.OutOrStdout(), opts); err != nil {
			printer.Error(err)
			return err
		}
		return nil
	}

	size, err := archiveToFile(cmd, obj, outPath, opts)
	if err != nil {
		printer.Error(err)
		return err
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "written", "path": outPath, "bytes": size})
	}
	printer.Print("Wrote %s (%d bytes)\n", outPath, size)
	return nil
}

// archiveToFile writes the archive to path and returns its size. A failed
// archive leaves no file behind.
func archiveToFile(cmd *cobra.Command, obj object.Object, path string, opts store.ArchiveOptions) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, output.NewSystemErrorWithCause("creating "+path+": "+err.Error(), err)
	}
	defer func() { _ = f.Close() }()

	if err := obj.Archive(cmd.Context(), f, opts); err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
