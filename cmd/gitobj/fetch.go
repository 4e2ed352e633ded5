package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/store"
)

// newFetchCmd creates the fetch command.
func newFetchCmd(a *app) *cobra.Command {
	var opts store.FetchOptions

	cmd := &cobra.Command{
		Use:   "fetch [<remote>] [<ref>]",
		Short: "Fetch objects from a remote",
		Long: `Fetch objects and refs from remote (origin when omitted).

Examples:
  gitobj fetch                     # Fetch origin
  gitobj fetch upstream main       # One branch from another remote
  gitobj fetch --tags --prune`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote := ""
			if len(args) > 0 {
				remote = args[0]
			}
			if len(args) > 1 {
				opts.Ref = args[1]
			}
			return runFetch(cmd, a, remote, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Tags, "tags", false, "Fetch all tags")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "Remove refs that no longer exist on the remote")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Limit fetching to this many commits")

	return cmd
}

// runFetch executes the fetch command.
func runFetch(cmd *cobra.Command, a *app, remote string, opts store.FetchOptions) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := st.Fetch(cmd.Context(), remote, opts); err != nil {
		printer.Error(err)
		return err
	}

	if remote == "" {
		remote = "origin"
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "fetched", "remote": remote})
	}
	printer.Print("Fetched %s\n", remote)
	return nil
}
