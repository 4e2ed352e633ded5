package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
	"github.com/gorewood/gitobj/internal/store"
)

// newTagCmd creates the tag command.
func newTagCmd(a *app) *cobra.Command {
	var createFlag bool
	var annotateFlag bool
	var messageFlag string
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "tag <name> [<target>]",
		Short: "Show a tag, or create one with --create",
		Long: `Show a tag: whether it is annotated, the object it points at, and
the tagger and message of an annotated tag.

With --create, create the tag instead, pointing at target (HEAD when
omitted). An annotated tag (-a) needs a message (-m).

Examples:
  gitobj tag v1.0                              # Show a tag
  gitobj tag v1.1 --create                     # Lightweight tag at HEAD
  gitobj tag v1.1 HEAD~1 --create -a -m "Fix"  # Annotated tag`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if createFlag {
				target := ""
				if len(args) > 1 {
					target = args[1]
				}
				opts := store.TagOptions{Annotate: annotateFlag, Message: messageFlag, Force: forceFlag}
				return runTagCreate(cmd, a, args[0], target, opts)
			}
			if len(args) > 1 {
				err := output.NewUserError("a target is only accepted with --create")
				a.printer(cmd).Error(err)
				return err
			}
			return runTagShow(cmd, a, args[0])
		},
	}

	cmd.Flags().BoolVar(&createFlag, "create", false, "Create the tag instead of showing it")
	cmd.Flags().BoolVarP(&annotateFlag, "annotate", "a", false, "Create an annotated tag")
	cmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Tag message")
	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Replace an existing tag")

	return cmd
}

// runTagShow executes the tag command in show mode.
func runTagShow(cmd *cobra.Command, a *app, name string) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	tag, err := object.LookupTag(ctx, st, name)
	if err != nil {
		printer.Error(err)
		return err
	}
	sha, err := tag.SHA(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	view := &showView{Objectish: name, Kind: tag.Kind().String(), SHA: sha}
	if err := fillTagView(ctx, view, tag); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(view)
	}

	printer.Println("tag " + view.Tag)
	printer.KeyValue("Annotated", strconv.FormatBool(*view.Annotated))
	printer.KeyValue("Target", view.Target)
	if view.Tagger != nil {
		printer.KeyValue("Tagger", formatIdentity(view.Tagger))
	}
	if view.Message != "" {
		printer.Println()
		printer.Box("Message", view.Message)
	}
	return nil
}

// runTagCreate executes the tag command in create mode.
func runTagCreate(cmd *cobra.Command, a *app, name, target string, opts store.TagOptions) error {
	printer := a.printer(cmd)

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	if err := st.AddTag(ctx, name, target, opts); err != nil {
		printer.Error(err)
		return err
	}
	tag, err := object.LookupTag(ctx, st, name)
	if err != nil {
		printer.Error(err)
		return err
	}
	sha, err := tag.SHA(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	// git makes an annotated tag for -m even without -a
	annotated, err := tag.Annotated(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status":    "created",
			"name":      name,
			"sha":       sha,
			"annotated": annotated,
		})
	}
	printer.Print("Created tag %s (%s)\n", name, printer.Hash(shortSHA(sha)))
	return nil
}
