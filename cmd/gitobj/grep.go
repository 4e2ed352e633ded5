package main

import (
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/store"
)

// grepMatchView is the JSON form of one matching line.
type grepMatchView struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// newGrepCmd creates the grep command.
func newGrepCmd(a *app) *cobra.Command {
	var objectishFlag string
	var pathFlag string
	var opts store.GrepOptions

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "Search the files of a tree",
		Long: `Search the files of a committed tree for a pattern.

Examples:
  gitobj grep TODO                          # Search HEAD
  gitobj grep -i todo --at v1.0 --path src  # Case-insensitive, at a tag, below src/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrep(cmd, a, args[0], objectishFlag, pathFlag, opts)
		},
	}

	cmd.Flags().StringVar(&objectishFlag, "at", "HEAD", "Tree or commit to search")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Limit the search to this path")
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Match case-insensitively")
	cmd.Flags().BoolVarP(&opts.InvertMatch, "invert-match", "v", false, "Select non-matching lines")
	cmd.Flags().BoolVarP(&opts.ExtendedRegexp, "extended-regexp", "E", false, "Use extended regular expressions")

	return cmd
}

// runGrep executes the grep command.
func runGrep(cmd *cobra.Command, a *app, pattern, objectish, path string, opts store.GrepOptions) error {
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
	byPath, err := tree.Grep(ctx, pattern, path, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	matches := []grepMatchView{}
	for _, p := range slices.Sorted(maps.Keys(byPath)) {
		for _, m := range byPath[p] {
			matches = append(matches, grepMatchView{Path: p, Line: m.Line, Text: m.Text})
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"matches": matches})
	}
	for _, m := range matches {
		printer.Println(m.Path + ":" + strconv.Itoa(m.Line) + ":" + m.Text)
	}
	return nil
}
