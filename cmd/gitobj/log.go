package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
)

// logEntryView is the JSON form of one commit in a log.
type logEntryView struct {
	SHA       string        `json:"sha"`
	Parents   []string      `json:"parents"`
	Author    *identityView `json:"author"`
	Committer *identityView `json:"committer"`
	Message   string        `json:"message"`
}

// newLogCmd creates the log command.
func newLogCmd(a *app) *cobra.Command {
	var countFlag int
	var onelineFlag bool

	cmd := &cobra.Command{
		Use:   "log [<ref>]",
		Short: "List commits reachable from a ref",
		Long: `List commits reachable from ref (HEAD when omitted), newest first.
All commits are read with a single git call.

Examples:
  gitobj log                       # Last 10 commits from HEAD
  gitobj log v1.0 -n 3             # Last 3 commits up to a tag
  gitobj log --oneline             # One line per commit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := "HEAD"
			if len(args) > 0 {
				ref = args[0]
			}
			return runLog(cmd, a, ref, countFlag, onelineFlag)
		},
	}

	cmd.Flags().IntVarP(&countFlag, "count", "n", 10, "Number of commits to show")
	cmd.Flags().BoolVar(&onelineFlag, "oneline", false, "Show compact format: <sha>  <subject>")

	return cmd
}

// runLog executes the log command.
func runLog(cmd *cobra.Command, a *app, ref string, count int, oneline bool) error {
	printer := a.printer(cmd)

	if count <= 0 {
		err := output.NewUserError("--count must be positive")
		printer.Error(err)
		return err
	}

	st, err := a.openStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	commits, err := object.Log(ctx, st, ref, count)
	if err != nil {
		printer.Error(err)
		return err
	}

	entries := make([]logEntryView, 0, len(commits))
	for _, c := range commits {
		entry, err := buildLogEntry(ctx, c)
		if err != nil {
			printer.Error(err)
			return err
		}
		entries = append(entries, entry)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"commits": entries})
	}
	outputLogHuman(printer, entries, oneline)
	return nil
}

// buildLogEntry reads the fields of c. Commits from a log are already
// filled, so no git command runs here.
func buildLogEntry(ctx context.Context, c *object.Commit) (logEntryView, error) {
	sha, err := c.SHA(ctx)
	if err != nil {
		return logEntryView{}, err
	}
	parents, err := c.Parents(ctx)
	if err != nil {
		return logEntryView{}, err
	}
	author, err := c.Author(ctx)
	if err != nil {
		return logEntryView{}, err
	}
	committer, err := c.Committer(ctx)
	if err != nil {
		return logEntryView{}, err
	}
	message, err := c.Message(ctx)
	if err != nil {
		return logEntryView{}, err
	}

	entry := logEntryView{
		SHA:       sha,
		Parents:   make([]string, 0, len(parents)),
		Author:    toIdentityView(author),
		Committer: toIdentityView(committer),
		Message:   message,
	}
	for _, p := range parents {
		entry.Parents = append(entry.Parents, p.Objectish())
	}
	return entry, nil
}

func outputLogHuman(printer *output.Printer, entries []logEntryView, oneline bool) {
	for i, e := range entries {
		subject, _, _ := strings.Cut(e.Message, "\n")
		if oneline {
			printer.Print("%s  %s\n", printer.Hash(shortSHA(e.SHA)), subject)
			continue
		}
		if i > 0 {
			printer.Println()
		}
		printer.Println("commit " + printer.Hash(e.SHA))
		printer.KeyValue("Author", formatIdentity(e.Author))
		printer.Println()
		for line := range strings.SplitSeq(e.Message, "\n") {
			printer.Println("    " + line)
		}
	}
}
