package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/output"
	"github.com/gorewood/gitobj/internal/store"
)

// identityView is the JSON form of an author, committer or tagger.
type identityView struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// showView is the JSON form of any object. Fields that do not apply to
// the object's kind are omitted.
type showView struct {
	Objectish string `json:"objectish"`
	Kind      string `json:"kind"`
	SHA       string `json:"sha"`
	Size      int64  `json:"size"`

	// blob
	Lines *int `json:"lines,omitempty"`

	// tree
	Entries *int `json:"entries,omitempty"`
	Depth   *int `json:"depth,omitempty"`

	// commit
	Tree      string          `json:"tree,omitempty"`
	Parents   []string        `json:"parents,omitempty"`
	Author    *identityView   `json:"author,omitempty"`
	Committer *identityView   `json:"committer,omitempty"`
	Name      string          `json:"name,omitempty"`
	Stat      *store.DiffStat `json:"stat,omitempty"`

	// tag
	Tag       string        `json:"tag,omitempty"`
	Annotated *bool         `json:"annotated,omitempty"`
	Target    string        `json:"target,omitempty"`
	Tagger    *identityView `json:"tagger,omitempty"`

	Message string `json:"message,omitempty"`
}

// newShowCmd creates the show command.
func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <objectish>",
		Short: "Describe any object",
		Long: `Describe the object named by an objectish: its kind, full hash and
size, plus what its kind carries (a commit's parents and message, a tree's
entries, a tag's target).

Examples:
  gitobj show HEAD                 # Current commit
  gitobj show HEAD:README.md       # A blob
  gitobj show v1.0 --json          # A tag as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, a, args[0])
		},
	}
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, a *app, objectish string) error {
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
	view, err := buildShowView(ctx, obj)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(view)
	}
	outputShowHuman(printer, view)
	return nil
}

// buildShowView reads everything show prints for obj.
func buildShowView(ctx context.Context, obj object.Object) (*showView, error) {
	sha, err := obj.SHA(ctx)
	if err != nil {
		return nil, err
	}
	size, err := obj.Size(ctx)
	if err != nil {
		return nil, err
	}
	view := &showView{Objectish: obj.Objectish(), Kind: obj.Kind().String(), SHA: sha, Size: size}

	switch o := obj.(type) {
	case *object.Blob:
		lines, err := o.ContentsLines(ctx)
		if err != nil {
			return nil, err
		}
		view.Lines = intPtr(len(lines))
	case *object.Tree:
		err = fillTreeView(ctx, view, o)
	case *object.Commit:
		err = fillCommitView(ctx, view, o)
	case *object.Tag:
		err = fillTagView(ctx, view, o)
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func fillTreeView(ctx context.Context, view *showView, tree *object.Tree) error {
	names, err := tree.Names(ctx)
	if err != nil {
		return err
	}
	depth, err := tree.Depth(ctx)
	if err != nil {
		return err
	}
	view.Entries = intPtr(len(names))
	view.Depth = intPtr(depth)
	return nil
}

func fillCommitView(ctx context.Context, view *showView, c *object.Commit) error {
	tree, err := c.Tree(ctx)
	if err != nil {
		return err
	}
	parents, err := c.Parents(ctx)
	if err != nil {
		return err
	}
	author, err := c.Author(ctx)
	if err != nil {
		return err
	}
	committer, err := c.Committer(ctx)
	if err != nil {
		return err
	}
	message, err := c.Message(ctx)
	if err != nil {
		return err
	}
	name, err := c.Name(ctx)
	if err != nil {
		return err
	}
	stat, err := c.Stat(ctx)
	if err != nil {
		return err
	}

	view.Tree = tree.Objectish()
	for _, p := range parents {
		view.Parents = append(view.Parents, p.Objectish())
	}
	view.Author = toIdentityView(author)
	view.Committer = toIdentityView(committer)
	view.Message = message
	view.Name = name
	view.Stat = &stat
	return nil
}

func fillTagView(ctx context.Context, view *showView, tag *object.Tag) error {
	annotated, err := tag.Annotated(ctx)
	if err != nil {
		return err
	}
	target, err := tag.Target(ctx)
	if err != nil {
		return err
	}
	targetSHA, err := target.SHA(ctx)
	if err != nil {
		return err
	}
	tagger, err := tag.Tagger(ctx)
	if err != nil {
		return err
	}
	message, err := tag.Message(ctx)
	if err != nil {
		return err
	}

	view.Tag = tag.Name()
	view.Annotated = &annotated
	view.Target = targetSHA + " (" + target.Kind().String() + ")"
	view.Tagger = toIdentityView(tagger)
	view.Message = message
	return nil
}

// outputShowHuman prints the view as key/value lines.
func outputShowHuman(printer *output.Printer, view *showView) {
	printer.Println(view.Kind + " " + printer.Hash(view.SHA))
	printer.KeyValue("Size", strconv.FormatInt(view.Size, 10))

	if view.Lines != nil {
		printer.KeyValue("Lines", strconv.Itoa(*view.Lines))
	}
	if view.Entries != nil {
		printer.KeyValue("Entries", strconv.Itoa(*view.Entries))
		printer.KeyValue("Depth", strconv.Itoa(*view.Depth))
	}
	if view.Tree != "" {
		printer.KeyValue("Tree", view.Tree)
		if len(view.Parents) > 0 {
			printer.KeyValue("Parents", strings.Join(view.Parents, " "))
		}
		printer.KeyValue("Author", formatIdentity(view.Author))
		printer.KeyValue("Committer", formatIdentity(view.Committer))
		if view.Name != "" {
			printer.KeyValue("Name", view.Name)
		}
		if view.Stat != nil {
			printer.KeyValue("Changed", formatStat(*view.Stat))
		}
	}
	if view.Annotated != nil {
		printer.KeyValue("Tag", view.Tag)
		printer.KeyValue("Annotated", strconv.FormatBool(*view.Annotated))
		printer.KeyValue("Target", view.Target)
		if view.Tagger != nil {
			printer.KeyValue("Tagger", formatIdentity(view.Tagger))
		}
	}
	if view.Message != "" {
		printer.Println()
		printer.Box("Message", view.Message)
	}
}

func toIdentityView(a *object.Author) *identityView {
	if a == nil {
		return nil
	}
	return &identityView{Name: a.Name, Email: a.Email, Date: a.Date}
}

// formatIdentity renders "Name <email>  2006-01-02 15:04:05 -0700".
func formatIdentity(id *identityView) string {
	if id == nil {
		return ""
	}
	s := id.Name + " <" + id.Email + ">"
	if !id.Date.IsZero() {
		s += "  " + id.Date.Format("2006-01-02 15:04:05 -0700")
	}
	return s
}

// formatStat renders "2 files, +4/-0 lines".
func formatStat(stat store.DiffStat) string {
	suffix := "s"
	if stat.Files == 1 {
		suffix = ""
	}
	return fmt.Sprintf("%d file%s, +%d/-%d lines", stat.Files, suffix, stat.Insertions, stat.Deletions)
}

func intPtr(n int) *int {
	return &n
}

// shortSHA returns a shortened SHA (first 7 characters).
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
