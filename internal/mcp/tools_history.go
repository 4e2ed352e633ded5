package mcp

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/object"
	"github.com/gorewood/gitobj/internal/store"
)

// Log limits.
const (
	defaultLogCount = 10
	maxLogCount     = 500
)

// CommitInput defines parameters for the commit tool.
type CommitInput struct {
	Objectish string `json:"objectish" jsonschema:"Commit to read (e.g. HEAD, a hash, a branch name)"`
}

// CommitOutput is a hydrated commit.
type CommitOutput struct {
	SHA       string    `json:"sha"`
	Tree      string    `json:"tree"`
	Parents   []string  `json:"parents"`
	Author    *Identity `json:"author"`
	Committer *Identity `json:"committer"`
	Message   string    `json:"message"`

	// Stat is filled by the commit tool only.
	Stat *store.DiffStat `json:"stat,omitempty"`
}

func handleCommit(st object.Store) mcp.ToolHandlerFor[CommitInput, CommitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommitInput) (*mcp.CallToolResult, CommitOutput, error) {
		if err := requireArg("objectish", input.Objectish); err != nil {
			return nil, CommitOutput{}, err
		}
		obj, err := object.Lookup(ctx, st, input.Objectish)
		if err != nil {
			return nil, CommitOutput{}, err
		}
		commit, ok := obj.(*object.Commit)
		if !ok {
			return nil, CommitOutput{}, &git.InvalidArgumentError{
				Message: fmt.Sprintf("%s is a %s, not a commit", input.Objectish, obj.Kind()),
			}
		}
		out, err := describeCommit(ctx, commit)
		if err != nil {
			return nil, CommitOutput{}, err
		}
		stat, err := commit.Stat(ctx)
		if err != nil {
			return nil, CommitOutput{}, err
		}
		out.Stat = &stat
		return nil, out, nil
	}
}

// TagInput defines parameters for the tag tool.
type TagInput struct {
	Name string `json:"name" jsonschema:"Tag name without the refs/tags/ prefix"`
}

// TagOutput describes a tag.
type TagOutput struct {
	Name       string    `json:"name"`
	Annotated  bool      `json:"annotated"`
	Target     string    `json:"target"`
	TargetKind string    `json:"target_kind"`
	Tagger     *Identity `json:"tagger,omitempty"`
	Message    string    `json:"message,omitempty"`
}

func handleTag(st object.Store) mcp.ToolHandlerFor[TagInput, TagOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagInput) (*mcp.CallToolResult, TagOutput, error) {
		if err := requireArg("name", input.Name); err != nil {
			return nil, TagOutput{}, err
		}
		tag, err := object.LookupTag(ctx, st, input.Name)
		if err != nil {
			return nil, TagOutput{}, err
		}
		out, err := describeTag(ctx, tag)
		if err != nil {
			return nil, TagOutput{}, err
		}
		return nil, out, nil
	}
}

func describeTag(ctx context.Context, tag *object.Tag) (TagOutput, error) {
	annotated, err := tag.Annotated(ctx)
	if err != nil {
		return TagOutput{}, err
	}
	target, err := tag.Target(ctx)
	if err != nil {
		return TagOutput{}, err
	}
	targetSHA, err := target.SHA(ctx)
	if err != nil {
		return TagOutput{}, err
	}
	tagger, err := tag.Tagger(ctx)
	if err != nil {
		return TagOutput{}, err
	}
	message, err := tag.Message(ctx)
	if err != nil {
		return TagOutput{}, err
	}
	return TagOutput{
		Name:       tag.Name(),
		Annotated:  annotated,
		Target:     targetSHA,
		TargetKind: target.Kind().String(),
		Tagger:     toIdentity(tagger),
		Message:    message,
	}, nil
}

// LogInput defines parameters for the log tool.
type LogInput struct {
	Ref   string `json:"ref,omitempty" jsonschema:"Starting ref (default HEAD)"`
	Count int    `json:"count,omitempty" jsonschema:"Number of commits (default 10, max 500)"`
}

// LogOutput is the result of the log tool.
type LogOutput struct {
	Commits []CommitOutput `json:"commits"`
}

func handleLog(st object.Store) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, LogOutput, error) {
		ref := input.Ref
		if ref == "" {
			ref = "HEAD"
		}
		count := input.Count
		if count <= 0 {
			count = defaultLogCount
		}
		count = min(count, maxLogCount)

		commits, err := object.Log(ctx, st, ref, count)
		if err != nil {
			return nil, LogOutput{}, err
		}
		out := LogOutput{Commits: make([]CommitOutput, 0, len(commits))}
		for _, c := range commits {
			desc, err := describeCommit(ctx, c)
			if err != nil {
				return nil, LogOutput{}, err
			}
			out.Commits = append(out.Commits, desc)
		}
		return nil, out, nil
	}
}

// GrepInput defines parameters for the grep tool.
type GrepInput struct {
	Pattern    string `json:"pattern" jsonschema:"Pattern to search for (basic regular expression)"`
	Objectish  string `json:"objectish,omitempty" jsonschema:"Tree or commit to search (default HEAD)"`
	Path       string `json:"path,omitempty" jsonschema:"Limit the search to this path"`
	IgnoreCase bool   `json:"ignore_case,omitempty" jsonschema:"Match case-insensitively"`
}

// GrepResult is one matching line.
type GrepResult struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// GrepOutput is the result of the grep tool.
type GrepOutput struct {
	Matches []GrepResult `json:"matches"`
}

func handleGrep(st object.Store) mcp.ToolHandlerFor[GrepInput, GrepOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GrepInput) (*mcp.CallToolResult, GrepOutput, error) {
		if err := requireArg("pattern", input.Pattern); err != nil {
			return nil, GrepOutput{}, err
		}
		objectish := input.Objectish
		if objectish == "" {
			objectish = "HEAD"
		}
		tree, err := resolveTree(ctx, st, objectish)
		if err != nil {
			return nil, GrepOutput{}, err
		}
		byPath, err := tree.Grep(ctx, input.Pattern, input.Path, store.GrepOptions{IgnoreCase: input.IgnoreCase})
		if err != nil {
			return nil, GrepOutput{}, err
		}
		out := GrepOutput{Matches: []GrepResult{}}
		for _, path := range slices.Sorted(maps.Keys(byPath)) {
			for _, m := range byPath[path] {
				out.Matches = append(out.Matches, GrepResult{Path: path, Line: m.Line, Text: m.Text})
			}
		}
		return nil, out, nil
	}
}
