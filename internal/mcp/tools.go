package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/object"
)

// DefaultMaxBytes caps the contents tool when max_bytes is not given.
const DefaultMaxBytes = 64 * 1024

// Identity is a person and timestamp on a commit or tag.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date,omitempty"`
}

// ObjectInput defines parameters for the object tool.
type ObjectInput struct {
	Objectish string `json:"objectish" jsonschema:"Hash, short hash, ref or revision expression such as HEAD~1 or HEAD:README.md"`
}

// ObjectOutput is the result of the object tool.
type ObjectOutput struct {
	Objectish string `json:"objectish"`
	Kind      string `json:"kind"`
	SHA       string `json:"sha"`
	Size      int64  `json:"size"`
}

func handleObject(st object.Store) mcp.ToolHandlerFor[ObjectInput, ObjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectInput) (*mcp.CallToolResult, ObjectOutput, error) {
		if err := requireArg("objectish", input.Objectish); err != nil {
			return nil, ObjectOutput{}, err
		}
		obj, err := object.Lookup(ctx, st, input.Objectish)
		if err != nil {
			return nil, ObjectOutput{}, err
		}
		sha, err := obj.SHA(ctx)
		if err != nil {
			return nil, ObjectOutput{}, err
		}
		size, err := obj.Size(ctx)
		if err != nil {
			return nil, ObjectOutput{}, err
		}
		return nil, ObjectOutput{
			Objectish: input.Objectish,
			Kind:      obj.Kind().String(),
			SHA:       sha,
			Size:      size,
		}, nil
	}
}

// TreeInput defines parameters for the tree tool.
type TreeInput struct {
	Objectish string `json:"objectish" jsonschema:"Tree or commit to list (e.g. HEAD, HEAD:src)"`
}

// TreeEntry is one child of a tree.
type TreeEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	SHA  string `json:"sha"`
	Mode string `json:"mode"`
}

// TreeOutput is the result of the tree tool.
type TreeOutput struct {
	Objectish string      `json:"objectish"`
	Entries   []TreeEntry `json:"entries"`
}

func handleTree(st object.Store) mcp.ToolHandlerFor[TreeInput, TreeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreeInput) (*mcp.CallToolResult, TreeOutput, error) {
		if err := requireArg("objectish", input.Objectish); err != nil {
			return nil, TreeOutput{}, err
		}
		tree, err := resolveTree(ctx, st, input.Objectish)
		if err != nil {
			return nil, TreeOutput{}, err
		}
		entries, err := listEntries(ctx, tree)
		if err != nil {
			return nil, TreeOutput{}, err
		}
		return nil, TreeOutput{Objectish: input.Objectish, Entries: entries}, nil
	}
}

// resolveTree returns the tree named by objectish, following a commit to
// its root tree.
func resolveTree(ctx context.Context, st object.Store, objectish string) (*object.Tree, error) {
	obj, err := object.Lookup(ctx, st, objectish)
	if err != nil {
		return nil, err
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

func listEntries(ctx context.Context, tree *object.Tree) ([]TreeEntry, error) {
	blobs, err := tree.Blobs(ctx)
	if err != nil {
		return nil, err
	}
	trees, err := tree.Trees(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]TreeEntry, 0, len(blobs)+len(trees))
	for name, b := range blobs {
		entries = append(entries, TreeEntry{Name: name, Kind: b.Kind().String(), SHA: b.Objectish(), Mode: b.Mode()})
	}
	for name, t := range trees {
		entries = append(entries, TreeEntry{Name: name, Kind: t.Kind().String(), SHA: t.Objectish(), Mode: t.Mode()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ContentsInput defines parameters for the contents tool.
type ContentsInput struct {
	Objectish string `json:"objectish" jsonschema:"Blob to read (e.g. HEAD:README.md)"`
	MaxBytes  int    `json:"max_bytes,omitempty" jsonschema:"Maximum bytes to return (default 65536)"`
}

// ContentsOutput is the result of the contents tool.
type ContentsOutput struct {
	SHA       string `json:"sha"`
	Size      int64  `json:"size"`
	Binary    bool   `json:"binary"`
	Truncated bool   `json:"truncated"`
	Text      string `json:"text,omitempty"`
}

func handleContents(st object.Store) mcp.ToolHandlerFor[ContentsInput, ContentsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContentsInput) (*mcp.CallToolResult, ContentsOutput, error) {
		if err := requireArg("objectish", input.Objectish); err != nil {
			return nil, ContentsOutput{}, err
		}
		limit := input.MaxBytes
		if limit <= 0 {
			limit = DefaultMaxBytes
		}

		obj, err := object.Lookup(ctx, st, input.Objectish)
		if err != nil {
			return nil, ContentsOutput{}, err
		}
		if !obj.IsBlob() {
			return nil, ContentsOutput{}, &git.InvalidArgumentError{
				Message: fmt.Sprintf("%s is a %s, not a blob", input.Objectish, obj.Kind()),
			}
		}
		sha, err := obj.SHA(ctx)
		if err != nil {
			return nil, ContentsOutput{}, err
		}
		size, err := obj.Size(ctx)
		if err != nil {
			return nil, ContentsOutput{}, err
		}

		var head []byte
		err = obj.StreamContents(ctx, func(r io.Reader) error {
			var readErr error
			head, readErr = io.ReadAll(io.LimitReader(r, int64(limit)))
			if readErr != nil {
				return readErr
			}
			if int64(len(head)) < size {
				return git.ErrStopReading
			}
			return nil
		})
		if err != nil {
			return nil, ContentsOutput{}, err
		}

		out := ContentsOutput{SHA: sha, Size: size, Truncated: int64(len(head)) < size}
		if isBinary(head, out.Truncated) {
			out.Binary = true
			return nil, out, nil
		}
		out.Text = string(head)
		return nil, out, nil
	}
}

// isBinary reports whether head looks like binary content. A truncated
// head may end inside a multi-byte rune, so up to three trailing bytes
// are ignored when checking UTF-8 validity.
func isBinary(head []byte, truncated bool) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	if !truncated {
		return !utf8.Valid(head)
	}
	for cut := 0; cut < utf8.UTFMax && cut <= len(head); cut++ {
		if utf8.Valid(head[:len(head)-cut]) {
			return false
		}
	}
	return true
}
