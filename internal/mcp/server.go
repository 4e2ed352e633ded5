// Package mcp provides a Model Context Protocol server for gitobj.
// It exposes read-only repository object lookups as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitobj/internal/object"
)

// NewServer creates an MCP server with all gitobj tools registered.
func NewServer(version string, st object.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gitobj",
		Version: version,
	}, nil)
	registerTools(server, st)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all gitobj tools to the server.
func registerTools(server *mcp.Server, st object.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "object",
		Description: "Identify a git object. Resolves any objectish (hash, short hash, ref, HEAD~2, HEAD:path) and returns its kind, full hash and size.",
		Annotations: readOnlyAnnotations(),
	}, handleObject(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree",
		Description: "List the direct children of a tree (or of a commit's root tree): name, kind, hash and mode of each entry.",
		Annotations: readOnlyAnnotations(),
	}, handleTree(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "contents",
		Description: "Read the content of a blob as text, up to max_bytes (default 65536). Binary content is reported but not returned.",
		Annotations: readOnlyAnnotations(),
	}, handleContents(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "commit",
		Description: "Read a commit: tree, parents, author, committer, message and a summary of what it changed.",
		Annotations: readOnlyAnnotations(),
	}, handleCommit(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tag",
		Description: "Read a tag by name: whether it is annotated, the object it points at, and the tagger and message of annotated tags.",
		Annotations: readOnlyAnnotations(),
	}, handleTag(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "List recent commits reachable from a ref, newest first (default HEAD, 10 commits).",
		Annotations: readOnlyAnnotations(),
	}, handleLog(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "grep",
		Description: "Search the files of a tree for a pattern (git grep). Returns matching lines by path.",
		Annotations: readOnlyAnnotations(),
	}, handleGrep(st))
}
