package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/gorewood/gitobj/internal/git"
	"github.com/gorewood/gitobj/internal/object"
)

// requireArg rejects an empty required argument before any git call.
func requireArg(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &git.InvalidArgumentError{Message: name + " is required"}
	}
	return nil
}

// toIdentity converts an author to its output form. nil stays nil.
func toIdentity(a *object.Author) *Identity {
	if a == nil {
		return nil
	}
	id := &Identity{Name: a.Name, Email: a.Email}
	if !a.Date.IsZero() {
		id.Date = a.Date.Format(time.RFC3339)
	}
	return id
}

// describeCommit reads every field of c. Commits from a log query are
// already filled, so this makes no further git calls for them.
func describeCommit(ctx context.Context, c *object.Commit) (CommitOutput, error) {
	sha, err := c.SHA(ctx)
	if err != nil {
		return CommitOutput{}, err
	}
	tree, err := c.Tree(ctx)
	if err != nil {
		return CommitOutput{}, err
	}
	parents, err := c.Parents(ctx)
	if err != nil {
		return CommitOutput{}, err
	}
	author, err := c.Author(ctx)
	if err != nil {
		return CommitOutput{}, err
	}
	committer, err := c.Committer(ctx)
	if err != nil {
		return CommitOutput{}, err
	}
	message, err := c.Message(ctx)
	if err != nil {
		return CommitOutput{}, err
	}

	out := CommitOutput{
		SHA:       sha,
		Tree:      tree.Objectish(),
		Parents:   make([]string, 0, len(parents)),
		Author:    toIdentity(author),
		Committer: toIdentity(committer),
		Message:   message,
	}
	for _, p := range parents {
		out.Parents = append(out.Parents, p.Objectish())
	}
	return out, nil
}
