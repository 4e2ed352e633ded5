// Package object models the objects of a git repository: blobs, trees,
// commits and tags.
//
// Objects are cheap to construct and never touch the repository in their
// constructors. Attributes are read from a Store the first time they are
// asked for and remembered afterwards; a read that fails is not remembered,
// so asking again retries it.
//
//	st, err := store.Open(ctx, ".")
//	obj, err := object.Lookup(ctx, st, "HEAD")
//	if c, ok := obj.(*object.Commit); ok {
//		msg, err := c.Message(ctx)
//	}
//
// Every object is safe for concurrent use. Objects created from the same
// objectish do not share state; each instance loads its own attributes.
package object
