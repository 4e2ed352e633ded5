package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// TreeEntry is one direct child of a tree.
type TreeEntry struct {
	SHA  string
	Mode string
}

// TreeEntries holds the direct children of a tree, partitioned by type.
// Git guarantees a name appears in only one of the maps.
type TreeEntries struct {
	Trees   map[string]TreeEntry
	Blobs   map[string]TreeEntry
	Commits map[string]TreeEntry // submodule gitlinks
}

// ListTreeEntries lists the direct children of the tree objectish resolves to.
// Commit objectish are resolved to their root tree by git.
func (s *Store) ListTreeEntries(ctx context.Context, ref string) (*TreeEntries, error) {
	out, err := s.runner.NewCommand("ls-tree", "-z").AddDynamicArguments(ref).RunStdBytes(ctx, nil)
	if err != nil {
		return nil, err
	}
	return parseTreeEntries(out)
}

// parseTreeEntries parses `git ls-tree -z` output:
// <mode> SP <type> SP <sha> TAB <name> NUL
// Names are raw bytes, never quoted.
func parseTreeEntries(out []byte) (*TreeEntries, error) {
	entries := &TreeEntries{
		Trees:   map[string]TreeEntry{},
		Blobs:   map[string]TreeEntry{},
		Commits: map[string]TreeEntry{},
	}
	for record := range bytes.SplitSeq(out, []byte{0}) {
		if len(record) == 0 {
			continue
		}
		meta, name, ok := bytes.Cut(record, []byte("\t"))
		if !ok {
			return nil, fmt.Errorf("malformed ls-tree entry %q", record)
		}
		fields := strings.Fields(string(meta))
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed ls-tree entry %q", record)
		}
		entry := TreeEntry{Mode: fields[0], SHA: fields[2]}
		switch fields[1] {
		case "tree":
			entries.Trees[string(name)] = entry
		case "blob":
			entries.Blobs[string(name)] = entry
		case "commit":
			entries.Commits[string(name)] = entry
		default:
			return nil, fmt.Errorf("unexpected ls-tree entry type %q", fields[1])
		}
	}
	return entries, nil
}

// FullTree returns every blob below the tree, one `ls-tree -r` line each.
func (s *Store) FullTree(ctx context.Context, ref string) ([]string, error) {
	out, err := s.runner.NewCommand("ls-tree", "-r").AddDynamicArguments(ref).RunStdString(ctx, nil)
	if err != nil {
		return nil, err
	}
	var lines []string
	for line := range strings.SplitSeq(out, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// TreeDepth returns the number of entries in the recursive listing of the tree.
func (s *Store) TreeDepth(ctx context.Context, ref string) (int, error) {
	lines, err := s.FullTree(ctx, ref)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}
