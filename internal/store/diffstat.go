package store

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// EmptyTreeSHA is the hash of git's empty tree object. Diffing a root
// commit starts from it.
const EmptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// DiffStat is the change summary between two trees.
type DiffStat struct {
	Files      int `json:"files"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// diffStatLineRegex matches the summary line of git diff --shortstat
// Example: " 3 files changed, 45 insertions(+), 12 deletions(-)"
var diffStatLineRegex = regexp.MustCompile(`(\d+)\s+files?\s+changed(?:,\s+(\d+)\s+insertions?\(\+\))?(?:,\s+(\d+)\s+deletions?\(-\))?`)

// DiffStat returns the change summary from one objectish to another. An
// empty from diffs from the empty tree.
func (s *Store) DiffStat(ctx context.Context, from, to string) (DiffStat, error) {
	if from == "" {
		from = EmptyTreeSHA
	}
	out, err := s.runner.NewCommand("diff", "--shortstat", "--no-color", "--no-ext-diff").
		AddDynamicArguments(from, to).
		AddDashesAndList().
		RunStdString(ctx, nil)
	if err != nil {
		return DiffStat{}, err
	}
	return parseDiffStat(out), nil
}

// parseDiffStat extracts file, insertion, and deletion counts from the last
// non-empty line of git diff --stat or --shortstat output.
func parseDiffStat(out string) DiffStat {
	summaryLine := findSummaryLine(out)
	if summaryLine == "" {
		return DiffStat{}
	}

	matches := diffStatLineRegex.FindStringSubmatch(summaryLine)
	if matches == nil {
		return DiffStat{}
	}
	return DiffStat{
		Files:      parseMatchInt(matches, 1),
		Insertions: parseMatchInt(matches, 2),
		Deletions:  parseMatchInt(matches, 3),
	}
}

// findSummaryLine finds the last non-empty line in the diff stat output.
func findSummaryLine(out string) string {
	lines := strings.Split(out, "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		line := strings.TrimSpace(lines[idx])
		if line != "" {
			return line
		}
	}
	return ""
}

// parseMatchInt extracts an int from a regex match group, returning 0 on error.
func parseMatchInt(matches []string, idx int) int {
	if idx >= len(matches) || matches[idx] == "" {
		return 0
	}
	val, err := strconv.Atoi(matches[idx])
	if err != nil {
		return 0
	}
	return val
}
