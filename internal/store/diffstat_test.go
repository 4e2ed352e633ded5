package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiffStat(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want DiffStat
	}{
		{"empty", "", DiffStat{}},
		{"full", " 3 files changed, 45 insertions(+), 12 deletions(-)\n", DiffStat{Files: 3, Insertions: 45, Deletions: 12}},
		{"insertions only", " 1 file changed, 1 insertion(+)\n", DiffStat{Files: 1, Insertions: 1}},
		{"deletions only", " 2 files changed, 7 deletions(-)\n", DiffStat{Files: 2, Deletions: 7}},
		{
			"stat output",
			" README.md | 2 +-\n src/a.go  | 1 +\n 2 files changed, 2 insertions(+), 1 deletion(-)\n\n",
			DiffStat{Files: 2, Insertions: 2, Deletions: 1},
		},
		{"no summary", "garbage\n", DiffStat{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDiffStat(tt.out))
		})
	}
}

func TestDiffStat(t *testing.T) {
	repo := newTestRepo(t)
	ctx := t.Context()

	stat, err := repo.store.DiffStat(ctx, repo.first, repo.second)
	require.NoError(t, err)
	assert.Equal(t, DiffStat{Files: 2, Insertions: 4}, stat)

	stat, err = repo.store.DiffStat(ctx, "", repo.first)
	require.NoError(t, err)
	assert.Equal(t, DiffStat{Files: 2, Insertions: 4}, stat)

	stat, err = repo.store.DiffStat(ctx, repo.second, repo.second)
	require.NoError(t, err)
	assert.Equal(t, DiffStat{}, stat)
}
