package fuzzy

import (
	"testing"

	"novelreader/pkg/models"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name  string
		query string
		title string
		want  float64
	}{
		{"exact match", "Mother of Learning", "mother of learning", 1.0},
		{"all words match", "mother learning", "Mother of Learning", 2.0 / 3.0},
		{"partial word match", "mother", "Mother of Learning", 1.0 / 3.0},
		{"no match", "overlord", "Mother of Learning", 0.0},
		{"empty query", "", "Mother of Learning", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, m.Score(tt.query, tt.title), 0.0001)
		})
	}
}

func TestScoreContainmentFallback(t *testing.T) {
	m := NewMatcher()
	// "moth" matches no whole word but is contained in the title
	score := m.Score("moth", "mother")
	require.Greater(t, score, 0.0)
	require.Less(t, score, 1.0)
}

func TestRankResults(t *testing.T) {
	m := NewMatcher()

	results := []models.SearchResult{
		{Title: "Completely Unrelated"},
		{Title: "Mother of Learning"},
		{Title: "Learning Curve"},
	}

	ranked := m.RankResults("mother of learning", results)
	require.Len(t, ranked, 3)
	require.Equal(t, "Mother of Learning", ranked[0].Title)
	require.Equal(t, "Learning Curve", ranked[1].Title)
	require.Equal(t, "Completely Unrelated", ranked[2].Title)
}

func TestRankResultsStableForTies(t *testing.T) {
	m := NewMatcher()

	results := []models.SearchResult{
		{Title: "First"},
		{Title: "Second"},
	}

	ranked := m.RankResults("no overlap at all", results)
	require.Equal(t, results, ranked)
}

func TestRankResultsSmallInputs(t *testing.T) {
	m := NewMatcher()
	require.Empty(t, m.RankResults("q", nil))

	one := []models.SearchResult{{Title: "Only"}}
	require.Equal(t, one, m.RankResults("q", one))
}
