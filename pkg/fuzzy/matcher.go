// Package fuzzy provides fuzzy matching functionality for ranking search results
package fuzzy

import (
	"sort"
	"strings"

	"novelreader/pkg/models"
)

// Matcher provides fuzzy matching functionality
type Matcher struct{}

// NewMatcher creates a new fuzzy matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// RankResults orders search results by how well their title matches the
// query, best match first. Results with no overlap keep their original
// relative order after all scored results.
func (m *Matcher) RankResults(query string, results []models.SearchResult) []models.SearchResult {
	if len(results) <= 1 {
		return results
	}

	type scoredResult struct {
		result models.SearchResult
		score  float64
		index  int
	}

	scored := make([]scoredResult, 0, len(results))
	for i, result := range results {
		scored = append(scored, scoredResult{
			result: result,
			score:  m.Score(query, result.Title),
			index:  i,
		})
	}

	// Sort by score descending, stable on the original order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]models.SearchResult, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.result)
	}
	return out
}

// Score calculates the fuzzy match score between a query and a title
func (m *Matcher) Score(query, title string) float64 {
	query = strings.ToLower(query)
	title = strings.ToLower(title)

	if query == title {
		return 1.0
	}

	titleWords := splitWords(title)
	queryWords := splitWords(query)

	if len(queryWords) == 0 || len(titleWords) == 0 {
		return 0.0
	}

	// Count exact word matches
	exactMatches := 0
	for _, qWord := range queryWords {
		for _, tWord := range titleWords {
			if qWord == tWord {
				exactMatches++
				break
			}
		}
	}

	if exactMatches > 0 {
		return float64(exactMatches) / float64(len(titleWords))
	}

	// Fallback to simple containment score
	if strings.Contains(title, query) {
		return float64(len(query)) / float64(len(title))
	}

	return 0.0
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' ' || r == ':'
	})
}
