package scoring

import (
	"sort"
	"strings"

	"github.com/quantronics/arxiv-digest/internal/keywords"
	"github.com/quantronics/arxiv-digest/internal/listing"
)

// ScoredPaper is a PaperRecord together with its relevance assessment.
type ScoredPaper struct {
	listing.PaperRecord

	// TitleMatches and AuthorMatches are sorted so that scoring the same
	// inputs always yields the same output.
	TitleMatches  []string
	AuthorMatches []string
	Weight        int
	Relevant      bool
}

// Score assesses one paper against the weighted tables. Keywords are
// matched against the title, author entries against the space-joined
// author list; matching is case-insensitive substring containment and
// each entry counts once. A paper is relevant when the summed weight
// reaches the threshold (inclusive). Pure function, no I/O.
func Score(p listing.PaperRecord, kws, authors keywords.Table, threshold int) ScoredPaper {
	title := strings.ToLower(p.Title)
	authorLine := strings.ToLower(strings.Join(p.Authors, " "))

	titleMatches := matchEntries(title, kws)
	authorMatches := matchEntries(authorLine, authors)

	weight := 0
	for _, kw := range titleMatches {
		weight += kws[kw]
	}
	for _, a := range authorMatches {
		weight += authors[a]
	}

	return ScoredPaper{
		PaperRecord:   p,
		TitleMatches:  titleMatches,
		AuthorMatches: authorMatches,
		Weight:        weight,
		Relevant:      weight >= threshold,
	}
}

func matchEntries(haystack string, table keywords.Table) []string {
	matches := make([]string, 0, len(table))
	for entry := range table {
		if strings.Contains(haystack, strings.ToLower(entry)) {
			matches = append(matches, entry)
		}
	}
	sort.Strings(matches)
	return matches
}
