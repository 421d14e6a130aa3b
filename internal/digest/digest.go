package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantronics/arxiv-digest/internal/scoring"
)

// Style selects the markup flavor of a rendered digest.
type Style int

const (
	// Markdown is the generic flavor written to the digest file.
	Markdown Style = iota
	// Mrkdwn is the Slack message flavor.
	Mrkdwn
)

const (
	header    = "📰 *Today's Relevant Papers*"
	separator = "\n\n-----------------------\n\n"
	absURL    = "https://arxiv.org/abs/"

	// Author lists longer than maxListedAuthors render as the first
	// keptAuthors names, an ellipsis marker, and the final author.
	maxListedAuthors = 10
	keptAuthors      = 9
	ellipsisMarker   = "..."
)

// Digest is the day's collection of relevant papers.
type Digest struct {
	Date       time.Time
	Considered int
	Papers     []scoring.ScoredPaper
}

func New(date time.Time) *Digest {
	return &Digest{Date: date}
}

// Add appends a paper to the digest body. Only relevant papers belong here;
// Considered tracks the full count separately.
func (d *Digest) Add(p scoring.ScoredPaper) {
	d.Papers = append(d.Papers, p)
}

// Render assembles the full digest: the fixed header, then each entry,
// joined by the separator rule. An empty digest is just the header.
func (d *Digest) Render(style Style, includeAbstract bool) string {
	parts := make([]string, 0, len(d.Papers)+1)
	parts = append(parts, header)
	for _, p := range d.Papers {
		parts = append(parts, RenderEntry(p, style, includeAbstract))
	}
	return strings.Join(parts, separator)
}

// RenderEntry renders one scored paper: a linked title line, the authors
// line, the matched-keywords line, and optionally the abstract.
func RenderEntry(p scoring.ScoredPaper, style Style, includeAbstract bool) string {
	authors := strings.Join(displayAuthors(p.Authors), ", ")

	// The two match lists are always joined with a comma, even when one
	// side is empty.
	matched := strings.Join(p.TitleMatches, ", ") + ", " + strings.Join(p.AuthorMatches, ", ")

	var blocks []string
	switch style {
	case Mrkdwn:
		blocks = []string{
			fmt.Sprintf("<%s%s|*%s*>", absURL, p.Reference, p.Title),
			"Authors: " + authors,
			"🗝️ _Keywords: " + matched + "_",
		}
	default:
		blocks = []string{
			fmt.Sprintf("## **[%s](%s%s)**", p.Title, absURL, p.Reference),
			"### _Authors: " + authors + "_",
			"#### 🗝️**Keywords**: " + matched,
		}
	}

	if includeAbstract {
		blocks = append(blocks, p.Abstract)
	}

	return strings.Join(blocks, "\n\n")
}

func displayAuthors(authors []string) []string {
	if len(authors) <= maxListedAuthors {
		return authors
	}
	out := make([]string, 0, keptAuthors+2)
	out = append(out, authors[:keptAuthors]...)
	out = append(out, ellipsisMarker, authors[len(authors)-1])
	return out
}
