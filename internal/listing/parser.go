package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoListing is returned when the fetched page has no recognizable
// listing section. Holiday placeholder pages look like this; the caller
// is expected to archive the raw page and skip the run.
var ErrNoListing = errors.New("listing: no listing section found")

// FieldError reports a listing entry that lacks a required field.
// Entry is the arXiv reference when it could be extracted, otherwise
// the entry's position in the listing.
type FieldError struct {
	Entry string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("listing: entry %s: missing %s", e.Entry, e.Field)
}

// PaperRecord is one catalog entry, immutable once constructed.
type PaperRecord struct {
	Reference string
	Title     string
	Authors   []string
	Abstract  string
}

const (
	abstractPathPrefix = "/abs/"
	titlePrefix        = "Title:"
)

// Parse extracts the paper records for the target day from a raw catchup
// page. The listing scope is the definition list that follows the first
// top-level heading; each dt/dd pair is one paper.
func Parse(rawPage string) ([]PaperRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawPage))
	if err != nil {
		return nil, fmt.Errorf("listing: parse html: %w", err)
	}

	heading := doc.Find("h2").First()
	if heading.Length() == 0 {
		return nil, ErrNoListing
	}
	list := heading.NextAllFiltered("dl").First()
	if list.Length() == 0 {
		return nil, ErrNoListing
	}

	identifiers := list.Find("dt")
	metas := list.Find("dd")

	n := min(identifiers.Length(), metas.Length())
	records := make([]PaperRecord, 0, n)
	for i := 0; i < n; i++ {
		record, err := parseEntry(i, identifiers.Eq(i), metas.Eq(i))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func parseEntry(index int, dt, dd *goquery.Selection) (PaperRecord, error) {
	ref := parseReference(dt)
	if ref == "" {
		return PaperRecord{}, &FieldError{Entry: fmt.Sprintf("#%d", index+1), Field: "identifier"}
	}

	title := strings.TrimSpace(dd.Find("div.list-title").First().Text())
	title = strings.TrimSpace(strings.TrimPrefix(title, titlePrefix))
	if title == "" {
		return PaperRecord{}, &FieldError{Entry: ref, Field: "title"}
	}

	var authors []string
	dd.Find("div.list-authors a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) == 0 {
		return PaperRecord{}, &FieldError{Entry: ref, Field: "authors"}
	}

	abstract := strings.TrimSpace(dd.Find("p.mathjax").First().Text())
	if abstract == "" {
		return PaperRecord{}, &FieldError{Entry: ref, Field: "abstract"}
	}

	return PaperRecord{
		Reference: ref,
		Title:     title,
		Authors:   authors,
		Abstract:  abstract,
	}, nil
}

// parseReference pulls the arXiv reference out of the abstract link in the
// identifier span. The pdf/format links in the same span are skipped.
func parseReference(dt *goquery.Selection) string {
	var ref string
	dt.Find("span.list-identifier a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if ok && strings.HasPrefix(href, abstractPathPrefix) {
			ref = strings.TrimPrefix(href, abstractPathPrefix)
			return false
		}
		return true
	})
	return ref
}
