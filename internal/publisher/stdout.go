package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantronics/arxiv-digest/internal/digest"
)

// StdoutPublisher prints the digest to stdout. Useful for dry runs.
type StdoutPublisher struct {
	includeAbstract bool
}

func NewStdoutPublisher(includeAbstract bool) *StdoutPublisher {
	return &StdoutPublisher{includeAbstract: includeAbstract}
}

func (p *StdoutPublisher) Publish(_ context.Context, d *digest.Digest) error {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Digest for %s (%d papers considered, %d relevant)\n",
		d.Date.Format("2006-01-02"), d.Considered, len(d.Papers))
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println(d.Render(digest.Markdown, p.includeAbstract))
	return nil
}
