package publisher

import (
	"context"

	"github.com/quantronics/arxiv-digest/internal/digest"
)

// Publisher delivers a digest to some output destination.
type Publisher interface {
	Publish(ctx context.Context, d *digest.Digest) error
}
