package fetcher

import (
	"context"
	"time"
)

// Fetcher retrieves the raw daily listing page for a given day.
type Fetcher interface {
	Fetch(ctx context.Context, day time.Time) (string, error)
}
