package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultCatchupURL = "https://arxiv.org/catchup"

// CatchupFetcher retrieves the arXiv catchup listing page for one archive.
type CatchupFetcher struct {
	client  *http.Client
	baseURL string
	archive string
}

func NewCatchupFetcher(archive string) *CatchupFetcher {
	return &CatchupFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultCatchupURL,
		archive: archive,
	}
}

// Fetch performs the catchup query for the given day and returns the raw
// HTML document. The page contents are not interpreted here.
func (f *CatchupFetcher) Fetch(ctx context.Context, day time.Time) (string, error) {
	query := url.Values{}
	query.Set("archive", f.archive)
	query.Set("sday", strconv.Itoa(day.Day()))
	query.Set("smonth", strconv.Itoa(int(day.Month())))
	query.Set("syear", strconv.Itoa(day.Year()))
	query.Set("method", "with")

	reqURL := fmt.Sprintf("%s?%s", f.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("catchup: failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catchup: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catchup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("catchup: failed to read response: %w", err)
	}

	return string(body), nil
}
