package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestFetchSendsCatchupQuery(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("<html><h2>Mon, 2 Oct 2023</h2></html>"))
	}))
	defer ts.Close()

	f := &CatchupFetcher{
		client:  ts.Client(),
		baseURL: ts.URL,
		archive: "quant-ph",
	}

	day := time.Date(2023, time.October, 2, 0, 0, 0, 0, time.UTC)
	page, err := f.Fetch(context.Background(), day)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if page == "" {
		t.Error("Expected raw page contents")
	}
	if got := gotQuery.Get("archive"); got != "quant-ph" {
		t.Errorf("Expected archive 'quant-ph', got %q", got)
	}
	if got := gotQuery.Get("sday"); got != "2" {
		t.Errorf("Expected sday '2', got %q", got)
	}
	if got := gotQuery.Get("smonth"); got != "10" {
		t.Errorf("Expected smonth '10', got %q", got)
	}
	if got := gotQuery.Get("syear"); got != "2023" {
		t.Errorf("Expected syear '2023', got %q", got)
	}
	if got := gotQuery.Get("method"); got != "with" {
		t.Errorf("Expected method 'with', got %q", got)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := &CatchupFetcher{client: ts.Client(), baseURL: ts.URL, archive: "quant-ph"}

	if _, err := f.Fetch(context.Background(), time.Now()); err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}

func TestFetchContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	f := &CatchupFetcher{client: ts.Client(), baseURL: ts.URL, archive: "quant-ph"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := f.Fetch(ctx, time.Now()); err == nil {
		t.Fatal("Expected error when context deadline is exceeded")
	}
}
