package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quantronics/arxiv-digest/internal/config"
	"github.com/quantronics/arxiv-digest/internal/keywords"
	"github.com/quantronics/arxiv-digest/internal/publisher"
	"github.com/quantronics/arxiv-digest/internal/runner"
	"github.com/quantronics/arxiv-digest/internal/storage"
)

const catchupPage = `<html><body>
<h2>Tue, 14 Feb 2023</h2>
<dl>
<dt><span class="list-identifier"><a href="/abs/2302.01234">arXiv:2302.01234</a></span></dt>
<dd><div class="meta">
<div class="list-title mathjax"><span class="descriptor">Title:</span> Entangled Qubit States</div>
<div class="list-authors"><a href="/a/doe_j_1">Jane Doe</a></div>
<p class="mathjax">We study entangled qubit states.</p>
</div></dd>
</dl>
</body></html>`

// pageFetcher serves a canned page; the real CatchupFetcher is covered in
// its own package tests.
type pageFetcher struct {
	page string
}

func (f *pageFetcher) Fetch(ctx context.Context, day time.Time) (string, error) {
	return f.page, nil
}

func TestConfigToRunnerWiring(t *testing.T) {
	dir := t.TempDir()

	configContent := `
archive: quant-ph
threshold: 3
post_hour: "09:00"
publisher: stdout
keywords_file: ` + filepath.Join(dir, "keywords.yaml") + `
output_dir: ` + filepath.Join(dir, "summaries") + `
`
	configFile := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	keywordsContent := "keywords:\n  qubit: 3\nauthors: {}\n"
	if err := os.WriteFile(filepath.Join(dir, "keywords.yaml"), []byte(keywordsContent), 0o644); err != nil {
		t.Fatalf("Failed to write keywords: %v", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.CronSpec() != "0 9 * * *" {
		t.Errorf("CronSpec = %q, want '0 9 * * *'", cfg.CronSpec())
	}

	r := runner.New(
		keywords.NewStore(cfg.KeywordsFile),
		&pageFetcher{page: catchupPage},
		storage.New(cfg.OutputDir),
		[]publisher.Publisher{publisher.NewStdoutPublisher(cfg.IncludeAbstract)},
		cfg.Threshold,
		cfg.IncludeAbstract,
		cfg.SkipWeekdays(),
	)

	tuesday := time.Date(2023, time.February, 14, 9, 0, 0, 0, time.UTC)
	res, err := r.Run(context.Background(), tuesday)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Outcome != runner.Published {
		t.Fatalf("Outcome = %v, want Published", res.Outcome)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "14_2_2023.md"))
	if err != nil {
		t.Fatalf("Expected digest file: %v", err)
	}
	if !strings.Contains(string(data), "Entangled Qubit States") {
		t.Errorf("Digest missing expected paper, got:\n%s", data)
	}

	// The keyword backup was refreshed by the run.
	if _, err := os.Stat(filepath.Join(dir, "keywords.yaml.backup")); err != nil {
		t.Errorf("Expected keyword backup after the run: %v", err)
	}
}

func TestSlackTokenEnvReference(t *testing.T) {
	dir := t.TempDir()
	configContent := `
archive: quant-ph
slack_channel: C0123456
slack_token: ${SLACK_BOT_TOKEN_UNSET_FOR_TEST}
`
	configFile := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	// Unresolved references stay literal, which is visible in logs at the
	// first failed post.
	if cfg.SlackToken != "${SLACK_BOT_TOKEN_UNSET_FOR_TEST}" {
		t.Errorf("Expected unresolved env reference to stay literal, got %q", cfg.SlackToken)
	}

	t.Setenv("SLACK_BOT_TOKEN_UNSET_FOR_TEST", "xoxb-now-set")
	cfg, err = config.Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SlackToken != "xoxb-now-set" {
		t.Errorf("Expected token from environment, got %q", cfg.SlackToken)
	}
}
