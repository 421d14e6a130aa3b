package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Archive         string   `yaml:"archive"`
	Threshold       int      `yaml:"threshold"`
	PostHour        string   `yaml:"post_hour"`
	IncludeAbstract bool     `yaml:"include_abstract"`
	Publisher       string   `yaml:"publisher"`
	SlackChannel    string   `yaml:"slack_channel"`
	SlackToken      string   `yaml:"slack_token"`
	KeywordsFile    string   `yaml:"keywords_file"`
	LoggingFile     string   `yaml:"logging_file"`
	OutputDir       string   `yaml:"output_dir"`
	SkipDays        []string `yaml:"skip_days"`
	RunOnStart      bool     `yaml:"run_on_start"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.PostHour == "" {
		cfg.PostHour = "09:00"
	}
	if cfg.Publisher == "" {
		cfg.Publisher = "slack"
	}
	if cfg.KeywordsFile == "" {
		cfg.KeywordsFile = "keywords.yaml"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "summaries"
	}
	if cfg.SkipDays == nil {
		cfg.SkipDays = []string{"saturday", "sunday"}
	}
}

func validate(cfg *Config) error {
	if cfg.Archive == "" {
		return fmt.Errorf("config: archive is required")
	}
	if _, err := time.Parse("15:04", cfg.PostHour); err != nil {
		return fmt.Errorf("config: post_hour %q is not a valid HH:MM time", cfg.PostHour)
	}
	switch cfg.Publisher {
	case "slack":
		if cfg.SlackChannel == "" {
			return fmt.Errorf("config: slack_channel is required for slack publisher")
		}
		if cfg.SlackToken == "" {
			return fmt.Errorf("config: slack_token is required for slack publisher (set SLACK_BOT_TOKEN env var)")
		}
	case "stdout":
	default:
		return fmt.Errorf("config: unsupported publisher type %q (supported: slack, stdout)", cfg.Publisher)
	}
	for _, day := range cfg.SkipDays {
		if _, ok := weekdayNames[strings.ToLower(day)]; !ok {
			return fmt.Errorf("config: skip_days entry %q is not a weekday name", day)
		}
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CronSpec translates post_hour into a daily cron expression.
func (c *Config) CronSpec() string {
	t, _ := time.Parse("15:04", c.PostHour)
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
}

// SkipWeekdays returns the set of weekdays on which no listing is published.
func (c *Config) SkipWeekdays() map[time.Weekday]bool {
	out := make(map[time.Weekday]bool, len(c.SkipDays))
	for _, day := range c.SkipDays {
		out[weekdayNames[strings.ToLower(day)]] = true
	}
	return out
}
