package module

import (
	"time"

	"dltally/internal/platform/config"
)

// Options controls snapshot capture. Values are read from env with the DLT_ prefix
type Options struct {
	Repos      []string
	SkipDrafts bool

	// GitHub client knobs
	BaseURL    string
	TokensCSV  string
	RatePerSec float64
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// FromConfig reads options using the DLT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DLT_")
	tokens := c.MayString("GITHUB_TOKENS", "")
	if tokens == "" {
		tokens = c.MayString("GITHUB_TOKEN", "")
	}
	return Options{
		Repos:      c.MayCSV("GITHUB_REPOS", nil),
		SkipDrafts: c.MayBool("CAPTURE_SKIP_DRAFTS", true),
		BaseURL:    c.MayString("GITHUB_BASE_URL", ""),
		TokensCSV:  tokens,
		RatePerSec: c.MayFloat64("GITHUB_RPS", 5),
		Timeout:    c.MayDuration("GITHUB_TIMEOUT", 10*time.Second),
		MaxRetries: c.MayInt("GITHUB_MAX_RETRIES", 5),
		RetryBase:  c.MayDuration("GITHUB_RETRY_BASE", 500*time.Millisecond),
	}
}
