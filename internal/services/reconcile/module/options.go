package module

import (
	"time"

	"dltally/internal/core/backfill"
	"dltally/internal/platform/config"
	"dltally/internal/platform/net/http/bind"
)

// Options controls the reconcile job. Values are read once from env with the DLT_ prefix
type Options struct {
	Strategy         string        `json:"strategy" validate:"required,oneof=none even pattern stochastic"`
	MinGapDays       int           `json:"min_gap_days" validate:"min=1"`
	LookbackDays     int           `json:"lookback_days" validate:"min=1,max=3650"`
	PatternFallback  string        `json:"pattern_fallback" validate:"required,oneof=even fail"`
	StatementTimeout time.Duration `json:"statement_timeout" validate:"min=0"`
	DryRun           bool          `json:"dry_run"`
}

// FromConfig reads options using the DLT_ prefix. A value that does not
// parse is an error rather than a silent default.
func FromConfig(cfg config.Conf) (Options, error) {
	c := cfg.Prefix("DLT_")
	b := c.Prefix("BACKFILL_")

	var o Options
	var err error
	if o.Strategy, err = b.Enum("STRATEGY", "even", "none", "even", "pattern", "stochastic"); err != nil {
		return o, err
	}
	if o.MinGapDays, err = b.Int("MIN_GAP_DAYS", 2); err != nil {
		return o, err
	}
	if o.LookbackDays, err = b.Int("LOOKBACK_DAYS", 30); err != nil {
		return o, err
	}
	if o.PatternFallback, err = b.Enum("PATTERN_FALLBACK", "even", "even", "fail"); err != nil {
		return o, err
	}
	if o.StatementTimeout, err = c.Duration("STATEMENT_TIMEOUT", 30*time.Second); err != nil {
		return o, err
	}
	o.DryRun, err = c.Bool("DRY_RUN", false)
	return o, err
}

// Load reads and validates the options once, before the job touches
// GitHub or Postgres. dryRun forces a dry run.
func Load(cfg config.Conf, dryRun bool) (Options, error) {
	o, err := FromConfig(cfg)
	if err != nil {
		return o, err
	}
	o.DryRun = o.DryRun || dryRun
	if _, err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

// Validate checks field ranges then maps onto backfill.Params
func (o Options) Validate() (backfill.Params, error) {
	if err := bind.Struct(o); err != nil {
		return backfill.Params{}, err
	}
	strategy, err := backfill.ParseStrategy(o.Strategy)
	if err != nil {
		return backfill.Params{}, err
	}
	fb, err := backfill.ParseFallback(o.PatternFallback)
	if err != nil {
		return backfill.Params{}, err
	}
	p := backfill.Params{
		Strategy:       strategy,
		MinimumGapDays: o.MinGapDays,
		LookbackDays:   o.LookbackDays,
		Fallback:       fb,
	}
	return p, p.Validate()
}
