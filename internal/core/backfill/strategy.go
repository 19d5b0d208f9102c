// Package backfill apportions an aggregate counter delta observed across a
// snapshot gap into per-day integer values
package backfill

import (
	"strings"

	perr "dltally/internal/platform/errors"
)

// Strategy selects how a gap total is spread over its days
type Strategy uint8

const (
	// StrategyNone skips multi-day distribution entirely
	StrategyNone Strategy = iota + 1
	// StrategyEven spreads the total uniformly (largest remainder, earliest days first)
	StrategyEven
	// StrategyPattern shapes the total after a recent baseline of daily deltas
	StrategyPattern
	// StrategyStochastic is declared by readers of the summary table but has no
	// defined semantics yet; it is always rejected
	StrategyStochastic
)

var strategyNames = map[Strategy]string{
	StrategyNone:       "none",
	StrategyEven:       "even",
	StrategyPattern:    "pattern",
	StrategyStochastic: "stochastic",
}

// String returns the config spelling of s
func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return "unknown"
}

// Implemented reports whether s can be used to run a distribution
func (s Strategy) Implemented() bool {
	switch s {
	case StrategyNone, StrategyEven, StrategyPattern:
		return true
	case StrategyStochastic:
		return false
	default:
		return false
	}
}

// ParseStrategy maps a config value onto a Strategy (case insensitive)
func ParseStrategy(v string) (Strategy, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for s, n := range strategyNames {
		if n == v {
			return s, nil
		}
	}
	return 0, perr.Wrapf(ErrUnknownStrategy, perr.ErrorCodeInvalidArgument, "strategy %q", v)
}

// Fallback decides what happens when pattern construction fails
type Fallback uint8

const (
	// FallbackEven degrades to even distribution
	FallbackEven Fallback = iota + 1
	// FallbackFail aborts the run
	FallbackFail
)

// String returns the config spelling of f
func (f Fallback) String() string {
	switch f {
	case FallbackEven:
		return "even"
	case FallbackFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseFallback maps a config value onto a Fallback (case insensitive)
func ParseFallback(v string) (Fallback, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "even":
		return FallbackEven, nil
	case "fail":
		return FallbackFail, nil
	default:
		return 0, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown pattern fallback %q", v)
	}
}
