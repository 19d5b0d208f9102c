package backfill

import (
	"errors"

	perr "dltally/internal/platform/errors"
)

// Params are the tunables of one distribution
type Params struct {
	Strategy       Strategy
	MinimumGapDays int
	LookbackDays   int
	Fallback       Fallback
}

// DefaultParams mirrors the documented config defaults
func DefaultParams() Params {
	return Params{
		Strategy:       StrategyEven,
		MinimumGapDays: 2,
		LookbackDays:   30,
		Fallback:       FallbackEven,
	}
}

// Validate rejects parameter sets the distributor cannot run
func (p Params) Validate() error {
	if _, ok := strategyNames[p.Strategy]; !ok {
		return ErrUnknownStrategy
	}
	if !p.Strategy.Implemented() {
		return perr.Wrapf(ErrStrategyUnimplemented, perr.ErrorCodeInvalidArgument, "strategy %s", p.Strategy)
	}
	if p.MinimumGapDays < 1 {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "minimum gap days must be >= 1, got %d", p.MinimumGapDays)
	}
	if p.LookbackDays < 1 {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "lookback days must be >= 1, got %d", p.LookbackDays)
	}
	switch p.Fallback {
	case FallbackEven, FallbackFail:
	default:
		return perr.Newf(perr.ErrorCodeInvalidArgument, "unknown pattern fallback %d", p.Fallback)
	}
	return nil
}

// Bypass reports whether a gap of gapDays skips multi-day distribution
func (p Params) Bypass(gapDays int) bool {
	return p.Strategy == StrategyNone || gapDays < p.MinimumGapDays
}

// NeedsBaseline reports whether Distribute reads the baseline at all
func (p Params) NeedsBaseline() bool { return p.Strategy == StrategyPattern }

// Allocation is the per-day result of a distribution
type Allocation struct {
	// Values has one entry per gap day in chronological order
	Values []int64
	// Applied is the strategy that produced Values
	Applied Strategy
	// FallbackCause is set when pattern construction failed and even was used
	FallbackCause error
}

// Distribute spreads total across gapDays days under p
func Distribute(gapDays int, total int64, baseline []int64, p Params) (Allocation, error) {
	if gapDays <= 0 {
		return Allocation{}, ErrNonPositiveGap
	}
	switch p.Strategy {
	case StrategyNone:
		return Allocation{}, ErrNoDistribution
	case StrategyEven:
		vals, err := Even(gapDays, total)
		if err != nil {
			return Allocation{}, err
		}
		return Allocation{Values: vals, Applied: StrategyEven}, nil
	case StrategyPattern:
		vals, err := Pattern(gapDays, total, baseline)
		if err == nil {
			return Allocation{Values: vals, Applied: StrategyPattern}, nil
		}
		if !errors.Is(err, ErrNegativeTotal) && !errors.Is(err, ErrUnusableBaseline) {
			return Allocation{}, err
		}
		if p.Fallback != FallbackEven {
			return Allocation{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "pattern backfill failed with fallback %s", p.Fallback)
		}
		vals, evErr := Even(gapDays, total)
		if evErr != nil {
			return Allocation{}, evErr
		}
		return Allocation{Values: vals, Applied: StrategyEven, FallbackCause: err}, nil
	case StrategyStochastic:
		return Allocation{}, ErrStrategyUnimplemented
	default:
		return Allocation{}, ErrUnknownStrategy
	}
}

// Sum adds up vals
func Sum(vals []int64) int64 {
	var s int64
	for _, v := range vals {
		s += v
	}
	return s
}
