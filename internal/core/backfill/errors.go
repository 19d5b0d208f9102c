package backfill

import perr "dltally/internal/platform/errors"

var (
	// ErrNonPositiveGap means the last snapshot is not strictly before the run day
	ErrNonPositiveGap = perr.New(perr.ErrorCodeInvalidArgument, "gap must be at least one day")

	// ErrNegativeTotal means a negative total was handed to pattern scaling
	ErrNegativeTotal = perr.New(perr.ErrorCodeInvalidArgument, "pattern scaling requires a non-negative total")

	// ErrUnusableBaseline means the baseline is empty or carries no positive mass
	ErrUnusableBaseline = perr.New(perr.ErrorCodeInvalidArgument, "baseline has no positive mass")

	// ErrUnknownStrategy is returned for strategy values outside the enum
	ErrUnknownStrategy = perr.New(perr.ErrorCodeInvalidArgument, "unknown backfill strategy")

	// ErrStrategyUnimplemented is returned for declared strategies without semantics
	ErrStrategyUnimplemented = perr.New(perr.ErrorCodeInvalidArgument, "backfill strategy not implemented")

	// ErrNoDistribution is returned when Distribute is asked to run StrategyNone
	ErrNoDistribution = perr.New(perr.ErrorCodeInvalidArgument, "strategy none does not distribute")
)
