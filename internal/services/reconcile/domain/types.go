// Package domain defines the daily summary types and the reconcile port
package domain

import (
	"time"

	"dltally/internal/core/backfill"
	ptime "dltally/internal/platform/time"
)

// Method records how a summary row was derived
type Method string

const (
	// MethodInitial marks the zero row written when no prior snapshot exists
	MethodInitial Method = "initial"
	// MethodObserved marks a single-day delta between two real snapshots
	MethodObserved Method = "observed"
	// MethodEven marks a row produced by even distribution
	MethodEven Method = "even"
	// MethodPattern marks a row produced by pattern distribution
	MethodPattern Method = "pattern"
)

// MethodFor maps the strategy that produced an allocation onto a Method
func MethodFor(s backfill.Strategy) Method {
	switch s {
	case backfill.StrategyPattern:
		return MethodPattern
	case backfill.StrategyEven:
		return MethodEven
	default:
		return MethodObserved
	}
}

// DailySummaryEntry is one row of the daily series
type DailySummaryEntry struct {
	Day       time.Time `json:"day"`
	Delta     int64     `json:"delta"`
	Method    Method    `json:"method"`
	DerivedAt time.Time `json:"derived_at"`
}

// Run describes one backfill: the days (Start, End] share Total
type Run struct {
	Start   time.Time
	End     time.Time
	GapDays int
	Total   int64
	Params  backfill.Params
}

// NewRun builds the run covering (last, today]
func NewRun(last, today time.Time, total int64, p backfill.Params) Run {
	return Run{
		Start:   ptime.Day(last),
		End:     ptime.Day(today),
		GapDays: ptime.DaysBetween(last, today),
		Total:   total,
		Params:  p,
	}
}

// Days lists the gap days in chronological order
func (r Run) Days() []time.Time {
	if r.GapDays <= 0 {
		return nil
	}
	out := make([]time.Time, r.GapDays)
	for i := range out {
		out[i] = ptime.AddDays(r.Start, i+1)
	}
	return out
}

// Entries pairs values with the run's days; len(vals) must equal GapDays
func (r Run) Entries(vals []int64, m Method) []DailySummaryEntry {
	days := r.Days()
	out := make([]DailySummaryEntry, len(days))
	for i, d := range days {
		out[i] = DailySummaryEntry{Day: d, Delta: vals[i], Method: m}
	}
	return out
}

// Result reports what one reconcile did
type Result struct {
	Day          time.Time
	LastSnapshot *time.Time
	GapDays      int
	Total        int64
	Method       Method
	Entries      []DailySummaryEntry
	// Written counts rows inserted or changed; identical re-writes are not counted
	Written       int64
	DryRun        bool
	FallbackCause error
}
