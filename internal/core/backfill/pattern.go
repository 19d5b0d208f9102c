package backfill

import (
	"cmp"
	"math/bits"
	"slices"
)

// PatternSeries cycles baseline until it covers gapDays entries.
// Returns nil for an empty baseline.
func PatternSeries(baseline []int64, gapDays int) []int64 {
	if len(baseline) == 0 || gapDays <= 0 {
		return nil
	}
	out := make([]int64, gapDays)
	for i := range out {
		out[i] = baseline[i%len(baseline)]
	}
	return out
}

// Pattern scales the cycled baseline to sum exactly to total.
//
// Negative baseline entries weigh zero. Each day gets floor(total*w/W) and
// the leftover units go one per day to the largest fractional remainders,
// earliest day first on ties.
func Pattern(gapDays int, total int64, baseline []int64) ([]int64, error) {
	if gapDays <= 0 {
		return nil, ErrNonPositiveGap
	}
	if total < 0 {
		return nil, ErrNegativeTotal
	}
	if total == 0 {
		return make([]int64, gapDays), nil
	}

	series := PatternSeries(baseline, gapDays)
	if series == nil {
		return nil, ErrUnusableBaseline
	}
	weights := make([]uint64, gapDays)
	var sum uint64
	for i, v := range series {
		if v <= 0 {
			continue
		}
		weights[i] = uint64(v)
		var carry uint64
		sum, carry = bits.Add64(sum, weights[i], 0)
		if carry != 0 {
			return nil, ErrUnusableBaseline
		}
	}
	if sum == 0 {
		return nil, ErrUnusableBaseline
	}
	return largestRemainder(uint64(total), weights, sum), nil
}

// largestRemainder apportions total over weights (summing to sum) using exact
// 128-bit intermediate products
func largestRemainder(total uint64, weights []uint64, sum uint64) []int64 {
	out := make([]int64, len(weights))
	rems := make([]uint64, len(weights))
	var assigned uint64
	for i, w := range weights {
		hi, lo := bits.Mul64(total, w)
		q, r := bits.Div64(hi, lo, sum)
		out[i] = int64(q)
		rems[i] = r
		assigned += q
	}

	left := total - assigned
	if left == 0 {
		return out
	}
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(rems[b], rems[a])
	})
	for _, i := range order[:min(left, uint64(len(order)))] {
		out[i]++
	}
	return out
}
