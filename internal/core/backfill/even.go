package backfill

// Even spreads total over gapDays days. Every day gets floor(total/gapDays)
// and the first total mod gapDays days get one more, so the values are all
// in {base, base+1} and sum to total exactly.
//
// Division floors toward negative infinity: a negative total still sums
// exactly and keeps the {base, base+1} shape, with base < 0.
func Even(gapDays int, total int64) ([]int64, error) {
	if gapDays <= 0 {
		return nil, ErrNonPositiveGap
	}
	n := int64(gapDays)
	base, rem := total/n, total%n
	if rem < 0 {
		base--
		rem += n
	}
	out := make([]int64, gapDays)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out, nil
}
