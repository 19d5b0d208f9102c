// Package service contains summary read workflows
package service

import (
	"context"
	"time"

	"dltally/internal/modkit/repokit"
	perr "dltally/internal/platform/errors"
	ptime "dltally/internal/platform/time"
	"dltally/internal/services/api/summary/domain"
	"dltally/internal/services/api/summary/repo"
)

// DefaultMaxWindowDays bounds a single window query
const DefaultMaxWindowDays = 366

// Service defines the summary service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the summary service
type Svc struct {
	Repo    repo.Repo
	maxDays int
}

// New constructs a summary service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], maxDays int) *Svc {
	if db == nil {
		panic("summary.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("summary.Service requires a non nil Repo binder")
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxWindowDays
	}
	return &Svc{Repo: binder.Bind(db), maxDays: maxDays}
}

// window parses and bounds the inclusive day range
func (s *Svc) window(in domain.WindowInput) (from, to time.Time, days int, err error) {
	if from, err = ptime.ParseDay(in.From); err != nil {
		return from, to, 0, perr.WithField(err, "from")
	}
	if to, err = ptime.ParseDay(in.To); err != nil {
		return from, to, 0, perr.WithField(err, "to")
	}
	if to.Before(from) {
		return from, to, 0, perr.WithField(perr.InvalidArgf("from must not be after to"), "from")
	}
	days = ptime.DaysBetween(from, to) + 1
	if days > s.maxDays {
		return from, to, 0, perr.WithField(perr.InvalidArgf("window spans %d days, max %d", days, s.maxDays), "to")
	}
	return from, to, days, nil
}

// Window returns the daily series in [from, to], oldest first
func (s *Svc) Window(ctx context.Context, in domain.WindowInput) ([]domain.Row, error) {
	from, to, _, err := s.window(in)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Window(ctx, from, to)
	if err != nil {
		return nil, perr.FromPostgres(err, "summary window")
	}
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Row{
			Day:       ptime.FormatDay(r.Day),
			Delta:     r.Delta,
			Method:    r.Method,
			DerivedAt: r.DerivedAt.UTC(),
		})
	}
	return out, nil
}

// Totals sums the window and breaks it down by derivation method
func (s *Svc) Totals(ctx context.Context, in domain.WindowInput) (domain.Totals, error) {
	from, to, days, err := s.window(in)
	if err != nil {
		return domain.Totals{}, err
	}
	rows, err := s.Repo.ByMethod(ctx, from, to)
	if err != nil {
		return domain.Totals{}, perr.FromPostgres(err, "summary totals")
	}
	out := domain.Totals{
		From:     ptime.FormatDay(from),
		To:       ptime.FormatDay(to),
		Days:     days,
		ByMethod: make([]domain.MethodTotal, 0, len(rows)),
	}
	var present int64
	for _, r := range rows {
		out.Delta += r.Delta
		present += r.Days
		out.ByMethod = append(out.ByMethod, domain.MethodTotal{Method: r.Method, Days: r.Days, Delta: r.Delta})
	}
	out.Missing = days - int(present)
	return out, nil
}
