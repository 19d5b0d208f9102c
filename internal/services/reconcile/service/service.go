// Package service reconciles snapshot gaps into the daily summary series
package service

import (
	"context"
	"errors"
	"time"

	"dltally/internal/core/backfill"
	"dltally/internal/modkit/repokit"
	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"
	ptime "dltally/internal/platform/time"
	"dltally/internal/services/reconcile/domain"
	"dltally/internal/services/reconcile/repo"

	"github.com/coder/quartz"
)

// errDryRun rolls the transaction back after the plan is computed
var errDryRun = errors.New("reconcile: dry run")

// Config for the reconcile service
type Config struct {
	Params backfill.Params
	DryRun bool
	// StatementTimeout bounds each statement of the run; 0 disables
	StatementTimeout time.Duration
}

// Service implements domain.ReconcilePort
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	clock  quartz.Clock
	cfg    Config
}

// New constructs a reconcile service; params are validated up front
func New(db repokit.TxRunner, b repokit.Binder[repo.Repo], clock quartz.Clock, cfg Config) (*Service, error) {
	if db == nil || b == nil {
		return nil, perr.InvalidArgf("reconcile service requires a TxRunner and a Binder")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		db:     repokit.WithBeginHooks(db, repokit.StatementTimeout(cfg.StatementTimeout)),
		binder: b,
		clock:  clock,
		cfg:    cfg,
	}, nil
}

// Reconcile implements domain.ReconcilePort. Reads and writes share one
// transaction: either every derived day is written or none is.
func (s *Service) Reconcile(ctx context.Context, today time.Time) (domain.Result, error) {
	today = ptime.Day(today)
	log := logger.C(ctx)
	res := domain.Result{Day: today, DryRun: s.cfg.DryRun}

	err := repokit.TxBind(ctx, s.db, s.binder, func(r repo.Repo) error {
		if err := s.plan(ctx, r, &res); err != nil {
			return err
		}
		now := s.clock.Now().UTC()
		for i := range res.Entries {
			res.Entries[i].DerivedAt = now
		}

		if s.cfg.DryRun {
			for _, e := range res.Entries {
				log.Info().Str("day", ptime.FormatDay(e.Day)).Int64("delta", e.Delta).Str("method", string(e.Method)).Msg("dry run row")
			}
			return errDryRun
		}

		n, err := r.UpsertSummaries(ctx, res.Entries)
		if err != nil {
			return perr.FromPostgresf(err, "upsert %d summary rows", len(res.Entries))
		}
		res.Written = n
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		return res, err
	}

	ev := log.Info().
		Int("gap_days", res.GapDays).
		Int64("total", res.Total).
		Str("method", string(res.Method)).
		Int("rows", len(res.Entries)).
		Int64("written", res.Written).
		Bool("dry_run", res.DryRun)
	if res.LastSnapshot != nil {
		ev = ev.Str("last_snapshot", ptime.FormatDay(*res.LastSnapshot))
	}
	ev.Msg("reconcile complete")
	return res, nil
}

// plan fills res with the entries for today, reading through r
func (s *Service) plan(ctx context.Context, r repo.Repo, res *domain.Result) error {
	today := res.Day
	p := s.cfg.Params

	last, ok, err := r.LastSnapshotBefore(ctx, today)
	if err != nil {
		return perr.FromPostgres(err, "last snapshot before run day")
	}
	if !ok {
		res.Method = domain.MethodInitial
		res.Entries = []domain.DailySummaryEntry{{Day: today, Delta: 0, Method: domain.MethodInitial}}
		logger.C(ctx).Info().Msg("no prior snapshot; initializing series")
		return nil
	}
	res.LastSnapshot = ptime.Ptr(last)

	run := domain.NewRun(last, today, 0, p)
	res.GapDays = run.GapDays
	if run.GapDays <= 0 {
		return perr.Wrapf(backfill.ErrNonPositiveGap, perr.ErrorCodeInvalidArgument,
			"last snapshot %s is not before %s", ptime.FormatDay(last), ptime.FormatDay(today))
	}

	if p.Bypass(run.GapDays) {
		delta, err := r.Delta(ctx, ptime.AddDays(today, -1), today)
		if err != nil {
			return perr.FromPostgres(err, "observed delta")
		}
		res.Total = delta
		res.Method = domain.MethodObserved
		res.Entries = []domain.DailySummaryEntry{{Day: today, Delta: delta, Method: domain.MethodObserved}}
		return nil
	}

	run.Total, err = r.Delta(ctx, last, today)
	if err != nil {
		return perr.FromPostgres(err, "gap delta")
	}
	res.Total = run.Total

	var baseline []int64
	if p.NeedsBaseline() {
		if baseline, err = r.Baseline(ctx, last, p.LookbackDays); err != nil {
			return perr.FromPostgres(err, "pattern baseline")
		}
	}

	alloc, err := backfill.Distribute(run.GapDays, run.Total, baseline, p)
	if err != nil {
		return err
	}
	if alloc.FallbackCause != nil {
		res.FallbackCause = alloc.FallbackCause
		logger.C(ctx).Warn().Err(alloc.FallbackCause).Int("baseline_len", len(baseline)).Msg("pattern backfill fell back to even")
	}
	res.Method = domain.MethodFor(alloc.Applied)
	res.Entries = run.Entries(alloc.Values, res.Method)
	return nil
}
