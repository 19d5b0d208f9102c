// Package service captures daily asset snapshots from the releases feed
package service

import (
	"context"
	"time"

	gh "dltally/internal/adapters/ingest/github"
	"dltally/internal/modkit/repokit"
	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"
	ptime "dltally/internal/platform/time"
	"dltally/internal/services/snapshots/domain"
	"dltally/internal/services/snapshots/repo"

	"github.com/coder/quartz"
)

// Feed lists the releases of one owner/name repository
type Feed interface {
	ListReleases(ctx context.Context, repo string) ([]gh.Release, error)
}

// Config for the snapshots service
type Config struct {
	Repos      []string
	SkipDrafts bool
}

// Service implements domain.CapturePort
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	feed   Feed
	clock  quartz.Clock
	cfg    Config
}

// New constructs a snapshots service; a nil clock means the wall clock
func New(db repokit.TxRunner, b repokit.Binder[repo.Repo], feed Feed, clock quartz.Clock, cfg Config) *Service {
	if db == nil || feed == nil {
		panic("snapshots.Service requires a TxRunner and a Feed")
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{db: db, binder: b, feed: feed, clock: clock, cfg: cfg}
}

// Capture implements domain.CapturePort. A day's snapshot covers every
// configured repository or none: if any fetch fails nothing is written and
// the next reconcile treats the day as a gap.
func (s *Service) Capture(ctx context.Context, day time.Time) (domain.CaptureResult, error) {
	day = ptime.Day(day)
	res := domain.CaptureResult{Day: day, Repos: len(s.cfg.Repos)}
	if len(s.cfg.Repos) == 0 {
		return res, perr.InvalidArgf("no repositories configured for capture")
	}

	log := logger.C(ctx)
	now := s.clock.Now().UTC()
	seen := make(map[int64]struct{})
	var rows []domain.Snapshot

	for _, full := range s.cfg.Repos {
		releases, err := s.feed.ListReleases(ctx, full)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed = append(res.Failed, full)
			log.Warn().Err(err).
				Str("repo", full).
				Bool("rate_limited", gh.IsRateLimited(err)).
				Msg("release fetch failed")
			continue
		}
		before := len(rows)
		rows = s.flatten(rows, seen, full, releases, day, now)
		res.Releases += len(releases)
		log.Debug().Str("repo", full).Int("releases", len(releases)).Int("assets", len(rows)-before).Msg("releases fetched")
	}
	res.Assets = len(rows)

	if res.Degraded() {
		log.Warn().
			Strs("failed", res.Failed).
			Int("assets_dropped", len(rows)).
			Msg("capture degraded; no snapshot rows written for the day")
		return res, nil
	}
	if len(rows) == 0 {
		log.Warn().Int("failed", len(res.Failed)).Msg("capture produced no snapshot rows")
		return res, nil
	}

	err := repokit.TxBind(ctx, s.db, s.binder, func(r repo.Repo) error {
		n, err := r.UpsertSnapshots(ctx, rows)
		res.Written = n
		return err
	})
	if err != nil {
		return res, perr.FromPostgresf(err, "upsert %d snapshots for %s", len(rows), ptime.FormatDay(day))
	}

	log.Info().
		Int("repos", res.Repos).
		Int("failed", len(res.Failed)).
		Int("releases", res.Releases).
		Int("assets", res.Assets).
		Int64("written", res.Written).
		Msg("snapshots captured")
	return res, nil
}

// flatten appends one row per asset; an asset id seen earlier in the pass is skipped
func (s *Service) flatten(
	out []domain.Snapshot,
	seen map[int64]struct{},
	full string,
	releases []gh.Release,
	day, now time.Time,
) []domain.Snapshot {
	for _, rel := range releases {
		if rel.Draft && s.cfg.SkipDrafts {
			continue
		}
		for _, a := range rel.Assets {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			out = append(out, domain.Snapshot{
				AssetID:       a.ID,
				ReleaseID:     rel.ID,
				Repo:          full,
				ReleaseTag:    rel.TagName,
				AssetName:     a.Name,
				Day:           day,
				DownloadCount: max(a.DownloadCount, 0),
				Draft:         rel.Draft,
				Prerelease:    rel.Prerelease,
				CapturedAt:    now,
			})
		}
	}
	return out
}
