// Command dltally-snapshot captures today's release download counters and
// reconciles the daily summary, backfilling any days the job missed
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dltally/internal/core/version"
	"dltally/internal/modkit"
	"dltally/internal/platform/config"
	"dltally/internal/platform/logger"
	"dltally/internal/platform/store"
	ptime "dltally/internal/platform/time"

	reconcilemod "dltally/internal/services/reconcile/module"
	snapmod "dltally/internal/services/snapshots/module"

	"github.com/google/uuid"
)

const service = "dltally-snapshot"

var openStore = store.Open

func main() {
	var (
		fDay         = flag.String("day", "", "UTC day to run for, YYYY-MM-DD (default today)")
		fSkipCapture = flag.Bool("skip-capture", false, "reconcile only; assume today's snapshots exist")
		fDryRun      = flag.Bool("dry-run", false, "plan and log the summary rows, write nothing")
		fMigrate     = flag.Bool("migrate", false, "apply embedded migrations before running")
		fVersion     = flag.Bool("version", false, "print build info and exit")
	)
	flag.Parse()

	if *fVersion {
		_ = json.NewEncoder(os.Stdout).Encode(version.Info(service))
		return
	}

	l := logger.Named(service)
	root := config.New()

	day := ptime.Day(time.Now())
	if *fDay != "" {
		d, err := ptime.ParseDay(*fDay)
		if err != nil {
			l.Fatal().Err(err).Msg("bad -day")
		}
		day = d
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithRun(ctx, uuid.NewString(), ptime.FormatDay(day))
	if err := run(ctx, root, day, *fMigrate, *fSkipCapture, *fDryRun); err != nil {
		logger.C(ctx).Fatal().Err(err).Msg("run failed")
	}
}

// run loads and validates the reconcile options before any GitHub or
// Postgres I/O, then captures and reconciles day
func run(ctx context.Context, root config.Conf, day time.Time, migrate, skipCapture, dryRun bool) error {
	log := logger.C(ctx)

	opts, err := reconcilemod.Load(root, dryRun)
	if err != nil {
		return fmt.Errorf("reconcile config: %w", err)
	}

	cfg := store.ConfigFromEnv(service)
	if migrate {
		if _, err := store.MigrateUp(cfg.PG.URL, *log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	st, err := openStore(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *logger.Named("dltally"), Cfg: root, PG: st.PG}
	rm, err := reconcilemod.New(deps, opts)
	if err != nil {
		return fmt.Errorf("reconcile module: %w", err)
	}

	if skipCapture {
		log.Info().Msg("capture skipped")
	} else {
		res, err := snapmod.New(deps, snapmod.Options{}).Ports().Capture.Capture(ctx, day)
		if err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		evt := log.Info()
		if res.Degraded() {
			evt = log.Warn().Strs("failed", res.Failed)
		}
		evt.Int("repos", res.Repos).Int("assets", res.Assets).Int64("written", res.Written).Msg("capture done")
	}

	res, err := rm.Ports().Reconcile.Reconcile(ctx, day)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	log.Info().
		Str("method", string(res.Method)).
		Int("gap_days", res.GapDays).
		Int64("total", res.Total).
		Int("rows", len(res.Entries)).
		Bool("dry_run", res.DryRun).
		Msg("run complete")
	return nil
}
