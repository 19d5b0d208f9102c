package store

import (
	"context"
	"fmt"
	"time"

	"dltally/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

var openPool = pg.Open

// openPG opens the pool and publishes it on s only once a ping answers,
// retrying with capped exponential backoff
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := openPool(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, withAppName(cfg.AppName))
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 150 * time.Millisecond
	eb.MaxInterval = 2 * time.Second
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		// straight to the pool so probes are not traced
		return p.Pool.Ping(pctx)
	}
	notify := func(err error, next time.Duration) {
		s.Log.Warn().Err(err).Dur("retry_in", next).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
	}

	a := newPGAdapter(p)
	s.PG = a
	return a, nil
}

func withAppName(name string) func(*pgxpool.Config) {
	return func(pc *pgxpool.Config) {
		if name == "" {
			return
		}
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = name
	}
}
