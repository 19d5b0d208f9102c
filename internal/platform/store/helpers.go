package store

import (
	"context"
	"errors"

	perr "dltally/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Scalar reads a single value from the first row. No row at all is
// perr.ErrNotFound; a NULL needs a pointer T.
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (v T, err error) {
	err = q.QueryRow(ctx, sql, args...).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		err = perr.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Many scans every row with scan. An empty result is a nil slice.
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecOne runs a statement that must touch exactly one row. Touching none
// is perr.ErrNotFound, touching more is a conflict.
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	switch n := tag.RowsAffected(); n {
	case 1:
		return nil
	case 0:
		return perr.ErrNotFound
	default:
		return perr.Newf(perr.ErrorCodeConflict, "statement touched %d rows, want 1", n)
	}
}
