package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStateCodes classifies the SQLSTATEs the snapshot and summary writes
// can realistically hit. Unlisted states are plain ErrorCodeDB.
var sqlStateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22003": ErrorCodeInvalidArgument, // numeric_value_out_of_range
	"22007": ErrorCodeInvalidArgument, // invalid_datetime_format
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation, e.g. a negative total
	"40001": ErrorCodeConflict,        // serialization_failure
	"40P01": ErrorCodeConflict,        // deadlock_detected
	"55P03": ErrorCodeConflict,        // lock_not_available
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// PgError finds a Postgres server error anywhere in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// SQLStateCode classifies a Postgres error. ok is false when err carries
// no server error at all.
func SQLStateCode(err error) (code ErrorCode, ok bool) {
	pe, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := sqlStateCodes[pe.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a driver error under its SQLSTATE classification,
// ErrorCodeDB otherwise. nil stays nil.
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := SQLStateCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with a format
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}
