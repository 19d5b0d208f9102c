package github

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
)

// StatusError is the non-2xx response that ended a request, after retries
type StatusError struct {
	Status int
	Path   string
	// Body is a short prefix of the response, for logs
	Body string
	err  error
}

func (e *StatusError) Error() string {
	msg := "github: status " + strconv.Itoa(e.Status)
	if e.err != nil {
		msg = e.err.Error()
	}
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

func (e *StatusError) Unwrap() error { return e.err }

// HTTPStatus returns the GitHub response status
func (e *StatusError) HTTPStatus() int { return e.Status }

// quota is GitHub's view of the current token's budget
type quota struct {
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

func readQuota(h http.Header) quota {
	q := quota{
		Remaining:  headerInt(h, "X-RateLimit-Remaining"),
		RetryAfter: time.Duration(headerInt(h, "Retry-After")) * time.Second,
	}
	if sec := headerInt(h, "X-RateLimit-Reset"); sec > 0 {
		q.Reset = time.Unix(int64(sec), 0).UTC()
	}
	return q
}

// hasBudget is true for a 403 that is a permission failure, not a limit
func (q quota) hasBudget() bool { return q.Remaining > 0 && q.RetryAfter == 0 }

// wait is how long GitHub asked us to stay away; 0 means use backoff
func (q quota) wait(now time.Time) time.Duration {
	switch {
	case q.RetryAfter > 0:
		return q.RetryAfter
	case q.Remaining <= 0 && q.Reset.After(now):
		return min(q.Reset.Sub(now), maxBackoff)
	default:
		return 0
	}
}

func headerInt(h http.Header, key string) int {
	n, _ := strconv.Atoi(h.Get(key))
	return n
}

// discard drains a little of the body so the connection can be reused
func discard(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	_ = rc.Close()
}

// IsRateLimited reports a 429, or a 403 from the secondary limiter
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Status == http.StatusTooManyRequests || se.Status == http.StatusForbidden)
}

// IsTransient reports a 5xx that survived the retries
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 500 && se.Status <= 599
}
