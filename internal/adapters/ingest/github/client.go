// Package github is the releases feed for snapshot capture: a small REST v3
// client that rotates tokens, paces requests and waits out rate limits.
package github

import (
	"cmp"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "dltally"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond
	defaultPerSecond = 5
	maxBackoff       = 30 * time.Second
)

// Options configures the Client. Zero fields take the defaults above.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// TokensCSV is rotated per request; empty is anonymous at 60 req/h
	TokensCSV string

	MaxRetries int
	// RetryBase doubles per attempt up to maxBackoff
	RetryBase time.Duration

	// PerSecond caps outgoing requests; negative disables pacing
	PerSecond float64
}

// Client talks to the GitHub REST API
type Client struct {
	http    *http.Client
	opts    Options
	tokens  []string
	next    atomic.Uint32
	limiter *rate.Limiter
	log     logger.Logger

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient applies defaults to o and builds the client
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(cmp.Or(o.BaseURL, baseURLDefault), "/")
	o.UserAgent = cmp.Or(o.UserAgent, defaultUA)
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.PerSecond == 0 {
		o.PerSecond = defaultPerSecond
	}

	limit := rate.Inf
	if o.PerSecond > 0 {
		limit = rate.Limit(o.PerSecond)
	}

	c := &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(limit, 1),
		log:     *logger.Named("github"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
	for t := range strings.SplitSeq(o.TokensCSV, ",") {
		if t = strings.TrimSpace(t); t != "" {
			c.tokens = append(c.tokens, t)
		}
	}
	return c
}

// Tokens is the number of configured auth tokens
func (c *Client) Tokens() int { return len(c.tokens) }

func (c *Client) nextToken() string {
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[int(c.next.Add(1)-1)%len(c.tokens)]
}

// Do sends one request, retrying transport failures, 5xx and rate limits.
// On success the caller closes the body.
func (c *Client) Do(ctx context.Context, method, path string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, wait, err := c.try(ctx, method, path, attempt)
		if err != nil || resp != nil {
			return resp, err
		}
		if err := c.sleep(ctx, wait); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github retry aborted")
		}
	}
}

// try makes one attempt. A nil response and nil error means sleep for wait
// and go again.
func (c *Client) try(ctx context.Context, method, path string, attempt int) (*http.Response, time.Duration, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github pacing wait")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, nil)
	if err != nil {
		return nil, 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "github build request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if tok := c.nextToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil || attempt >= c.opts.MaxRetries {
			return nil, 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github %s %s", method, path)
		}
		wait := c.backoff(attempt)
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("github transport error")
		return nil, wait, nil
	}

	q := readQuota(resp.Header)
	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).
		Int("rate_remaining", q.Remaining).
		Msg("github response")

	return c.classify(resp, path, q, attempt)
}

// classify owns resp.Body for every outcome except a 200
func (c *Client) classify(resp *http.Response, path string, q quota, attempt int) (*http.Response, time.Duration, error) {
	status := resp.StatusCode
	retriesLeft := attempt < c.opts.MaxRetries

	switch {
	case status == http.StatusOK:
		return resp, 0, nil

	case status == http.StatusForbidden && q.hasBudget():
		return nil, 0, statusError(resp, path, perr.ErrorCodeInvalidArgument)

	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		discard(resp.Body)
		if !retriesLeft {
			return nil, 0, &StatusError{Status: status, Path: path, err: perr.New(perr.ErrorCodeTooManyRequests, "github rate limited")}
		}
		wait := q.wait(c.now())
		if wait <= 0 {
			wait = c.backoff(attempt)
		}
		c.log.Warn().Int("attempt", attempt).Dur("sleep", wait).Time("reset", q.Reset).Msg("github rate limited")
		return nil, wait, nil

	case status >= 500:
		discard(resp.Body)
		if !retriesLeft {
			return nil, 0, &StatusError{Status: status, Path: path, err: perr.New(perr.ErrorCodeUnavailable, "github server error")}
		}
		wait := c.backoff(attempt)
		c.log.Warn().Int("attempt", attempt).Int("status", status).Dur("retry_in", wait).Msg("github server error")
		return nil, wait, nil

	case status == http.StatusNotFound:
		return nil, 0, statusError(resp, path, perr.ErrorCodeNotFound)

	default:
		return nil, 0, statusError(resp, path, perr.ErrorCodeUnknown)
	}
}

// statusError keeps a short body prefix for the logs and closes the body
func statusError(resp *http.Response, path string, code perr.ErrorCode) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	return &StatusError{
		Status: resp.StatusCode,
		Path:   path,
		Body:   string(body),
		err:    perr.Newf(code, "github status %d", resp.StatusCode),
	}
}

// backoff is RetryBase doubled per attempt, capped at maxBackoff
func (c *Client) backoff(attempt int) time.Duration {
	if attempt >= 30 {
		return maxBackoff
	}
	d := c.opts.RetryBase << attempt
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
