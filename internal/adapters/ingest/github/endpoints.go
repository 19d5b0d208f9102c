package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	perr "dltally/internal/platform/errors"
)

const (
	perPage  = 100
	maxPages = 50
	maxBody  = 8 << 20
)

// ErrTruncated means a repository has more releases than ListReleases will page through
var ErrTruncated = errors.New("github: release list truncated")

// SplitRepo validates an owner/name pair
func SplitRepo(full string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(full), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", perr.InvalidArgf("github repo %q is not owner/name", full)
	}
	return owner, name, nil
}

// ListReleases returns every release of owner/name, following pages until a
// short page. A listing still full at maxPages fails with ErrTruncated.
func (c *Client) ListReleases(ctx context.Context, full string) ([]Release, error) {
	owner, name, err := SplitRepo(full)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf("/repos/%s/%s/releases", url.PathEscape(owner), url.PathEscape(name))

	var out []Release
	for page := 1; page <= maxPages; page++ {
		batch, err := c.releasesPage(ctx, fmt.Sprintf("%s?per_page=%d&page=%d", base, perPage, page))
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < perPage {
			return out, nil
		}
	}
	return nil, perr.Wrapf(ErrTruncated, perr.ErrorCodeUnavailable,
		"%s: %d releases over %d full pages", full, len(out), maxPages)
}

func (c *Client) releasesPage(ctx context.Context, path string) ([]Release, error) {
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github read body %s", path)
	}
	var out []Release
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "github decode releases %s", path)
	}
	return out, nil
}
