// Package repo persists asset snapshots in Postgres
package repo

import (
	"context"
	"fmt"
	"strings"

	"dltally/internal/modkit/repokit"
	"dltally/internal/services/snapshots/domain"
)

// rows per INSERT; 10 params each keeps well under the 65535 bind limit
const chunkSize = 500

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

// Repo writes snapshot rows
type Repo interface {
	// UpsertSnapshots writes xs keyed by (asset_id, snapshot_date); a re-capture
	// of the same day overwrites. Returns rows affected.
	UpsertSnapshots(ctx context.Context, xs []domain.Snapshot) (int64, error)
}

const upsertTail = ` ON CONFLICT (asset_id, snapshot_date) DO UPDATE SET
	release_id = EXCLUDED.release_id,
	repo = EXCLUDED.repo,
	release_tag = EXCLUDED.release_tag,
	asset_name = EXCLUDED.asset_name,
	download_count = EXCLUDED.download_count,
	draft = EXCLUDED.draft,
	prerelease = EXCLUDED.prerelease,
	captured_at = EXCLUDED.captured_at`

// UpsertSnapshots implements Repo
func (s *pg) UpsertSnapshots(ctx context.Context, xs []domain.Snapshot) (int64, error) {
	var total int64
	for start := 0; start < len(xs); start += chunkSize {
		end := min(start+chunkSize, len(xs))
		n, err := s.upsertChunk(ctx, xs[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *pg) upsertChunk(ctx context.Context, xs []domain.Snapshot) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO asset_snapshots
		(asset_id, snapshot_date, release_id, repo, release_tag, asset_name,
		download_count, draft, prerelease, captured_at) VALUES `)

	args := make([]any, 0, len(xs)*10)
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*10 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4,
			base+5, base+6, base+7, base+8, base+9)

		args = append(args,
			x.AssetID, x.Day, x.ReleaseID, x.Repo, x.ReleaseTag, x.AssetName,
			x.DownloadCount, x.Draft, x.Prerelease, x.CapturedAt,
		)
	}
	sb.WriteString(upsertTail)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
