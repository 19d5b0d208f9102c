// Package domain defines asset snapshot types and the capture port
package domain

import "time"

// Snapshot is the cumulative download counter of one asset on one day
type Snapshot struct {
	AssetID       int64
	ReleaseID     int64
	Repo          string
	ReleaseTag    string
	AssetName     string
	Day           time.Time
	DownloadCount int64
	Draft         bool
	Prerelease    bool
	CapturedAt    time.Time
}

// CaptureResult summarises one capture pass
type CaptureResult struct {
	Day      time.Time
	Repos    int
	Failed   []string
	Releases int
	Assets   int
	Written  int64
}

// Degraded reports whether a fetch failed, in which case nothing was written
func (r CaptureResult) Degraded() bool { return len(r.Failed) > 0 }
