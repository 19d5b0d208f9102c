package github

import "time"

// Release is a partial GitHub release document with the fields capture uses
type Release struct {
	ID          int64      `json:"id"`
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	PublishedAt *time.Time `json:"published_at"`
	Assets      []Asset    `json:"assets"`
}

// Asset is a downloadable file attached to a release. DownloadCount is cumulative.
type Asset struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	DownloadCount int64     `json:"download_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}
