// Package version reports build information stamped at link time
package version

// BuildInfo holds version information about a dltally binary
type BuildInfo struct {
	Service string `json:"service" example:"dltally-api"`
	Version string `json:"version" example:"v0.3.1"`
	Commit  string `json:"commit" example:"9f1c2ab"`
	Date    string `json:"date" example:"2025-09-02"`
}

// Info returns the build information for service. Set the variables with
// -ldflags "-X 'dltally/internal/core/version.version=v0.0.1' -X 'dltally/internal/core/version.commit=abcd'"
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
