// Package version provides version information for the osinfo CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CUESDKVersion is the version of the CUE SDK used for schema validation.
// Keep in sync with go.mod.
const CUESDKVersion = "v0.15.4"

// MetadataFormat is the libosinfo document version the loader understands.
const MetadataFormat = "0.0.1"

// Info contains version information.
type Info struct {
	Version        string `json:"version"`
	GitCommit      string `json:"gitCommit"`
	BuildDate      string `json:"buildDate"`
	GoVersion      string `json:"goVersion"`
	CUESDKVersion  string `json:"cueSDKVersion"`
	MetadataFormat string `json:"metadataFormat"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:        Version,
		GitCommit:      GitCommit,
		BuildDate:      BuildDate,
		GoVersion:      runtime.Version(),
		CUESDKVersion:  CUESDKVersion,
		MetadataFormat: MetadataFormat,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("osinfo version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s\n  Metadata:  %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion, i.MetadataFormat)
}
