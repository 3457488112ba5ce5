// Package version carries build metadata stamped in via -ldflags.
package version

import "runtime"

var (
	// GitVersion is the semantic version, set at build time.
	GitVersion = "v0.0.0-master+$Format:%h$"
	// GitCommit is the SHA1 the binary was built from.
	GitCommit = "$Format:%H$"
	// BuildDate is the UTC build timestamp in ISO8601 format.
	BuildDate = "1970-01-01T00:00:00Z"
)

// Info holds the versioning information reported by the /version endpoint
// and the --version flag.
type Info struct {
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Compiler   string `json:"compiler"`
	Platform   string `json:"platform"`
}

// String returns the semantic version.
func (i Info) String() string {
	return i.GitVersion
}

// Get returns the versioning information of the running binary.
func Get() Info {
	return Info{
		GitVersion: GitVersion,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Compiler:   runtime.Compiler,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}
