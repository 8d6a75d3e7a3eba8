package version

// Version and GitCommit are set at build time with -ldflags, e.g.
//
//	-X github.com/charlie0129/healthcalc/pkg/version.Version=v0.1.0
var (
	Version   = "UNKNOWN"
	GitCommit = "UNKNOWN"
)
