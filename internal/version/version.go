package version

import "runtime"

// Build metadata, overridden at link time:
//
//	-ldflags "-X github.com/openshelf/shelfd/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)
