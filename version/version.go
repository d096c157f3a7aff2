// Package version holds build metadata stamped in at link time:
//
//	go build -ldflags "\
//	  -X github.com/colmreid/strata/version.GitRelease=v0.3.0 \
//	  -X github.com/colmreid/strata/version.GitCommit=$(git rev-parse HEAD) \
//	  -X github.com/colmreid/strata/version.GitCommitDate=$(git show -s --format=%cs HEAD)"
package version

import "runtime"

var (
	// GitRelease is the release tag.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version.
	GoInfo = runtime.Version()
)
