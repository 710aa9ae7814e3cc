package version

import (
	"fmt"
)

// These vars set by `goreleaser`:
var (
	// Version is the current Git tag (the v prefix is stripped) or the name of the snapshot
	Version = "0.0.0-dev"
	// Commit is the current git commit SHA
	Commit = "dirty-local-tree"
)

// String returns the version and commit joined the way --version prints them
func String() string {
	return fmt.Sprintf("%s+%s", Version, Commit)
}

// UserAgent returns the user agent that should be used for requests to Jenkins
func UserAgent() string {
	return fmt.Sprintf("jenkins-release/%s", String())
}
