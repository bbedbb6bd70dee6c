// Package version reports the build revision of the anonymizer binary.
//
// The revision comes from -ldflags when set, otherwise from the VCS stamp in
// debug.BuildInfo, otherwise "dev":
//
//	go build -ldflags "-X github.com/codeready-toolchain/anonymizer/pkg/version.revisionOverride=$(git rev-parse HEAD)"
package version

import "runtime/debug"

// AppName prefixes the user agent sent to model providers.
const AppName = "anonymizer"

const shortRevisionLen = 8

var revisionOverride string

// GitCommit is the short revision, or "dev" for untagged builds and tests.
var GitCommit = resolveRevision(revisionOverride, debug.ReadBuildInfo)

func resolveRevision(override string, readInfo func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return shorten(override)
	}
	info, ok := readInfo()
	if !ok {
		return "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shorten(s.Value)
		}
	}
	return "dev"
}

func shorten(rev string) string {
	if len(rev) > shortRevisionLen {
		return rev[:shortRevisionLen]
	}
	return rev
}

// UserAgent returns "anonymizer/<commit>".
func UserAgent() string {
	return AppName + "/" + GitCommit
}
