package store

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Version is the document format written by this package. Documents
// without a version field predate it and are read as compatible.
var Version = semver.MustParse("1.0.0")

type UnsupportedVersion semver.Version

func (e UnsupportedVersion) Error() string {
	return fmt.Sprintf("document version %s is newer than supported version %s", semver.Version(e), Version)
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return malformed(err, "version %q", v)
	}
	if parsed.Major > Version.Major {
		return malformed(UnsupportedVersion(parsed), "version %q", v)
	}
	return nil
}
