package allocator

import "github.com/Masterminds/semver/v3"

// coreVersion is stamped on the heap core itself, independent of the
// module's own go.mod version, so embedders can assert a minimum wire
// format (the boundary-tag and directory layout) without pinning to a
// specific release tag.
const coreVersion = "1.0.0"

// Version parses and returns the heap core's layout version. It panics
// if coreVersion is not valid semver, which would only happen if this
// file itself were edited incorrectly — there is no runtime input here.
func Version() *semver.Version {
	v, err := semver.NewVersion(coreVersion)
	if err != nil {
		panic(err)
	}

	return v
}

// CompatibleWith reports whether this build's core layout satisfies the
// given semver constraint (e.g. ">= 1.0.0, < 2.0.0"), for callers that
// persist heaps across process restarts and need to refuse a mismatched
// binary rather than corrupt memory silently.
func CompatibleWith(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}

	return c.Check(Version()), nil
}
