// Package version implements the semantic version value type used across
// update checks, plus a pluggable comparator for heterogeneous version
// strings coming from different backends.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// compare result
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// Version is an immutable semantic version. Build carries the optional
// suffix after "+"; store version codes land there as well, with
// Major/Minor/Patch left at zero.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Build string
}

// ParseError reports a version string that falls outside the supported
// grammar. Only structural violations produce it; unparsable single
// components degrade to zero instead.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse version %q: %s", e.Input, e.Reason)
}

// Parse accepts up to three dot-separated numeric components, optionally
// followed by "+build". Missing trailing components default to zero and a
// non-numeric component is read as zero, so legacy strings like "1.2" or
// "v1" still produce a usable version. More than three components is a
// hard error.
func Parse(s string) (Version, error) {
	var v Version

	core, build, _ := strings.Cut(s, "+")
	v.Build = build

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return Version{}, &ParseError{Input: s, Reason: "more than 3 version components"}
	}

	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			n = 0
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

// MustParse is Parse for statically known strings.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromCode wraps a platform store version code. The numeric triple stays
// zero; availability for such versions is decided by the store oracle,
// not by ordinary comparison.
func FromCode(code int64) Version {
	return Version{Build: strconv.FormatInt(code, 10)}
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// IsZero reports whether the numeric triple is all zero and no build
// suffix is present.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Build == ""
}

// Compare orders by major, minor, patch. Equal triples fall back to the
// build suffix when both sides carry an integer one; otherwise the
// versions are equal.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != Equal {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != Equal {
		return c
	}
	if c := compareUint(a.Patch, b.Patch); c != Equal {
		return c
	}

	ab, aok := buildNumber(a)
	bb, bok := buildNumber(b)
	if aok && bok {
		return compareUint(ab, bb)
	}
	return Equal
}

func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

func (v Version) Less(other Version) bool {
	return Compare(v, other) == Less
}

func (v Version) Greater(other Version) bool {
	return Compare(v, other) == Greater
}

func (v Version) Equal(other Version) bool {
	return Compare(v, other) == Equal
}

func buildNumber(v Version) (uint64, bool) {
	if v.Build == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v.Build, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
