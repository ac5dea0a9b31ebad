// Package updatekit decides whether a host application should prompt its
// user to update: it resolves a remote update descriptor from a custom
// backend, a native store oracle or a public store lookup, caches the
// result, and drives the forced-versus-dismissible presentation flow.
package updatekit

import (
	"time"

	"github.com/updatekit/updatekit/version"
)

// UpdateKind classifies how far ahead the latest version is.
type UpdateKind string

const (
	KindNone  UpdateKind = "none"
	KindMajor UpdateKind = "major"
	KindMinor UpdateKind = "minor"
	KindPatch UpdateKind = "patch"
)

// UpdateInfo describes one prospective update. It is built fresh per
// check, optionally serialized into the cache, consumed once by the
// decision step and then discarded.
type UpdateInfo struct {
	LatestVersion  version.Version `json:"latest_version"`
	CurrentVersion version.Version `json:"current_version"`

	ReleaseNotes string `json:"release_notes,omitempty"`
	DownloadURL  string `json:"download_url,omitempty"`

	IsForced   bool `json:"is_forced"`
	IsCritical bool `json:"is_critical"`

	MinimumSupportedVersion *version.Version `json:"minimum_supported_version,omitempty"`

	ReleaseDate   time.Time `json:"release_date,omitempty"`
	FileSizeBytes uint64    `json:"file_size_bytes,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	// OracleAvailable is set on descriptors produced by a native store
	// oracle, whose version identity is just a version code. When
	// non-nil it replaces ordinary version comparison: the store SDK is
	// trusted to know whether a newer build exists.
	OracleAvailable *bool `json:"oracle_available,omitempty"`
}

// UpdateAvailable reports whether LatestVersion is strictly newer than
// CurrentVersion, or whatever the store oracle said when the descriptor
// came from one.
func (u *UpdateInfo) UpdateAvailable() bool {
	if u.OracleAvailable != nil {
		return *u.OracleAvailable
	}
	return u.LatestVersion.Greater(u.CurrentVersion)
}

// BelowMinimum reports whether the installed version has fallen under
// the minimum the backend still supports. False when no minimum is set.
func (u *UpdateInfo) BelowMinimum() bool {
	if u.MinimumSupportedVersion == nil {
		return false
	}
	return u.CurrentVersion.Less(*u.MinimumSupportedVersion)
}

// Forced reports whether the update must not be dismissible.
func (u *UpdateInfo) Forced() bool {
	return u.IsForced || u.BelowMinimum()
}

// Kind returns the highest differing version component, KindNone when no
// update is available.
func (u *UpdateInfo) Kind() UpdateKind {
	if !u.UpdateAvailable() {
		return KindNone
	}
	switch {
	case u.LatestVersion.Major != u.CurrentVersion.Major:
		return KindMajor
	case u.LatestVersion.Minor != u.CurrentVersion.Minor:
		return KindMinor
	default:
		return KindPatch
	}
}

// AppInfo identifies the installed application on whose behalf checks
// run. The host supplies it once per session.
type AppInfo struct {
	PackageName    string `json:"package_name"`
	Platform       string `json:"platform"`
	CurrentVersion string `json:"current_version"`
	BuildNumber    string `json:"build_number,omitempty"`
}

// CheckRequest is what a version source needs to answer "is there
// something newer". Derived from AppInfo plus the session config.
type CheckRequest struct {
	Platform       string
	CurrentVersion string
	BuildNumber    string
	PackageName    string
	Region         string
	TestGroup      string
}
