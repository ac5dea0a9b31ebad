package model

import "time"

// Release is one published release manifest for a package/platform
// pair, as stored in redis.
type Release struct {
	ID          string `json:"id"`
	PackageName string `json:"package_name"`
	Platform    string `json:"platform"`

	VersionName string `json:"version_name"`

	ReleaseNotes string `json:"release_notes,omitempty"`
	DownloadURL  string `json:"download_url,omitempty"`

	IsForced   bool `json:"is_forced,omitempty"`
	IsCritical bool `json:"is_critical,omitempty"`

	MinimumSupportedVersion string `json:"minimum_supported_version,omitempty"`

	FileSizeBytes uint64    `json:"file_size_bytes,omitempty"`
	ReleaseDate   time.Time `json:"release_date,omitempty"`

	// empty test group means the general population
	TestGroup string `json:"test_group,omitempty"`
	// regions the release is limited to, empty means everywhere
	Regions []string `json:"regions,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	PublishedAt time.Time `json:"published_at"`
}

// VisibleTo reports whether the release applies to a check from the
// given region and test group.
func (r *Release) VisibleTo(region, testGroup string) bool {
	if r.TestGroup != "" && r.TestGroup != testGroup {
		return false
	}
	if len(r.Regions) == 0 {
		return true
	}
	for _, want := range r.Regions {
		if want == region {
			return true
		}
	}
	return false
}
