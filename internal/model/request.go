package model

type CheckUpdateRequest struct {
	PackageName    string
	Platform       string `query:"platform"`
	CurrentVersion string `query:"current_version"`
	BuildNumber    string `query:"build_number"`
	Region         string `query:"region"`
	TestGroup      string `query:"test_group"`
}

type PublishReleaseRequest struct {
	VersionName string `json:"version_name" validate:"required,version"`
	Platform    string `json:"platform" validate:"required,oneof=android ios any"`

	ReleaseNotes string `json:"release_notes"`
	DownloadURL  string `json:"download_url" validate:"omitempty,url"`

	IsForced   bool `json:"is_forced"`
	IsCritical bool `json:"is_critical"`

	MinimumSupportedVersion string `json:"minimum_supported_version" validate:"omitempty,version"`

	FileSizeBytes uint64 `json:"file_size_bytes"`
	ReleaseDate   string `json:"release_date" validate:"omitempty,rfc3339"`

	TestGroup string   `json:"test_group"`
	Regions   []string `json:"regions"`

	Metadata map[string]any `json:"metadata"`
}
