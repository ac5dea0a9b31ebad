package model

// UpdatePayload is the JSON body served to checking clients. Field
// names are the wire contract consumed by the updatekit library's
// custom backend source.
type UpdatePayload struct {
	LatestVersion           string         `json:"latest_version"`
	CurrentVersion          string         `json:"current_version,omitempty"`
	ReleaseNotes            string         `json:"release_notes,omitempty"`
	DownloadURL             string         `json:"download_url,omitempty"`
	IsForced                bool           `json:"is_forced,omitempty"`
	IsCritical              bool           `json:"is_critical,omitempty"`
	MinimumSupportedVersion string         `json:"minimum_supported_version,omitempty"`
	FileSizeBytes           uint64         `json:"file_size_bytes,omitempty"`
	ReleaseDate             string         `json:"release_date,omitempty"`
	Metadata                map[string]any `json:"metadata,omitempty"`
}

type PublishReleaseResponseData struct {
	ID          string `json:"id"`
	VersionName string `json:"version_name"`
	Platform    string `json:"platform"`
}
