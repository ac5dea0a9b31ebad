// Package source implements the version sources a session resolves
// against: a custom HTTP backend, a native store oracle and a public
// store lookup. All of them translate transport failures and malformed
// responses into "no update" rather than errors.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit"
	"github.com/updatekit/updatekit/version"
)

// backendPayload is the custom backend response contract.
type backendPayload struct {
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

// CustomBackend queries a configured HTTP endpoint with one GET per
// check. Anything other than a well-formed 200 response degrades to
// "no update".
type CustomBackend struct {
	endpoint  string
	headers   map[string]string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func NewCustomBackend(cfg updatekit.Config, logger *zap.Logger) *CustomBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomBackend{
		endpoint:  cfg.CustomUpdateURL,
		headers:   cfg.CustomHeaders,
		userAgent: cfg.CustomUserAgent,
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		logger: logger,
	}
}

func (b *CustomBackend) Name() string {
	return "custom_backend"
}

func (b *CustomBackend) Resolve(ctx context.Context, req updatekit.CheckRequest) (*updatekit.UpdateInfo, error) {
	if b.endpoint == "" {
		return nil, nil
	}

	u, err := url.Parse(b.endpoint)
	if err != nil {
		b.logger.Warn("invalid custom update url", zap.Error(err))
		return nil, nil
	}
	q := u.Query()
	q.Set("platform", req.Platform)
	q.Set("current_version", req.CurrentVersion)
	q.Set("build_number", req.BuildNumber)
	q.Set("package_name", req.PackageName)
	if req.Region != "" {
		q.Set("region", req.Region)
	}
	if req.TestGroup != "" {
		q.Set("test_group", req.TestGroup)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil
	}
	for k, v := range b.headers {
		httpReq.Header.Set(k, v)
	}
	if b.userAgent != "" {
		httpReq.Header.Set("User-Agent", b.userAgent)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		b.logger.Debug("custom backend request failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.logger.Debug("custom backend returned non-200",
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}

	var payload backendPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		b.logger.Debug("custom backend returned malformed payload", zap.Error(err))
		return nil, nil
	}
	if payload.LatestVersion == "" {
		return nil, nil
	}

	return b.toDescriptor(payload, req), nil
}

func (b *CustomBackend) toDescriptor(payload backendPayload, req updatekit.CheckRequest) *updatekit.UpdateInfo {
	latest, err := version.Parse(payload.LatestVersion)
	if err != nil {
		b.logger.Debug("unparsable latest_version",
			zap.String("value", payload.LatestVersion),
		)
		return nil
	}

	currentStr := payload.CurrentVersion
	if currentStr == "" {
		currentStr = req.CurrentVersion
	}
	current, err := version.Parse(currentStr)
	if err != nil {
		return nil
	}

	info := &updatekit.UpdateInfo{
		LatestVersion:  latest,
		CurrentVersion: current,
		ReleaseNotes:   payload.ReleaseNotes,
		DownloadURL:    payload.DownloadURL,
		IsForced:       payload.IsForced,
		IsCritical:     payload.IsCritical,
		FileSizeBytes:  payload.FileSizeBytes,
		Metadata:       payload.Metadata,
	}

	if payload.MinimumSupportedVersion != "" {
		if minimum, err := version.Parse(payload.MinimumSupportedVersion); err == nil {
			info.MinimumSupportedVersion = &minimum
		}
	}
	if payload.ReleaseDate != "" {
		if t, err := time.Parse(time.RFC3339, payload.ReleaseDate); err == nil {
			info.ReleaseDate = t
		}
	}
	return info
}

// parseUintString tolerates backends that serialize numeric fields as
// strings.
func parseUintString(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
