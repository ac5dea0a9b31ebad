package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit"
	"github.com/updatekit/updatekit/version"
)

const defaultLookupURL = "https://itunes.apple.com/lookup"

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	Version                   string `json:"version"`
	ReleaseNotes              string `json:"releaseNotes"`
	FileSizeBytes             string `json:"fileSizeBytes"`
	CurrentVersionReleaseDate string `json:"currentVersionReleaseDate"`
	TrackViewURL              string `json:"trackViewUrl"`
}

// PublicLookup queries the public app store lookup endpoint by numeric
// app identifier and region. Used on platforms without a native
// in-app-update SDK.
type PublicLookup struct {
	appID   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewPublicLookup(cfg updatekit.Config, logger *zap.Logger) *PublicLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicLookup{
		appID:   cfg.AppStoreID,
		baseURL: defaultLookupURL,
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		logger: logger,
	}
}

// WithBaseURL points the lookup at a different endpoint, for tests and
// store mirrors.
func (p *PublicLookup) WithBaseURL(baseURL string) *PublicLookup {
	p.baseURL = baseURL
	return p
}

func (p *PublicLookup) Name() string {
	return "public_lookup"
}

func (p *PublicLookup) Resolve(ctx context.Context, req updatekit.CheckRequest) (*updatekit.UpdateInfo, error) {
	if p.appID == "" {
		return nil, nil
	}

	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, nil
	}
	q := u.Query()
	q.Set("id", p.appID)
	if req.Region != "" {
		q.Set("country", req.Region)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Debug("store lookup request failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("store lookup returned non-200",
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}

	var payload lookupResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		p.logger.Debug("store lookup returned malformed payload", zap.Error(err))
		return nil, nil
	}
	if payload.ResultCount == 0 || len(payload.Results) == 0 {
		return nil, nil
	}

	return p.toDescriptor(payload.Results[0], req), nil
}

func (p *PublicLookup) toDescriptor(result lookupResult, req updatekit.CheckRequest) *updatekit.UpdateInfo {
	latest, err := version.Parse(result.Version)
	if err != nil {
		return nil
	}
	current, err := version.Parse(req.CurrentVersion)
	if err != nil {
		return nil
	}

	info := &updatekit.UpdateInfo{
		LatestVersion:  latest,
		CurrentVersion: current,
		ReleaseNotes:   result.ReleaseNotes,
		DownloadURL:    result.TrackViewURL,
		FileSizeBytes:  parseUintString(result.FileSizeBytes),
	}
	if result.CurrentVersionReleaseDate != "" {
		if t, err := time.Parse(time.RFC3339, result.CurrentVersionReleaseDate); err == nil {
			info.ReleaseDate = t
		}
	}
	return info
}
