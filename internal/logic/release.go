package logic

import (
	"context"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/cache"
	"github.com/updatekit/updatekit/internal/config"
	"github.com/updatekit/updatekit/internal/model"
	"github.com/updatekit/updatekit/internal/pkg/errs"
	"github.com/updatekit/updatekit/internal/repo"
	"github.com/updatekit/updatekit/version"
)

type ReleaseLogic struct {
	logger      *zap.Logger
	conf        *config.Config
	releaseRepo *repo.Release
	comparator  *version.Comparator
	rdb         *redis.Client
	sync        *redsync.Redsync
	cacheGroup  *cache.ReleaseCacheGroup
}

func NewReleaseLogic(
	logger *zap.Logger,
	conf *config.Config,
	releaseRepo *repo.Release,
	comparator *version.Comparator,
	rdb *redis.Client,
	sync *redsync.Redsync,
	cacheGroup *cache.ReleaseCacheGroup,
) *ReleaseLogic {
	return &ReleaseLogic{
		logger:      logger,
		conf:        conf,
		releaseRepo: releaseRepo,
		comparator:  comparator,
		rdb:         rdb,
		sync:        sync,
		cacheGroup:  cacheGroup,
	}
}

func (l *ReleaseLogic) Publish(ctx context.Context, packageName string, req model.PublishReleaseRequest) (*model.Release, error) {
	if !model.ValidPlatform(req.Platform) {
		return nil, errs.ErrReleaseInvalidPlatform
	}
	if _, err := version.Parse(req.VersionName); err != nil {
		return nil, errs.ErrReleaseUnparsable
	}

	mutex := l.sync.NewMutex("updatekit:publish:"+packageName+":"+req.Platform,
		redsync.WithExpiry(10*time.Second),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errs.NewUnexpected("failed to acquire publish lock", err)
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			l.logger.Warn("failed to release publish lock",
				zap.Error(err),
			)
		}
	}()

	exists, err := l.releaseRepo.Exists(ctx, packageName, req.Platform, req.VersionName)
	if err != nil {
		return nil, errs.NewUnexpected("failed to check release exists", err)
	}
	if exists {
		return nil, errs.ErrReleaseNameConflict
	}

	release := l.toRelease(packageName, req)
	if err := l.releaseRepo.Save(ctx, release); err != nil {
		return nil, errs.NewUnexpected("failed to save release", err)
	}

	cache.NotifyEvict(ctx, l.rdb, packageName+":"+req.VersionName)

	l.logger.Info("release published",
		zap.String("package", packageName),
		zap.String("platform", req.Platform),
		zap.String("version", req.VersionName),
	)
	return release, nil
}

func (l *ReleaseLogic) toRelease(packageName string, req model.PublishReleaseRequest) *model.Release {
	release := &model.Release{
		ID:                      ksuid.New().String(),
		PackageName:             packageName,
		Platform:                req.Platform,
		VersionName:             req.VersionName,
		ReleaseNotes:            req.ReleaseNotes,
		DownloadURL:             req.DownloadURL,
		IsForced:                req.IsForced,
		IsCritical:              req.IsCritical,
		MinimumSupportedVersion: req.MinimumSupportedVersion,
		FileSizeBytes:           req.FileSizeBytes,
		TestGroup:               req.TestGroup,
		Regions:                 req.Regions,
		Metadata:                req.Metadata,
		PublishedAt:             time.Now(),
	}
	if req.ReleaseDate != "" {
		if t, err := time.Parse(time.RFC3339, req.ReleaseDate); err == nil {
			release.ReleaseDate = t
		}
	}
	if release.DownloadURL != "" && !strings.Contains(release.DownloadURL, "://") && l.conf.Extra.DownloadPrefix != "" {
		release.DownloadURL = strings.TrimSuffix(l.conf.Extra.DownloadPrefix, "/") + "/" + strings.TrimPrefix(release.DownloadURL, "/")
	}
	return release
}

// Latest picks the newest release visible to the requesting client.
func (l *ReleaseLogic) Latest(ctx context.Context, req model.CheckUpdateRequest) (*model.Release, error) {
	cacheKey := cache.GetCacheKey(req.PackageName, req.Platform, req.Region, req.TestGroup)
	val, err := l.cacheGroup.LatestReleaseCache.ComputeIfAbsent(cacheKey, func() (*model.Release, error) {
		return l.findLatest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return *val, nil
}

func (l *ReleaseLogic) findLatest(ctx context.Context, req model.CheckUpdateRequest) (*model.Release, error) {
	releases, err := l.releaseRepo.ListByPackage(ctx, req.PackageName, req.Platform)
	if err != nil {
		return nil, errs.NewUnexpected("failed to list releases", err)
	}

	var latest *model.Release
	for _, release := range releases {
		if !release.VisibleTo(req.Region, req.TestGroup) {
			continue
		}
		if latest == nil {
			latest = release
			continue
		}
		if l.newer(release, latest) {
			latest = release
		}
	}
	if latest == nil {
		return nil, errs.ErrReleaseNotFound
	}
	return latest, nil
}

// newer applies the version comparator; releases whose names cannot be
// compared fall back to publication order.
func (l *ReleaseLogic) newer(a, b *model.Release) bool {
	r := l.comparator.Compare(a.VersionName, b.VersionName)
	if r.Comparable {
		return r.Result == version.Greater
	}
	return a.PublishedAt.After(b.PublishedAt)
}

// BuildPayload renders a release into the wire contract, computing
// is_forced against the client's installed version.
func (l *ReleaseLogic) BuildPayload(release *model.Release, currentVersion string) *model.UpdatePayload {
	payload := &model.UpdatePayload{
		LatestVersion:           release.VersionName,
		CurrentVersion:          currentVersion,
		ReleaseNotes:            release.ReleaseNotes,
		DownloadURL:             release.DownloadURL,
		IsForced:                release.IsForced,
		IsCritical:              release.IsCritical,
		MinimumSupportedVersion: release.MinimumSupportedVersion,
		FileSizeBytes:           release.FileSizeBytes,
		Metadata:                release.Metadata,
	}
	if !release.ReleaseDate.IsZero() {
		payload.ReleaseDate = release.ReleaseDate.UTC().Format(time.RFC3339)
	}
	if !payload.IsForced && release.MinimumSupportedVersion != "" && currentVersion != "" {
		if r := l.comparator.Compare(currentVersion, release.MinimumSupportedVersion); r.Comparable && r.Result == version.Less {
			payload.IsForced = true
		}
	}
	return payload
}
