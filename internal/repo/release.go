package repo

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/updatekit/updatekit/internal/model"
)

const releaseKeyPrefix = "updatekit:releases:"

// Release persists release manifests in a redis hash per
// package/platform pair, keyed by version name.
type Release struct {
	rdb *redis.Client
}

func NewRelease(rdb *redis.Client) *Release {
	return &Release{
		rdb: rdb,
	}
}

func key(packageName, platform string) string {
	return releaseKeyPrefix + packageName + ":" + platform
}

func (r *Release) Save(ctx context.Context, release *model.Release) error {
	raw, err := sonic.Marshal(release)
	if err != nil {
		return errors.Wrap(err, "marshal release")
	}
	k := key(release.PackageName, release.Platform)
	if err := r.rdb.HSet(ctx, k, release.VersionName, raw).Err(); err != nil {
		return errors.Wrap(err, "save release")
	}
	return nil
}

func (r *Release) Exists(ctx context.Context, packageName, platform, versionName string) (bool, error) {
	ok, err := r.rdb.HExists(ctx, key(packageName, platform), versionName).Result()
	if err != nil {
		return false, errors.Wrap(err, "check release exists")
	}
	return ok, nil
}

// ListByPackage returns every release for the package on the given
// platform plus the platform-agnostic ones.
func (r *Release) ListByPackage(ctx context.Context, packageName, platform string) ([]*model.Release, error) {
	releases, err := r.list(ctx, key(packageName, platform))
	if err != nil {
		return nil, err
	}
	if platform != model.PlatformAny {
		generic, err := r.list(ctx, key(packageName, model.PlatformAny))
		if err != nil {
			return nil, err
		}
		releases = append(releases, generic...)
	}
	return releases, nil
}

func (r *Release) list(ctx context.Context, k string) ([]*model.Release, error) {
	entries, err := r.rdb.HGetAll(ctx, k).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list releases")
	}
	releases := make([]*model.Release, 0, len(entries))
	for _, raw := range entries {
		var release model.Release
		if err := sonic.Unmarshal([]byte(raw), &release); err != nil {
			// skip undecodable manifests instead of failing the check
			continue
		}
		releases = append(releases, &release)
	}
	return releases, nil
}
