package updatekit

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/store"
)

// Persisted key layout. The background task and the foreground flow
// share these; both tolerate last-write-wins.
const (
	KeyUpdateInfo       = "update_info"
	KeyLastCheck        = "last_check"
	KeyDismissed        = "dismissed"
	KeyDismissedVersion = "dismissed_version"
	KeyDismissCount     = "dismiss_count"
	KeyConfig           = "config"
)

// CacheEntry is a previously fetched descriptor plus when it was
// fetched. Expiry is a read-time judgement; stale entries stay on disk
// until overwritten.
type CacheEntry struct {
	Descriptor *UpdateInfo `json:"descriptor"`
	FetchedAt  int64       `json:"fetched_at"` // epoch millis
}

// Valid reports whether the entry is still inside ttl at now.
func (e *CacheEntry) Valid(now time.Time, ttl time.Duration) bool {
	if e == nil || e.Descriptor == nil {
		return false
	}
	fetched := time.UnixMilli(e.FetchedAt)
	return now.Sub(fetched) <= ttl
}

// Dismissal records that the user waved away a specific version. It is
// scoped to the exact version string: dismissing "1.2.0" says nothing
// about "1.2.1".
type Dismissal struct {
	Dismissed bool
	Version   string
	Count     uint
}

// Suppresses reports whether a descriptor for latest should stay
// hidden because this exact version was dismissed before.
func (d Dismissal) Suppresses(latest string) bool {
	return d.Dismissed && d.Version == latest
}

// ShouldCheck gates background triggers: check when never checked, or
// when the interval has fully elapsed. Independent of the descriptor
// cache TTL.
func ShouldCheck(lastCheck time.Time, interval time.Duration, now time.Time) bool {
	if lastCheck.IsZero() {
		return true
	}
	return now.Sub(lastCheck) >= interval
}

// StateStore maps the persisted key layout onto a store.Store. Every
// read and write failure is logged and swallowed: persistence is
// best-effort scratch space and must never interrupt a check.
type StateStore struct {
	kv     store.Store
	logger *zap.Logger
}

func NewStateStore(kv store.Store, logger *zap.Logger) *StateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateStore{kv: kv, logger: logger}
}

func (s *StateStore) Entry(ctx context.Context) (*CacheEntry, bool) {
	var entry CacheEntry
	if !s.read(ctx, KeyUpdateInfo, &entry) {
		return nil, false
	}
	return &entry, true
}

func (s *StateStore) PutEntry(ctx context.Context, info *UpdateInfo, now time.Time) {
	s.write(ctx, KeyUpdateInfo, &CacheEntry{
		Descriptor: info,
		FetchedAt:  now.UnixMilli(),
	})
}

func (s *StateStore) LastCheck(ctx context.Context) time.Time {
	var millis int64
	if !s.read(ctx, KeyLastCheck, &millis) {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func (s *StateStore) TouchLastCheck(ctx context.Context, now time.Time) {
	s.write(ctx, KeyLastCheck, now.UnixMilli())
}

func (s *StateStore) Dismissal(ctx context.Context) Dismissal {
	var d Dismissal
	s.read(ctx, KeyDismissed, &d.Dismissed)
	s.read(ctx, KeyDismissedVersion, &d.Version)
	s.read(ctx, KeyDismissCount, &d.Count)
	return d
}

func (s *StateStore) RecordDismissal(ctx context.Context, ver string) {
	prev := s.Dismissal(ctx)
	s.write(ctx, KeyDismissed, true)
	s.write(ctx, KeyDismissedVersion, ver)
	s.write(ctx, KeyDismissCount, prev.Count+1)
}

// SaveConfig persists a copy of the active configuration for the
// background task to pick up.
func (s *StateStore) SaveConfig(ctx context.Context, cfg Config) {
	s.write(ctx, KeyConfig, cfg)
}

func (s *StateStore) LoadConfig(ctx context.Context) (Config, bool) {
	var cfg Config
	if !s.read(ctx, KeyConfig, &cfg) {
		return Config{}, false
	}
	return cfg, true
}

// Clear drops the cached descriptor and all dismissal state.
func (s *StateStore) Clear(ctx context.Context) {
	for _, key := range []string{KeyUpdateInfo, KeyLastCheck, KeyDismissed, KeyDismissedVersion, KeyDismissCount} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Debug("state delete failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func (s *StateStore) read(ctx context.Context, key string, out any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("state read failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return false
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		s.logger.Debug("state decode failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *StateStore) write(ctx context.Context, key string, value any) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		s.logger.Debug("state encode failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.logger.Debug("state write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
