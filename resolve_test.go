package updatekit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	info  *UpdateInfo
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Resolve(_ context.Context, _ CheckRequest) (*UpdateInfo, error) {
	s.calls++
	return s.info, s.err
}

type stubNetwork struct {
	wifi bool
}

func (n stubNetwork) OnWiFi(_ context.Context) bool { return n.wifi }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testConfig() Config {
	return Config{CustomUpdateURL: "https://updates.example.com/check"}
}

func TestResolverWiFiPolicy(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.WiFiOnly = true
	src := &stubSource{name: "stub", info: desc("1.2.0", "1.0.0")}

	r := NewResolver(cfg, []Source{src}, nil, stubNetwork{wifi: false}, nil, nil)
	_, err := r.Resolve(ctx, CheckRequest{})
	require.ErrorIs(t, err, ErrNetworkPolicy)
	require.Zero(t, src.calls, "no request before the policy gate")

	// no classifier at all also fails closed
	r = NewResolver(cfg, []Source{src}, nil, nil, nil, nil)
	_, err = r.Resolve(ctx, CheckRequest{})
	require.ErrorIs(t, err, ErrNetworkPolicy)

	r = NewResolver(cfg, []Source{src}, nil, stubNetwork{wifi: true}, nil, nil)
	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err)
	require.NotNil(t, info)
}

func TestResolverCacheFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewStateStore(newMapStore(), nil)
	state.PutEntry(ctx, desc("1.5.0", "1.0.0"), now.Add(-time.Hour))

	src := &stubSource{name: "stub", info: desc("9.9.9", "1.0.0")}
	r := NewResolver(testConfig(), []Source{src}, state, nil, fixedClock(now), nil)

	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err)
	require.Equal(t, "1.5.0", info.LatestVersion.String())
	require.Zero(t, src.calls, "strict cache-first skips the network entirely")
}

func TestResolverExpiredCacheGoesToSource(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewStateStore(newMapStore(), nil)
	state.PutEntry(ctx, desc("1.5.0", "1.0.0"), now.Add(-7*time.Hour))

	src := &stubSource{name: "stub", info: desc("2.0.0", "1.0.0")}
	r := NewResolver(testConfig(), []Source{src}, state, nil, fixedClock(now), nil)

	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err)
	require.Equal(t, "2.0.0", info.LatestVersion.String())
	require.Equal(t, 1, src.calls)

	// the fresh result replaced the expired entry
	entry, ok := state.Entry(ctx)
	require.True(t, ok)
	require.Equal(t, now.UnixMilli(), entry.FetchedAt)
}

func TestResolverCachingDisabled(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewStateStore(newMapStore(), nil)
	state.PutEntry(ctx, desc("1.5.0", "1.0.0"), now.Add(-time.Minute))

	cfg := testConfig()
	cfg.DisableCaching = true
	src := &stubSource{name: "stub", info: desc("2.0.0", "1.0.0")}
	r := NewResolver(cfg, []Source{src}, state, nil, fixedClock(now), nil)

	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err)
	require.Equal(t, "2.0.0", info.LatestVersion.String())
	require.Equal(t, 1, src.calls)
}

func TestResolverShortCircuitOrder(t *testing.T) {
	ctx := context.Background()
	first := &stubSource{name: "first"}
	failing := &stubSource{name: "failing", err: errors.New("boom")}
	last := &stubSource{name: "last", info: desc("1.1.0", "1.0.0")}

	r := NewResolver(testConfig(), []Source{first, failing, last}, nil, nil, nil, nil)

	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, "1.1.0", info.LatestVersion.String())
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, last.calls)
}

func TestResolverAllSourcesEmpty(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(testConfig(), []Source{
		&stubSource{name: "a"},
		&stubSource{name: "b", err: errors.New("boom")},
	}, nil, nil, nil, nil)

	info, err := r.Resolve(ctx, CheckRequest{})
	require.NoError(t, err, "source failures degrade to no update")
	require.Nil(t, info)
}
