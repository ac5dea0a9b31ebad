package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/updatekit/updatekit"
)

func testRequest() updatekit.CheckRequest {
	return updatekit.CheckRequest{
		Platform:       "android",
		CurrentVersion: "1.0.0",
		BuildNumber:    "100",
		PackageName:    "com.example.app",
		Region:         "de",
		TestGroup:      "beta",
	}
}

func backendFor(t *testing.T, srv *httptest.Server) *CustomBackend {
	t.Helper()
	cfg := updatekit.Config{
		CustomUpdateURL: srv.URL,
		CustomHeaders:   map[string]string{"X-Api-Key": "k1"},
		CustomUserAgent: "updatekit-test/1.0",
	}
	return NewCustomBackend(cfg, nil)
}

func TestCustomBackendResolve(t *testing.T) {
	var gotQuery map[string]string
	var gotHeader http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latest_version": "1.2.0",
			"release_notes": "bug fixes",
			"download_url": "https://cdn.example.com/app-1.2.0.apk",
			"is_critical": true,
			"minimum_supported_version": "0.9.0",
			"file_size_bytes": 25600000,
			"release_date": "2024-01-15T10:30:00Z",
			"metadata": {"rollout": "50"}
		}`))
	}))
	defer srv.Close()

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, info)

	require.Equal(t, "1.2.0", info.LatestVersion.String())
	require.Equal(t, "1.0.0", info.CurrentVersion.String(), "current filled from request")
	require.True(t, info.UpdateAvailable())
	require.True(t, info.IsCritical)
	require.False(t, info.IsForced)
	require.False(t, info.BelowMinimum())
	require.Equal(t, uint64(25600000), info.FileSizeBytes)
	require.Equal(t, "bug fixes", info.ReleaseNotes)
	require.Equal(t, 2024, info.ReleaseDate.Year())
	require.Equal(t, "50", info.Metadata["rollout"])

	require.Equal(t, "android", gotQuery["platform"])
	require.Equal(t, "1.0.0", gotQuery["current_version"])
	require.Equal(t, "100", gotQuery["build_number"])
	require.Equal(t, "com.example.app", gotQuery["package_name"])
	require.Equal(t, "de", gotQuery["region"])
	require.Equal(t, "beta", gotQuery["test_group"])
	require.Equal(t, "k1", gotHeader.Get("X-Api-Key"))
	require.Equal(t, "updatekit-test/1.0", gotHeader.Get("User-Agent"))
}

func TestCustomBackendNon200IsNoUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestCustomBackendMalformedJSONIsNoUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"latest_version": `))
	}))
	defer srv.Close()

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestCustomBackendMissingLatestIsNoUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"release_notes": "nothing to see"}`))
	}))
	defer srv.Close()

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestCustomBackendUnreachableIsNoUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestCustomBackendUnconfigured(t *testing.T) {
	b := NewCustomBackend(updatekit.Config{}, nil)
	info, err := b.Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestCustomBackendExplicitCurrentVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"latest_version": "1.2.0", "current_version": "1.1.0", "is_forced": true}`))
	}))
	defer srv.Close()

	info, err := backendFor(t, srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, "1.1.0", info.CurrentVersion.String())
	require.True(t, info.IsForced)
	require.True(t, info.Forced())
}
