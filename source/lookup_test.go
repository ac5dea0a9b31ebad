package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/updatekit/updatekit"
)

func lookupFor(srv *httptest.Server) *PublicLookup {
	return NewPublicLookup(updatekit.Config{AppStoreID: "123456789"}, nil).WithBaseURL(srv.URL)
}

func TestPublicLookupResolve(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"id":      r.URL.Query().Get("id"),
			"country": r.URL.Query().Get("country"),
		}
		w.Write([]byte(`{
			"resultCount": 1,
			"results": [{
				"version": "2.1.0",
				"releaseNotes": "performance improvements",
				"fileSizeBytes": "25600000",
				"currentVersionReleaseDate": "2024-01-15T10:30:00Z",
				"trackViewUrl": "https://apps.example.com/app/id123456789"
			}]
		}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.Platform = "ios"
	info, err := lookupFor(srv).Resolve(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, info)

	require.Equal(t, "2.1.0", info.LatestVersion.String())
	require.Equal(t, "1.0.0", info.CurrentVersion.String())
	require.True(t, info.UpdateAvailable())
	require.Equal(t, uint64(25600000), info.FileSizeBytes)
	require.Equal(t, "performance improvements", info.ReleaseNotes)
	require.Equal(t, "https://apps.example.com/app/id123456789", info.DownloadURL)
	require.Equal(t, 2024, info.ReleaseDate.Year())

	require.Equal(t, "123456789", gotQuery["id"])
	require.Equal(t, "de", gotQuery["country"])
}

func TestPublicLookupNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"resultCount": 0, "results": []}`))
	}))
	defer srv.Close()

	info, err := lookupFor(srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestPublicLookupNon200IsNoUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	info, err := lookupFor(srv).Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestPublicLookupUnconfigured(t *testing.T) {
	p := NewPublicLookup(updatekit.Config{}, nil)
	info, err := p.Resolve(context.Background(), testRequest())
	require.NoError(t, err)
	require.Nil(t, info)
}
