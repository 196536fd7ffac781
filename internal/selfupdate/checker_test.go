package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		available bool
	}{
		{"newer release", "v1.0.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"older release", "v2.0.0", "v1.2.0", false},
		{"missing v prefix", "1.0.0", "v1.0.1", true},
		{"dev build", "(devel)", "v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/abdulsamadj00-tech/Abdul-Samad/releases/latest", r.URL.Path)
				assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
				_, _ = w.Write([]byte(`{"tag_name":"` + tt.tag + `","html_url":"https://example.com/release"}`))
			}))
			defer server.Close()

			result, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, result.UpdateAvailable)
			assert.Equal(t, tt.tag, result.LatestVersion)
			assert.Equal(t, tt.current, result.CurrentVersion)
			assert.Equal(t, "https://example.com/release", result.ReleaseURL)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("missing tag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.Error(t, err)
	})

	t.Run("custom repo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/repos/someone/fork/releases/latest" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"tag_name":"v3.0.0"}`))
		}))
		defer server.Close()

		result, err := NewChecker(WithBaseURL(server.URL), WithRepo("someone", "fork")).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
	})
}

func TestCheckListsAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","assets":[{"name":"memorymaster_1.4.0_linux_amd64.tar.gz","browser_download_url":"https://example.com/a","size":42}]}`))
	}))
	defer server.Close()

	result, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.3.0"})
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)
	assert.Equal(t, Asset{Name: "memorymaster_1.4.0_linux_amd64.tar.gz", DownloadURL: "https://example.com/a", Size: 42}, result.Assets[0])
}
