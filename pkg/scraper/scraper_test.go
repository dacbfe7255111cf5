package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>recap</html>"))
	}))
	defer srv.Close()

	content, err := FetchURL(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>recap</html>", content)
}

func TestFetchURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchURL(srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{\rtf1 report}`))
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "week3.rtf")
	require.NoError(t, DownloadFile(srv.URL, local))

	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, `{\rtf1 report}`, string(data))
}

func TestDownloadFileNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "week3.rtf")
	require.Error(t, DownloadFile(srv.URL, local))
	_, err := os.Stat(local)
	assert.True(t, os.IsNotExist(err), "no file on a failed download")
}

func TestSaveContentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, SaveContentToFile(path, "Game 1.1 - 501"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Game 1.1 - 501", string(data))
}

func TestExtractExportLinks(t *testing.T) {
	html := `<html><body>
		<a href="/exports/week3.rtf">RTF</a>
		<a href="week3.PDF">PDF</a>
		<a href="https://dartconnect.test/match/export?id=42">Export</a>
		<a href="/recap/week4.html">Next week</a>
		<a>no href</a>
	</body></html>`

	links := ExtractExportLinks(html)
	assert.Equal(t, []string{
		"/exports/week3.rtf",
		"week3.PDF",
		"https://dartconnect.test/match/export?id=42",
	}, links)
}

func TestExtractExportLinksNoMatches(t *testing.T) {
	assert.Empty(t, ExtractExportLinks(`<html><a href="/standings.html">standings</a></html>`))
	assert.Empty(t, ExtractExportLinks("not html at all"))
}

func TestResolveRelativeURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		relative string
		want     string
	}{
		{
			name:     "absolute link passes through",
			base:     "https://dartconnect.test/recap/week3.html",
			relative: "https://cdn.test/exports/week3.rtf",
			want:     "https://cdn.test/exports/week3.rtf",
		},
		{
			name:     "relative link resolves against the page directory",
			base:     "https://dartconnect.test/recap/week3.html",
			relative: "week3.rtf",
			want:     "https://dartconnect.test/recap/week3.rtf",
		},
		{
			name:     "rooted link resolves against the host",
			base:     "https://dartconnect.test/recap/week3.html",
			relative: "/exports/week3.rtf",
			want:     "https://dartconnect.test/exports/week3.rtf",
		},
		{
			name:     "scheme-less base assumes https",
			base:     "dartconnect.test/recap/week3.html",
			relative: "week3.rtf",
			want:     "https://dartconnect.test/recap/week3.rtf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRelativeURL(tt.base, tt.relative))
		})
	}
}
