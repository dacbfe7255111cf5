package importer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donniepagel-arch/brdc-match-import/pkg/convert"
)

func TestImportMatch(t *testing.T) {
	var got ImportRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "legs": 6}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "brdc-winter-2026", 5*time.Second)
	data := &convert.MatchData{HomeTeam: "Slick Dartos", AwayTeam: "The Bullseyes"}

	result, err := client.ImportMatch("wk3-slick-bullseyes", data)
	require.NoError(t, err)

	assert.Equal(t, "brdc-winter-2026", got.LeagueID)
	assert.Equal(t, "wk3-slick-bullseyes", got.MatchID)
	require.NotNil(t, got.MatchData)
	assert.Equal(t, "Slick Dartos", got.MatchData.HomeTeam)

	assert.Equal(t, true, result["success"])
}

func TestImportMatchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "league not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "x", 5*time.Second)
	_, err := client.ImportMatch("m1", &convert.MatchData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "league not found")
}

func TestImportMatchPlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("imported ok"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "x", 5*time.Second)
	result, err := client.ImportMatch("m1", &convert.MatchData{})
	require.NoError(t, err)
	assert.Equal(t, "imported ok", result["raw"])
}

// statsHandler validates the way the updateImportedMatchStats function
// does: both leagueId and matchId must be present.
func statsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		if req["leagueId"] == "" || req["matchId"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Missing leagueId or matchId"}`))
			return
		}
		w.Write([]byte(`{"updated": 14}`))
	}
}

func TestRefreshStats(t *testing.T) {
	srv := httptest.NewServer(statsHandler(t))
	defer srv.Close()

	client := NewClient("", srv.URL, "brdc-winter-2026", 5*time.Second)
	result, err := client.RefreshStats("wk3-slick-bullseyes")
	require.NoError(t, err)
	assert.Equal(t, float64(14), result["updated"])
}

func TestRefreshStatsRequiresMatchID(t *testing.T) {
	srv := httptest.NewServer(statsHandler(t))
	defer srv.Close()

	client := NewClient("", srv.URL, "brdc-winter-2026", 5*time.Second)
	_, err := client.RefreshStats("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestImportMatchConnectionError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", "x", 500*time.Millisecond)
	_, err := client.ImportMatch("m1", &convert.MatchData{})
	assert.Error(t, err)
}
