// Package importer posts converted match data to the league's cloud
// functions.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donniepagel-arch/brdc-match-import/pkg/convert"
)

// Client talks to the league backend.
type Client struct {
	ImportURL string
	StatsURL  string
	LeagueID  string

	httpClient *http.Client
}

// NewClient creates a client for the given endpoints. A zero timeout
// falls back to 30 seconds.
func NewClient(importURL, statsURL, leagueID string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		ImportURL:  importURL,
		StatsURL:   statsURL,
		LeagueID:   leagueID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ImportRequest is the importMatchData function's body.
type ImportRequest struct {
	LeagueID  string             `json:"leagueId"`
	MatchID   string             `json:"matchId"`
	MatchData *convert.MatchData `json:"matchData"`
}

// ImportMatch uploads one match's converted data.
func (c *Client) ImportMatch(matchID string, data *convert.MatchData) (map[string]interface{}, error) {
	return c.post(c.ImportURL, ImportRequest{
		LeagueID:  c.LeagueID,
		MatchID:   matchID,
		MatchData: data,
	})
}

// RefreshStats asks the backend to recompute standings from one imported
// match. The function rejects requests without a match ID, so the refresh
// runs per match, not once per batch.
func (c *Client) RefreshStats(matchID string) (map[string]interface{}, error) {
	return c.post(c.StatsURL, map[string]string{
		"leagueId": c.LeagueID,
		"matchId":  matchID,
	})
}

func (c *Client) post(url string, body interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error posting to %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status %d: %s", url, resp.StatusCode, string(raw))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		// Some functions answer with a plain string on success.
		return map[string]interface{}{"raw": string(raw)}, nil
	}
	return result, nil
}
