// Package analyzer provides an HTTP client for the optional remote
// analysis service. Every failure surfaces as an error so the caller can
// fall back to the local classifier.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beka-birhanu/mindmaze-api/game/profile"
)

const defaultTimeout = 3 * time.Second

// Client calls the remote analysis peer.
// Implements i.Analyzer.
type Client struct {
	baseURL string
	http    *http.Client
}

type analyzeRequest struct {
	Moves       int `json:"moves"`
	TimeTaken   int `json:"timeTaken"`
	Hesitations int `json:"hesitations"`
	Decisions   int `json:"decisions"`
}

type analyzeResponse struct {
	Profile *profile.Profile `json:"profile"`
}

// NewClient creates a Client for the analysis service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("analyzer base URL is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Analyze posts the final metrics and returns the peer's profile.
func (c *Client) Analyze(ctx context.Context, moves, timeTakenSeconds, hesitations, decisions int) (*profile.Profile, error) {
	body, err := json.Marshal(analyzeRequest{
		Moves:       moves,
		TimeTaken:   timeTakenSeconds,
		Hesitations: hesitations,
		Decisions:   decisions,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze/game", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer responded with status %d", resp.StatusCode)
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Profile == nil {
		return nil, errors.New("analyzer response missing profile")
	}
	return decoded.Profile, nil
}
