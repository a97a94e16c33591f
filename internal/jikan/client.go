// Package jikan is a minimal client for the public Jikan API, used to
// proxy the current seasonal-anime feed.
package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SeasonalAnime is the trimmed-down view the frontend consumes.
type SeasonalAnime struct {
	Title    string   `json:"title"`
	ImageURL string   `json:"image_url"`
	Genres   []string `json:"genres"`
}

// Client calls the Jikan API.  BaseURL points at the API root
// (e.g. "https://api.jikan.moe/v4") so tests can swap in a local server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client with a bounded request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// seasonNowResponse mirrors just the parts of the upstream payload we
// keep: title, the jpg image URL and genre names.
type seasonNowResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Images struct {
			JPG struct {
				ImageURL string `json:"image_url"`
			} `json:"jpg"`
		} `json:"images"`
		Genres []struct {
			Name string `json:"name"`
		} `json:"genres"`
	} `json:"data"`
}

// SeasonNow fetches the animes of the current season and maps them to the
// trimmed SeasonalAnime form.
func (c *Client) SeasonNow(ctx context.Context) ([]SeasonalAnime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/seasons/now", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jikan: unexpected status %d", resp.StatusCode)
	}

	var payload seasonNowResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jikan: decode response: %w", err)
	}

	out := make([]SeasonalAnime, 0, len(payload.Data))
	for _, a := range payload.Data {
		genres := make([]string, 0, len(a.Genres))
		for _, g := range a.Genres {
			genres = append(genres, g.Name)
		}
		out = append(out, SeasonalAnime{
			Title:    a.Title,
			ImageURL: a.Images.JPG.ImageURL,
			Genres:   genres,
		})
	}
	return out, nil
}
