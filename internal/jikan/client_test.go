package jikan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonNowBody = `{
  "data": [
    {
      "title": "Ojamajo Doremi",
      "images": {"jpg": {"image_url": "https://cdn.example/doremi.jpg"}},
      "genres": [{"name": "Comedy"}, {"name": "Magic"}]
    },
    {
      "title": "Shirokuma Cafe",
      "images": {"jpg": {"image_url": "https://cdn.example/shirokuma.jpg"}},
      "genres": []
    }
  ]
}`

func TestSeasonNow_MapsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seasons/now", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seasonNowBody))
	}))
	defer srv.Close()

	animes, err := NewClient(srv.URL).SeasonNow(context.Background())
	require.NoError(t, err)
	require.Len(t, animes, 2)

	assert.Equal(t, "Ojamajo Doremi", animes[0].Title)
	assert.Equal(t, "https://cdn.example/doremi.jpg", animes[0].ImageURL)
	assert.Equal(t, []string{"Comedy", "Magic"}, animes[0].Genres)
	assert.Empty(t, animes[1].Genres)
}

func TestSeasonNow_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SeasonNow(context.Background())
	assert.Error(t, err)
}

func TestSeasonNow_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SeasonNow(context.Background())
	assert.Error(t, err)
}
