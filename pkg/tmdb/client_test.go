package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

func TestSearchFiltersPeople(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "alien", r.URL.Query().Get("query"))
		assert.Equal(t, "nl-BE", r.URL.Query().Get("language"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 1, "media_type": "movie", "title": "Alien"},
				{"id": 2, "media_type": "person", "name": "Sigourney Weaver"},
				{"id": 3, "media_type": "tv", "name": "Alien: Earth"}
			],
			"total_pages": 1,
			"total_results": 3
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	paged, err := client.Search(context.Background(), "alien", 1)
	require.NoError(t, err)
	assert.Len(t, paged.Results, 2)
	assert.Equal(t, 3, paged.TotalResults)
}

func TestDetailsAppendsCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 603, "title": "The Matrix", "credits": {"cast": []}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	raw, err := client.Details(context.Background(), types.MediaTypeMovie, 603)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 603, "title": "The Matrix", "credits": {"cast": []}}`, string(raw))
}

func TestDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message": "The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	_, err := client.Details(context.Background(), types.MediaTypeTV, 999999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailsRejectsUnknownMediaType(t *testing.T) {
	client := NewClient("test-key", "http://localhost", "nl-BE")

	_, err := client.Details(context.Background(), types.MediaType("book"), 1)
	assert.Error(t, err)
}

func TestMoviesClampsPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 1, "results": [], "total_pages": 0, "total_results": 0}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	paged, err := client.Movies(context.Background(), MoviesPopular, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, paged.Page)
}

func TestMoviesCategoryPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/top_rated", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 1, "results": [], "total_pages": 0, "total_results": 0}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	_, err := client.Movies(context.Background(), MoviesTopRated, 1)
	require.NoError(t, err)
}

func TestMoviesRejectsUnknownCategory(t *testing.T) {
	client := NewClient("test-key", "http://localhost", "nl-BE")

	_, err := client.Movies(context.Background(), MovieCategory("now_playing"), 1)
	assert.Error(t, err)
}

func TestSeriesCategoryPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/on_the_air", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 1, "results": [], "total_pages": 0, "total_results": 0}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	_, err := client.Series(context.Background(), SeriesOnTheAir, 1)
	require.NoError(t, err)
}

func TestTrendingScopeAndWindowPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/day", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 1, "results": [], "total_pages": 0, "total_results": 0}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "nl-BE")

	_, err := client.Trending(context.Background(), TrendingMovies, WindowDay)
	require.NoError(t, err)
}

func TestTrendingRejectsUnknownWindow(t *testing.T) {
	client := NewClient("test-key", "http://localhost", "nl-BE")

	_, err := client.Trending(context.Background(), TrendingAll, TimeWindow("month"))
	assert.Error(t, err)
}
