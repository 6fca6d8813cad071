package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Client handles TMDB API operations. Responses are kept as raw JSON so the
// catalog endpoints can proxy them without re-modelling the TMDB schema.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// NewClient creates a new TMDB client.
func NewClient(apiKey, baseURL, language string) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PagedResults mirrors TMDB's paginated list envelope.
type PagedResults struct {
	Page         int               `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// TrendingScope selects which media appear in the trending feed.
type TrendingScope string

const (
	TrendingAll    TrendingScope = "all"
	TrendingMovies TrendingScope = "movie"
	TrendingSeries TrendingScope = "tv"
)

// Valid reports whether the scope is one of the supported values.
func (s TrendingScope) Valid() bool {
	return s == TrendingAll || s == TrendingMovies || s == TrendingSeries
}

// TimeWindow selects the trending aggregation period.
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// Valid reports whether the window is one of the supported values.
func (w TimeWindow) Valid() bool {
	return w == WindowDay || w == WindowWeek
}

// MovieCategory names a TMDB movie list.
type MovieCategory string

const (
	MoviesPopular  MovieCategory = "popular"
	MoviesTopRated MovieCategory = "top_rated"
	MoviesUpcoming MovieCategory = "upcoming"
)

// Valid reports whether the category is one of the supported movie lists.
func (m MovieCategory) Valid() bool {
	return m == MoviesPopular || m == MoviesTopRated || m == MoviesUpcoming
}

// SeriesCategory names a TMDB TV list.
type SeriesCategory string

const (
	SeriesPopular  SeriesCategory = "popular"
	SeriesTopRated SeriesCategory = "top_rated"
	SeriesOnTheAir SeriesCategory = "on_the_air"
)

// Valid reports whether the category is one of the supported TV lists.
func (s SeriesCategory) Valid() bool {
	return s == SeriesPopular || s == SeriesTopRated || s == SeriesOnTheAir
}

// Trending fetches the trending list for the given scope and time window.
func (c *Client) Trending(ctx context.Context, scope TrendingScope, window TimeWindow) (*PagedResults, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("unsupported trending scope: %s", scope)
	}
	if !window.Valid() {
		return nil, fmt.Errorf("unsupported time window: %s", window)
	}

	return c.fetchPaged(ctx, fmt.Sprintf("/trending/%s/%s", scope, window), nil)
}

// Movies fetches a movie list for the given category and page.
func (c *Client) Movies(ctx context.Context, category MovieCategory, page int) (*PagedResults, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unsupported movie category: %s", category)
	}

	return c.fetchPaged(ctx, fmt.Sprintf("/movie/%s", category), pageParams(page))
}

// Series fetches a TV list for the given category and page.
func (c *Client) Series(ctx context.Context, category SeriesCategory, page int) (*PagedResults, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unsupported series category: %s", category)
	}

	return c.fetchPaged(ctx, fmt.Sprintf("/tv/%s", category), pageParams(page))
}

// Search runs a multi-search and filters out person results, since the
// catalog only deals in movies and series.
func (c *Client) Search(ctx context.Context, query string, page int) (*PagedResults, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	paged, err := c.fetchPaged(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}

	filtered := make([]json.RawMessage, 0, len(paged.Results))
	for _, raw := range paged.Results {
		var probe struct {
			MediaType string `json:"media_type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			continue
		}
		if probe.MediaType == "movie" || probe.MediaType == "tv" {
			filtered = append(filtered, raw)
		}
	}
	paged.Results = filtered

	return paged, nil
}

// Details fetches full metadata for a single movie or series, with the
// credits appended so detail pages can render cast lists in one request.
func (c *Client) Details(ctx context.Context, mediaType types.MediaType, id int) (json.RawMessage, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("unsupported media type: %s", mediaType)
	}

	params := url.Values{}
	params.Set("append_to_response", "credits")

	return c.fetch(ctx, fmt.Sprintf("/%s/%d", mediaType, id), params)
}

func (c *Client) fetchPaged(ctx context.Context, path string, params url.Values) (*PagedResults, error) {
	body, err := c.fetch(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var paged PagedResults
	if err := json.Unmarshal(body, &paged); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &paged, nil
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CineVault-Server-Go/1.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	return body, nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	if page < 1 {
		page = 1
	}
	params.Set("page", fmt.Sprintf("%d", page))
	return params
}
