package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/jdverbeke/cinevault-server-go/pkg/cache"
	"github.com/jdverbeke/cinevault-server-go/pkg/memory"
	"github.com/jdverbeke/cinevault-server-go/pkg/metrics"
	"github.com/jdverbeke/cinevault-server-go/pkg/tmdb"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Service proxies the TMDB catalog with a cache in front. Redis is preferred;
// when it is disabled the in-process cache takes over so upstream quota is
// still protected.
type Service struct {
	tmdb   *tmdb.Client
	redis  *cache.RedisClient
	local  *memory.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewService constructs a catalog service.
func NewService(client *tmdb.Client, redis *cache.RedisClient, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		tmdb:   client,
		redis:  redis,
		local:  memory.New(ttl),
		ttl:    ttl,
		logger: logger,
	}
}

// Trending returns the trending list for the given scope and time window.
func (s *Service) Trending(ctx context.Context, scope tmdb.TrendingScope, window tmdb.TimeWindow) (json.RawMessage, error) {
	key := fmt.Sprintf("catalog:trending:%s:%s", scope, window)
	return s.cached(ctx, key, func() (interface{}, error) {
		return s.tmdb.Trending(ctx, scope, window)
	})
}

// Movies returns a movie list page for the given category.
func (s *Service) Movies(ctx context.Context, category tmdb.MovieCategory, page int) (json.RawMessage, error) {
	key := fmt.Sprintf("catalog:movies:%s:%d", category, page)
	return s.cached(ctx, key, func() (interface{}, error) {
		return s.tmdb.Movies(ctx, category, page)
	})
}

// Series returns a TV list page for the given category.
func (s *Service) Series(ctx context.Context, category tmdb.SeriesCategory, page int) (json.RawMessage, error) {
	key := fmt.Sprintf("catalog:series:%s:%d", category, page)
	return s.cached(ctx, key, func() (interface{}, error) {
		return s.tmdb.Series(ctx, category, page)
	})
}

// Search runs a catalog search. Queries are not cached: the key space is
// unbounded and hit rates are poor.
func (s *Service) Search(ctx context.Context, query string, page int) (*tmdb.PagedResults, error) {
	return s.tmdb.Search(ctx, query, page)
}

// Details returns full metadata for one title.
func (s *Service) Details(ctx context.Context, mediaType types.MediaType, id int) (json.RawMessage, error) {
	key := fmt.Sprintf("catalog:details:%s:%d", mediaType, id)
	return s.cached(ctx, key, func() (interface{}, error) {
		return s.tmdb.Details(ctx, mediaType, id)
	})
}

func (s *Service) cached(ctx context.Context, key string, fetch func() (interface{}, error)) (json.RawMessage, error) {
	if raw, ok := s.lookup(ctx, key); ok {
		metrics.RecordCatalogCacheLookup(true)
		return raw, nil
	}
	metrics.RecordCatalogCacheLookup(false)

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, raw)
	return raw, nil
}

func (s *Service) lookup(ctx context.Context, key string) (json.RawMessage, bool) {
	if s.redis != nil && s.redis.Enabled() {
		value, err := s.redis.Get(ctx, key)
		if err == nil {
			return json.RawMessage(value), true
		}
		return nil, false
	}

	if value, ok := s.local.Get(key); ok {
		return json.RawMessage(value), true
	}
	return nil, false
}

func (s *Service) store(ctx context.Context, key string, raw json.RawMessage) {
	if s.redis != nil && s.redis.Enabled() {
		if err := s.redis.Set(ctx, key, string(raw), s.ttl); err != nil {
			s.logger.Warn("failed to cache catalog response", "key", key, "error", err)
		}
		return
	}

	s.local.SetWithTTL(key, string(raw), s.ttl)
}
