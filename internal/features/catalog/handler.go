package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/tmdb"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Handler processes catalog HTTP requests.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a catalog handler instance.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Trending returns the trending titles for an optional scope and window.
func (h *Handler) Trending(c *gin.Context) {
	scope := tmdb.TrendingScope(c.DefaultQuery("type", string(tmdb.TrendingAll)))
	if !scope.Valid() {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "type must be all, movie or tv", nil)
		return
	}

	window := tmdb.TimeWindow(c.DefaultQuery("window", string(tmdb.WindowWeek)))
	if !window.Valid() {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "window must be day or week", nil)
		return
	}

	raw, err := h.service.Trending(c.Request.Context(), scope, window)
	if err != nil {
		h.respondError(c, err, "failed to fetch trending titles")
		return
	}

	writeRawJSON(c, raw)
}

// Movies returns a movie list page for an optional category.
func (h *Handler) Movies(c *gin.Context) {
	category := tmdb.MovieCategory(c.DefaultQuery("category", string(tmdb.MoviesPopular)))
	if !category.Valid() {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "category must be popular, top_rated or upcoming", nil)
		return
	}

	raw, err := h.service.Movies(c.Request.Context(), category, pageParam(c))
	if err != nil {
		h.respondError(c, err, "failed to fetch movies")
		return
	}

	writeRawJSON(c, raw)
}

// Series returns a TV list page for an optional category.
func (h *Handler) Series(c *gin.Context) {
	category := tmdb.SeriesCategory(c.DefaultQuery("category", string(tmdb.SeriesPopular)))
	if !category.Valid() {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "category must be popular, top_rated or on_the_air", nil)
		return
	}

	raw, err := h.service.Series(c.Request.Context(), category, pageParam(c))
	if err != nil {
		h.respondError(c, err, "failed to fetch series")
		return
	}

	writeRawJSON(c, raw)
}

// Search searches movies and series by title.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "query parameter is required", nil)
		return
	}

	paged, err := h.service.Search(c.Request.Context(), query, pageParam(c))
	if err != nil {
		h.respondError(c, err, "search failed")
		return
	}

	response.Success(c, http.StatusOK, paged, "", nil)
}

// Details returns full metadata for one title.
func (h *Handler) Details(c *gin.Context) {
	mediaType := types.MediaType(c.Param("mediaType"))
	if !mediaType.Valid() {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "media type must be movie or tv", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid media id", err)
		return
	}

	raw, err := h.service.Details(c.Request.Context(), mediaType, id)
	if err != nil {
		h.respondError(c, err, "failed to fetch details")
		return
	}

	writeRawJSON(c, raw)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Title not found", err)
	default:
		response.ErrorWithLog(h.logger, c, http.StatusBadGateway, fallback, err)
	}
}

// writeRawJSON forwards an upstream JSON body without re-encoding it.
func writeRawJSON(c *gin.Context, raw []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
