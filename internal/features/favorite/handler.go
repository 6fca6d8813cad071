package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Handler processes favorite HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a favorite handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns the authenticated user's favorites.
func (h *Handler) List(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	params := pagination.Extract(c)
	mediaType := types.MediaType(c.Query("mediaType"))

	favorites, total, err := List(h.db, usr.ID, mediaType, params)
	if err != nil {
		h.respondError(c, err, "failed to list favorites")
		return
	}

	response.Success(c, http.StatusOK, favorites, "", pagination.MetadataFrom(total, params))
}

type addRequest struct {
	MediaID      int64   `json:"mediaId" binding:"required"`
	MediaType    string  `json:"mediaType" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	PosterPath   *string `json:"posterPath"`
	BackdropPath *string `json:"backdropPath"`
	Overview     string  `json:"overview"`
	ReleaseDate  *string `json:"releaseDate"`
	VoteAverage  float64 `json:"voteAverage"`
}

// Add favorites a title for the authenticated user.
func (h *Handler) Add(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid favorite payload", err)
		return
	}

	fav, err := Add(h.db, usr.ID, AddInput{
		MediaID:      req.MediaID,
		MediaType:    types.MediaType(req.MediaType),
		Title:        req.Title,
		PosterPath:   req.PosterPath,
		BackdropPath: req.BackdropPath,
		Overview:     req.Overview,
		ReleaseDate:  req.ReleaseDate,
		VoteAverage:  req.VoteAverage,
	})
	if err != nil {
		h.respondError(c, err, "failed to add favorite")
		return
	}

	response.Created(c, fav, "Added to favorites")
}

// Remove unfavorites a title for the authenticated user.
func (h *Handler) Remove(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	mediaType := types.MediaType(c.Param("mediaType"))
	mediaID, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid media id", err)
		return
	}

	if err := Remove(h.db, usr.ID, mediaType, mediaID); err != nil {
		h.respondError(c, err, "failed to remove favorite")
		return
	}

	response.Success(c, http.StatusOK, nil, "Removed from favorites", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidMediaType):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, ErrInvalidMediaType.Error(), err)
	case errors.Is(err, ErrFavoriteNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Favorite not found", err)
	default:
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, fallback, err)
	}
}
