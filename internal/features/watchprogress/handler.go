package watchprogress

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

// Handler processes watch progress HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a watch progress handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns the authenticated user's continue-watching list.
func (h *Handler) List(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	params := pagination.Extract(c)

	rows, total, err := List(h.db, usr.ID, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list watch progress", err)
		return
	}

	response.Success(c, http.StatusOK, rows, "", pagination.MetadataFrom(total, params))
}

type upsertRequest struct {
	MediaID         int64   `json:"mediaId" binding:"required"`
	MediaType       string  `json:"mediaType" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	PosterPath      *string `json:"posterPath"`
	BackdropPath    *string `json:"backdropPath"`
	Overview        string  `json:"overview"`
	ReleaseDate     *string `json:"releaseDate"`
	VoteAverage     float64 `json:"voteAverage"`
	Season          *int    `json:"season"`
	Episode         *int    `json:"episode"`
	ProgressSeconds float64 `json:"progressSeconds"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// Upsert records a progress beacon from the player.
func (h *Handler) Upsert(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid progress payload", err)
		return
	}

	row, err := Upsert(h.db, usr.ID, UpsertInput{
		MediaID:         req.MediaID,
		MediaType:       types.MediaType(req.MediaType),
		Title:           req.Title,
		PosterPath:      req.PosterPath,
		BackdropPath:    req.BackdropPath,
		Overview:        req.Overview,
		ReleaseDate:     req.ReleaseDate,
		VoteAverage:     req.VoteAverage,
		Season:          req.Season,
		Episode:         req.Episode,
		ProgressSeconds: req.ProgressSeconds,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		h.respondError(c, err, "failed to save watch progress")
		return
	}

	response.Success(c, http.StatusOK, row, "Progress saved", nil)
}

// Get returns progress for a single title.
func (h *Handler) Get(c *gin.Context) {
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

	row, err := Get(h.db, usr.ID, mediaType, mediaID)
	if err != nil {
		h.respondError(c, err, "failed to fetch watch progress")
		return
	}

	response.Success(c, http.StatusOK, row, "", nil)
}

// Delete removes a title from continue watching.
func (h *Handler) Delete(c *gin.Context) {
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

	if err := Delete(h.db, usr.ID, mediaType, mediaID); err != nil {
		h.respondError(c, err, "failed to delete watch progress")
		return
	}

	response.Success(c, http.StatusOK, nil, "Progress removed", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidMediaType), errors.Is(err, ErrInvalidProgress):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, ErrProgressNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Watch progress not found", err)
	default:
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, fallback, err)
	}
}
