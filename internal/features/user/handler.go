package user

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/favorite"
	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Handler processes user HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a user handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// profileResponse is the account page payload.
type profileResponse struct {
	ID                uuid.UUID          `json:"id"`
	Email             string             `json:"email"`
	Role              types.Role         `json:"role"`
	ProfilePictureURL *string            `json:"profilePictureUrl,omitempty"`
	LicenseKey        *string            `json:"licenseKey"`
	LicenseExpiresAt  *time.Time         `json:"licenseExpiresAt,omitempty"`
	LicenseState      types.LicenseState `json:"licenseState"`
	FavoriteMovieIDs  []int64            `json:"favoriteMovieIds"`
	FavoriteSeriesIDs []int64            `json:"favoriteSeriesIds"`
}

// Me returns the authenticated user's profile with license state and
// favorite IDs, matching what the account page renders.
func (h *Handler) Me(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	movieIDs, seriesIDs, err := favorite.ListIDs(h.db, usr.ID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load favorites", err)
		return
	}

	profile := profileResponse{
		ID:                usr.ID,
		Email:             usr.Email,
		Role:              usr.Role,
		ProfilePictureURL: usr.ProfilePictureURL,
		LicenseKey:        usr.LicenseKey,
		LicenseExpiresAt:  usr.LicenseExpiresAt,
		LicenseState:      usr.LicenseState(time.Now()),
		FavoriteMovieIDs:  movieIDs,
		FavoriteSeriesIDs: seriesIDs,
	}

	response.Success(c, http.StatusOK, profile, "", nil)
}

// List returns paginated users with filters. Admin only.
func (h *Handler) List(c *gin.Context) {
	params := pagination.Extract(c)

	filters := ListFilters{
		Keyword: c.Query("filterKeyword"),
	}

	if role := c.Query("role"); role != "" {
		filters.Role = types.Role(role)
	}

	switch c.Query("licensed") {
	case "true":
		licensed := true
		filters.Licensed = &licensed
	case "false":
		licensed := false
		filters.Licensed = &licensed
	}

	users, total, err := List(h.db, filters, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, users, "", pagination.MetadataFrom(total, params))
}

// GetByID returns a single user. Admin only.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	usr, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to fetch user")
		return
	}

	response.Success(c, http.StatusOK, usr, "", nil)
}

type createRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Create inserts a new user. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user payload", err)
		return
	}

	if !emailRegex.MatchString(req.Email) {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid email format", nil)
		return
	}

	role := types.RoleUser
	if req.Role != "" {
		role = types.Role(req.Role)
		if role != types.RoleUser && role != types.RoleAdmin {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid role", nil)
			return
		}
	}

	usr, err := Create(h.db, CreateInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.respondError(c, err, "failed to create user")
		return
	}

	response.Created(c, usr, "User created successfully")
}

type updateRequest struct {
	Email             *string `json:"email"`
	Password          *string `json:"password"`
	Role              *string `json:"role"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// Update modifies a user. Admin only.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user payload", err)
		return
	}

	input := UpdateInput{
		Email:    req.Email,
		Password: req.Password,
	}

	if req.Email != nil && !emailRegex.MatchString(*req.Email) {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid email format", nil)
		return
	}

	if req.Role != nil {
		role := types.Role(*req.Role)
		if role != types.RoleUser && role != types.RoleAdmin {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid role", nil)
			return
		}
		input.Role = &role
	}

	if req.ProfilePictureURL != nil {
		input.ProfilePictureURL = req.ProfilePictureURL
		input.PictureProvided = true
	}

	usr, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update user")
		return
	}

	response.Success(c, http.StatusOK, usr, "User updated successfully", nil)
}

// Delete removes a user. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if requester, ok := middleware.GetUserFromContext(c); ok && requester.ID == id {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete user")
		return
	}

	response.Success(c, http.StatusOK, nil, "User deleted successfully", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, ErrEmailTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Email already in use", err)
	case errors.Is(err, ErrInvalidPassword):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, ErrInvalidPassword.Error(), err)
	case errors.Is(err, ErrInvalidCredentials):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid email", err)
	default:
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, fallback, err)
	}
}
