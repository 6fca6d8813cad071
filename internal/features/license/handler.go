package license

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/metrics"
	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/request"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Handler processes license HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a license handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type claimRequest struct {
	Key string `json:"key" binding:"required"`
}

type claimResponse struct {
	Key              string     `json:"key"`
	ClaimedAt        *time.Time `json:"claimedAt"`
	LicenseExpiresAt *time.Time `json:"licenseExpiresAt,omitempty"`
}

// Claim activates a license key for the authenticated user.
func (h *Handler) Claim(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		metrics.RecordLicenseClaim("unauthenticated")
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordLicenseClaim("invalid_input")
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid claim payload", err)
		return
	}

	now := time.Now()
	claimed, err := Claim(h.db, usr.ID, req.Key, now)
	if err != nil {
		h.respondClaimError(c, err)
		return
	}

	metrics.RecordLicenseClaim("success")
	h.logger.Info("license claimed",
		slog.String("key", claimed.Key),
		slog.String("user_id", usr.ID.String()),
	)

	var expiresAt *time.Time
	if claimed.DurationDays != nil {
		t := now.AddDate(0, 0, *claimed.DurationDays)
		expiresAt = &t
	}

	response.Success(c, http.StatusOK, claimResponse{
		Key:              claimed.Key,
		ClaimedAt:        claimed.ClaimedAt,
		LicenseExpiresAt: expiresAt,
	}, "License activated successfully", nil)
}

type generateRequest struct {
	Count        int     `json:"count"`
	DurationDays *int    `json:"durationDays"`
	Note         *string `json:"note"`
}

// Generate creates a batch of licenses. Admin only.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid generate payload", err)
		return
	}

	if req.Count == 0 {
		req.Count = 1
	}

	licenses, err := Generate(h.db, GenerateInput{
		Count:        req.Count,
		DurationDays: req.DurationDays,
		Note:         req.Note,
	})
	if err != nil {
		h.respondError(c, err, "failed to generate licenses")
		return
	}

	response.Created(c, licenses, "Licenses generated successfully")
}

// List returns paginated licenses with filters. Admin only.
func (h *Handler) List(c *gin.Context) {
	params := pagination.Extract(c)

	filters := ListFilters{
		Keyword: c.Query("filterKeyword"),
	}
	if status := c.Query("status"); status != "" {
		filters.Status = types.LicenseStatus(status)
	}

	claimedAfterParam := c.Query("claimedAfter")
	claimedAfter, err := request.ParseRFC3339Ptr(&claimedAfterParam)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "claimedAfter must be an RFC3339 timestamp", err)
		return
	}
	filters.ClaimedAfter = claimedAfter

	licenses, total, err := List(h.db, filters, params)
	if err != nil {
		h.respondError(c, err, "failed to list licenses")
		return
	}

	response.Success(c, http.StatusOK, licenses, "", pagination.MetadataFrom(total, params))
}

// GetByKey returns a single license. Admin only.
func (h *Handler) GetByKey(c *gin.Context) {
	lic, err := Get(h.db, c.Param("key"))
	if err != nil {
		h.respondError(c, err, "failed to fetch license")
		return
	}

	response.Success(c, http.StatusOK, lic, "", nil)
}

// Delete removes an unclaimed license. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	if err := Delete(h.db, c.Param("key")); err != nil {
		h.respondError(c, err, "failed to delete license")
		return
	}

	response.Success(c, http.StatusOK, nil, "License deleted successfully", nil)
}

// Release returns a claimed license to the pool. Admin only.
func (h *Handler) Release(c *gin.Context) {
	if err := Release(h.db, c.Param("key")); err != nil {
		h.respondError(c, err, "failed to release license")
		return
	}

	response.Success(c, http.StatusOK, nil, "License released successfully", nil)
}

func (h *Handler) respondClaimError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidKey):
		metrics.RecordLicenseClaim("invalid_input")
		response.ErrorWithCode(c, http.StatusBadRequest, "invalid_key", ErrInvalidKey.Error())
	case errors.Is(err, ErrLicenseNotFound):
		metrics.RecordLicenseClaim("not_found")
		response.ErrorWithCode(c, http.StatusNotFound, "license_not_found", "License key not found.")
	case errors.Is(err, ErrLicenseClaimed):
		metrics.RecordLicenseClaim("already_claimed")
		response.ErrorWithCode(c, http.StatusConflict, "license_claimed", "This license key has already been claimed.")
	case errors.Is(err, ErrAlreadyLicensed):
		metrics.RecordLicenseClaim("already_claimed")
		response.ErrorWithCode(c, http.StatusConflict, "already_licensed", "Your account already holds a license.")
	case errors.Is(err, ErrUserNotFound):
		metrics.RecordLicenseClaim("unauthenticated")
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not found", err)
	default:
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			switch storeErr.Kind {
			case StoreKindPermissionDenied:
				metrics.RecordLicenseClaim("permission_denied")
				response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "The server is not allowed to perform this operation.", err)
				return
			case StoreKindTransient:
				metrics.RecordLicenseClaim("transient")
				c.Header("Retry-After", "1")
				response.ErrorWithLog(h.logger, c, http.StatusServiceUnavailable, "Temporary storage problem, please retry.", err)
				return
			}
		}
		metrics.RecordLicenseClaim("error")
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to claim license", err)
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidKey):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, ErrInvalidKey.Error(), err)
	case errors.Is(err, ErrLicenseNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "License not found", err)
	case errors.Is(err, ErrLicenseNotIdle):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, ErrLicenseNotIdle.Error(), err)
	default:
		var storeErr *StoreError
		if errors.As(err, &storeErr) && storeErr.Kind == StoreKindTransient {
			c.Header("Retry-After", "1")
			response.ErrorWithLog(h.logger, c, http.StatusServiceUnavailable, "Temporary storage problem, please retry.", err)
			return
		}
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, fallback, err)
	}
}
