package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/utils/jwt"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// User is the authenticated-user projection loaded for every request. It is
// deliberately not the full account model so this package stays free of
// feature imports.
type User struct {
	ID                uuid.UUID  `gorm:"column:id;primaryKey"`
	Email             string     `gorm:"column:email"`
	Role              types.Role `gorm:"column:role"`
	ProfilePictureURL *string    `gorm:"column:profile_picture_url"`
	LicenseKey        *string    `gorm:"column:license_key"`
	LicenseExpiresAt  *time.Time `gorm:"column:license_expires_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

// TableName specifies the table name for the projection.
func (User) TableName() string {
	return "users"
}

// HasActiveLicense reports whether the user holds a currently valid license.
func (u *User) HasActiveLicense(now time.Time) bool {
	return types.LicenseActive(u.LicenseKey, u.LicenseExpiresAt, now)
}

// LicenseState classifies the user's license for display purposes.
func (u *User) LicenseState(now time.Time) types.LicenseState {
	return types.ClassifyLicense(u.LicenseKey, u.LicenseExpiresAt, now)
}

// Global instance to be initialized once at startup
var global *AuthMiddleware

// AuthMiddleware holds dependencies for authentication middleware
type AuthMiddleware struct {
	db        *gorm.DB
	jwtSecret string
	logger    *slog.Logger
}

// Initialize sets up the global middleware instance (call once at startup)
func Initialize(db *gorm.DB, jwtSecret string, logger *slog.Logger) {
	global = &AuthMiddleware{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// AuthenticateToken validates JWT tokens and loads user data into context.
func (m *AuthMiddleware) AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.ensureAuthenticated(c); !ok {
			return
		}
		c.Next()
	}
}

// AuthorizeRoles checks if the user has one of the allowed roles.
func (m *AuthMiddleware) AuthorizeRoles(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, ok := GetUserFromContext(c)
		if !ok {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}

		for _, role := range roles {
			if usr.Role == role {
				c.Next()
				return
			}
		}

		response.ErrorWithLog(m.logger, c, http.StatusForbidden, "Access denied: Insufficient permissions.", nil)
		c.Abort()
	}
}

// RequireRoles combines authentication and role authorization.
func (m *AuthMiddleware) RequireRoles(roles ...types.Role) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.AuthenticateToken(),
		m.AuthorizeRoles(roles...),
	}
}

// RequireLicense rejects authenticated users without a currently valid
// license. Playback routes sit behind this.
func (m *AuthMiddleware) RequireLicense() gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, ok := GetUserFromContext(c)
		if !ok {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}

		if !usr.HasActiveLicense(time.Now()) {
			response.ErrorWithCode(c, http.StatusForbidden, "license_required", "An active license is required to watch content.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Global convenience functions - use these in route files

// AuthenticateToken is the global version for simple authentication
func AuthenticateToken() gin.HandlerFunc {
	mustBeInitialized()
	return global.AuthenticateToken()
}

// RequireRoles is the global version combining authentication and role checks
func RequireRoles(roles ...types.Role) []gin.HandlerFunc {
	mustBeInitialized()
	return global.RequireRoles(roles...)
}

// RequireLicense is the global version of the license gate
func RequireLicense() gin.HandlerFunc {
	mustBeInitialized()
	return global.RequireLicense()
}

func mustBeInitialized() {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
}

// GetUserFromContext retrieves the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	if usr, ok := userVal.(*User); ok && usr != nil {
		return usr, true
	}

	if usr, ok := userVal.(User); ok {
		return &usr, true
	}

	return nil, false
}

func (m *AuthMiddleware) ensureAuthenticated(c *gin.Context) (*User, bool) {
	if usr, ok := GetUserFromContext(c); ok {
		return usr, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No token provided", nil)
		c.Abort()
		return nil, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No token provided", nil)
		c.Abort()
		return nil, false
	}

	claims, err := jwt.VerifyToken(token, m.jwtSecret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Token expired", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token", err)
		}
		c.Abort()
		return nil, false
	}

	if claims.UserID == uuid.Nil {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token payload", nil)
		c.Abort()
		return nil, false
	}

	var usr User
	if err := m.db.First(&usr, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User no longer exists", err)
		} else {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Failed to load user", err)
		}
		c.Abort()
		return nil, false
	}

	c.Set("user", &usr)
	return &usr, true
}
