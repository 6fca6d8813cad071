package auth

import (
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db       *gorm.DB
	tokenCfg TokenConfig
	verifier GoogleVerifier
	oauthCfg *oauth2.Config
	logger   *slog.Logger
}

// NewHandler constructs an auth handler instance. Google sign-in endpoints
// stay disabled when no client ID is configured.
func NewHandler(db *gorm.DB, tokenCfg TokenConfig, googleCfg config.GoogleConfig, logger *slog.Logger) *Handler {
	h := &Handler{
		db:       db,
		tokenCfg: tokenCfg,
		logger:   logger,
	}

	if googleCfg.ClientID != "" {
		h.verifier = NewGoogleVerifier(googleCfg.ClientID)
		h.oauthCfg = NewGoogleOAuthConfig(googleCfg)
	}

	return h
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid register payload", err)
		return
	}

	resp, err := Register(h.db, RegisterInput(req), h.tokenCfg)
	if err != nil {
		h.respondError(c, err, "registration failed")
		return
	}

	response.Created(c, resp, "Account created successfully")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates with email and password.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	resp, err := Login(h.db, LoginInput(req), h.tokenCfg)
	if err != nil {
		h.respondError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, resp, "Logged in successfully", nil)
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleLogin signs in with a Google ID token obtained by the client SDK.
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.verifier == nil {
		h.respondError(c, ErrGoogleNotEnabled, "google sign-in failed")
		return
	}

	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid google payload", err)
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		h.respondError(c, err, "google sign-in failed")
		return
	}

	resp, err := LoginWithGoogle(h.db, identity, h.tokenCfg)
	if err != nil {
		h.respondError(c, err, "google sign-in failed")
		return
	}

	response.Success(c, http.StatusOK, resp, "Logged in successfully", nil)
}

// GoogleAuthURL returns the consent page URL for the authorization-code flow.
func (h *Handler) GoogleAuthURL(c *gin.Context) {
	if h.oauthCfg == nil {
		h.respondError(c, ErrGoogleNotEnabled, "google sign-in failed")
		return
	}

	state := c.Query("state")
	if state == "" {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "state parameter is required", nil)
		return
	}

	url := h.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
	response.Success(c, http.StatusOK, gin.H{"url": url}, "", nil)
}

type googleCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleCallback completes the authorization-code flow.
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.oauthCfg == nil || h.verifier == nil {
		h.respondError(c, ErrGoogleNotEnabled, "google sign-in failed")
		return
	}

	var req googleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid callback payload", err)
		return
	}

	rawIDToken, err := ExchangeGoogleCode(c.Request.Context(), h.oauthCfg, req.Code)
	if err != nil {
		h.respondError(c, err, "google sign-in failed")
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		h.respondError(c, err, "google sign-in failed")
		return
	}

	resp, err := LoginWithGoogle(h.db, identity, h.tokenCfg)
	if err != nil {
		h.respondError(c, err, "google sign-in failed")
		return
	}

	response.Success(c, http.StatusOK, resp, "Logged in successfully", nil)
}

// Logout invalidates the current session's refresh token.
func (h *Handler) Logout(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token == "" {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "no token provided", nil)
		return
	}

	if err := Logout(h.db, token, h.tokenCfg); err != nil {
		h.respondError(c, err, "logout failed")
		return
	}

	response.Success(c, http.StatusOK, nil, "Logged out successfully", nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken rotates the access and refresh tokens.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid refresh payload", err)
		return
	}

	pair, err := RefreshAccessToken(h.db, req.RefreshToken, h.tokenCfg)
	if err != nil {
		h.respondError(c, err, "token refresh failed")
		return
	}

	response.Success(c, http.StatusOK, pair, "Token refreshed", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, user.ErrInvalidPassword):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, ErrInvalidCredentials):
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrGoogleTokenInvalid):
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Invalid or expired token", err)
	case errors.Is(err, ErrGoogleNotEnabled):
		response.ErrorWithLog(h.logger, c, http.StatusNotImplemented, ErrGoogleNotEnabled.Error(), err)
	case errors.Is(err, user.ErrEmailTaken):
		response.ErrorWithLog(h.logger, c, http.StatusConflict, "Email already in use", err)
	case errors.Is(err, user.ErrUserNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not found", err)
	default:
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, fallback, err)
	}
}
