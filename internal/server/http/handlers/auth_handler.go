package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/memoriza/memoriza/internal/server/http/dto"
	"github.com/memoriza/memoriza/internal/server/http/middleware"
)

const oauthStateCookie = "memoriza_oauth_state"

// AuthHandler processes registration, login and the OAuth flow.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout handles POST /api/auth/logout. Sessions are stateless tokens, so
// logout only clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("memoriza_token", "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// OAuthLogin handles GET /api/auth/oauth/login.
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.facade.OAuthURL(state))
}

// OAuthCallback handles GET /api/auth/oauth/callback.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		c.Status(http.StatusBadRequest)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	_, token, err := h.facade.OAuthCallback(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
