package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
)

const (
	// IdentityContextKey is a gin context key for the authenticated identity.
	IdentityContextKey = "identity"
	authCookieName     = "memoriza_token"
)

// TokenParser resolves a session token into an identity.
type TokenParser interface {
	ParseToken(token string) (*pkgAuth.Identity, error)
}

// AccessController answers back-office permission checks and records
// allowed requests in the access log.
type AccessController interface {
	Allowed(ctx context.Context, identity *pkgAuth.Identity, module model.BackOfficeModule, action model.PermissionAction) (bool, error)
	RecordAccess(ctx context.Context, entry *model.AccessLogEntry) error
}

// AuthRequired ensures the caller is authenticated before reaching a handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// StaffRequired rejects plain customers before any back-office route;
// per-route permission checks happen in PermissionRequired.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil || (!identity.Admin && identity.GroupID != model.GroupEmployee) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// PermissionRequired allows admins and employees whose group grants the
// action on the module. Allowed mutations are appended to the access log;
// plain views are not recorded.
func PermissionRequired(access AccessController, module model.BackOfficeModule, action model.PermissionAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		allowed, err := access.Allowed(c.Request.Context(), identity, module, action)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if action != model.ActionView {
			_ = access.RecordAccess(c.Request.Context(), &model.AccessLogEntry{
				EmployeeID: identity.UserID,
				Module:     module,
				Action:     string(action),
				Detail:     c.Request.Method + " " + c.Request.URL.Path,
			})
		}
		c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from the context.
func CurrentIdentity(c *gin.Context) *pkgAuth.Identity {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*pkgAuth.Identity)
	return identity
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the auth token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
