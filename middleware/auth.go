package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"agency-site-server/logger"
	"agency-site-server/models"
	"agency-site-server/response"
	"agency-site-server/services"
	"agency-site-server/types"
)

// Session cookies used by the admin pages
const (
	AccessCookie  = "admin_token"
	RefreshCookie = "admin_refresh"
)

// Context keys set for authenticated requests
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

// Authenticator resolves admin sessions
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*types.Claims, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
}

// AdminAuth guards the admin JSON API. The token is read from the
// Authorization header, then the session cookie, then ?token= for websocket
// upgrades that cannot set headers.
func AdminAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, response.NewUnauthorized("Authorization required"))
			return
		}

		claims, user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Admin token rejected")
			response.Error(c, err)
			return
		}

		setUser(c, claims, user)
		c.Next()
	}
}

// AdminPageGuard guards the admin HTML pages. An expired access cookie is
// renewed from the refresh cookie; otherwise the browser is sent to the login
// page with the original path in ?next=.
func AdminPageGuard(auth Authenticator, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if token, err := c.Cookie(AccessCookie); err == nil && token != "" {
			if claims, user, err := auth.Authenticate(ctx, token); err == nil {
				setUser(c, claims, user)
				c.Next()
				return
			}
		}

		if refresh, err := c.Cookie(RefreshCookie); err == nil && refresh != "" {
			if session, err := auth.Refresh(ctx, refresh); err == nil {
				SetSessionCookies(c, session, secureCookies)
				if claims, user, err := auth.Authenticate(ctx, session.AccessToken); err == nil {
					setUser(c, claims, user)
					c.Next()
					return
				}
			}
		}

		ClearSessionCookies(c, secureCookies)
		c.Redirect(http.StatusSeeOther, "/admin/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// SetSessionCookies stores a session for the admin pages
func SetSessionCookies(c *gin.Context, session *services.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, session.AccessToken, int(session.ExpiresIn), "/", "", secure, true)
	c.SetCookie(RefreshCookie, session.RefreshToken, 30*24*3600, "/admin", "", secure, true)
}

// ClearSessionCookies drops the admin session cookies
func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/admin", "", secure, true)
}

// CurrentUser returns the user set by AdminAuth or AdminPageGuard
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token := strings.TrimPrefix(header, "Bearer "); token != header {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token, err := c.Cookie(AccessCookie); err == nil && token != "" {
		return token
	}
	return c.Query("token")
}

func setUser(c *gin.Context, claims *types.Claims, user *models.User) {
	c.Set(ContextUser, user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextClaims, claims)
}
