package routes

import (
	"github.com/gin-gonic/gin"

	"agency-site-server/middleware"
	"agency-site-server/response"
	"agency-site-server/services"
	"agency-site-server/websocket"
)

// registerAuthRoutes registers admin sign-in and session routes
func (h *handler) registerAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/admin/auth")
	{
		auth.POST("/login", middleware.RateLimit(h.Limiter, loginLimit, loginBurst), h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/me", middleware.AdminAuth(h.Auth), h.me)
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func clientMeta(c *gin.Context) services.ClientMeta {
	return services.ClientMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// login opens a session and also sets the admin page cookies
func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetSessionCookies(c, session, h.Config.Server.CookieSecure)
	response.Success(c, "Login successful", session)
}

// refreshToken reads the token from the body, falling back to the cookie
func (h *handler) refreshToken(c *gin.Context) string {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBind(&req)
	}
	if req.RefreshToken != "" {
		return req.RefreshToken
	}
	token, _ := c.Cookie(middleware.RefreshCookie)
	return token
}

func (h *handler) refresh(c *gin.Context) {
	token := h.refreshToken(c)
	if token == "" {
		response.Error(c, response.NewBadRequest("refresh_token is required"))
		return
	}

	session, err := h.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetSessionCookies(c, session, h.Config.Server.CookieSecure)
	response.Success(c, "Token refreshed", session)
}

// logout revokes the refresh token; repeating it is harmless
func (h *handler) logout(c *gin.Context) {
	if token := h.refreshToken(c); token != "" {
		if err := h.Auth.SignOut(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}
	middleware.ClearSessionCookies(c, h.Config.Server.CookieSecure)
	response.Success(c, "Logged out", nil)
}

func (h *handler) me(c *gin.Context) {
	response.Success(c, "", middleware.CurrentUser(c))
}

type profileRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

func (h *handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.Auth.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Profile updated", user)
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" form:"new_password" binding:"required"`
}

// changePassword rotates the password and signs out every session
func (h *handler) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.Auth.ChangePassword(c.Request.Context(), middleware.CurrentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	middleware.ClearSessionCookies(c, h.Config.Server.CookieSecure)
	response.Success(c, "Password changed, please sign in again", nil)
}

// adminFeed upgrades to the live event feed
func (h *handler) adminFeed(c *gin.Context) {
	if h.Hub == nil {
		response.Error(c, response.NewNotFound("Live feed is disabled"))
		return
	}
	websocket.ServeWebSocket(h.Hub, h.upgrader, c.Writer, c.Request, middleware.CurrentUser(c).ID)
}
