package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agency-site-server/logger"
	"agency-site-server/middleware"
	"agency-site-server/models"
	"agency-site-server/response"
	"agency-site-server/services"
)

var (
	reviewStatuses  = []models.ReviewStatus{models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected}
	inquiryStatuses = []models.InquiryStatus{models.InquiryStatusNew, models.InquiryStatusInProgress, models.InquiryStatusResolved}
)

// registerAdminPages registers the admin HTML pages; all but login are guarded
func (h *handler) registerAdminPages(router *gin.Engine) {
	router.GET("/admin/login", h.loginPage)
	router.POST("/admin/login", middleware.RateLimit(h.Limiter, loginLimit, loginBurst), h.submitLogin)
	router.POST("/admin/logout", h.submitLogout)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminPageGuard(h.Auth, h.Config.Server.CookieSecure))
	{
		admin.GET("", h.dashboardPage)
		admin.GET("/reviews", h.reviewsPage)
		admin.GET("/projects", h.projectsPage)
		admin.GET("/team", h.teamPage)
		admin.GET("/inquiries", h.inquiriesPage)
		admin.GET("/settings", h.settingsPage)
	}
}

func (h *handler) adminPage(c *gin.Context, title string, extra gin.H) gin.H {
	data := h.page(c, title, extra)
	if user := middleware.CurrentUser(c); user != nil {
		data["User"] = user
	}
	return data
}

// safeNext keeps post-login redirects inside the admin area
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "/admin/login") && !strings.Contains(next, "//") {
		return next
	}
	return "/admin"
}

func (h *handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login", h.adminPage(c, "Sign in", gin.H{"Next": safeNext(c.Query("next"))}))
}

func (h *handler) submitLogin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	next := safeNext(c.PostForm("next"))

	session, err := h.Auth.SignIn(c.Request.Context(), email, c.PostForm("password"), clientMeta(c))
	if err != nil {
		appErr := response.FromError(err)
		c.HTML(appErr.HTTPStatus, "admin_login", h.adminPage(c, "Sign in", gin.H{
			"Error": appErr.Message,
			"Email": email,
			"Next":  next,
		}))
		return
	}

	middleware.SetSessionCookies(c, session, h.Config.Server.CookieSecure)
	c.Redirect(http.StatusSeeOther, next)
}

func (h *handler) submitLogout(c *gin.Context) {
	if token, err := c.Cookie(middleware.RefreshCookie); err == nil {
		if err := h.Auth.SignOut(c.Request.Context(), token); err != nil {
			logger.Error().Err(err).Msg("Failed to revoke session on logout")
		}
	}
	middleware.ClearSessionCookies(c, h.Config.Server.CookieSecure)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// dashboardPage shows the counters and the moderation queue
func (h *handler) dashboardPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{}

	stats, err := h.Dashboard.Stats(ctx)
	if err != nil {
		data["Error"] = response.FromError(err).Message
	} else {
		data["Stats"] = stats
	}

	pending, err := h.Reviews.List(ctx, services.ReviewFilter{Status: models.ReviewStatusPending})
	if err != nil {
		data["Error"] = response.FromError(err).Message
	}
	data["Pending"] = pending

	c.HTML(http.StatusOK, "admin_dashboard", h.adminPage(c, "Dashboard", data))
}

func (h *handler) reviewsPage(c *gin.Context) {
	var filter services.ReviewFilter
	_ = c.ShouldBindQuery(&filter)

	data := gin.H{"Filter": filter, "Statuses": reviewStatuses}
	reviews, err := h.Reviews.List(c.Request.Context(), filter)
	if err != nil {
		data["Error"] = response.FromError(err).Message
	}
	data["Reviews"] = reviews

	c.HTML(http.StatusOK, "admin_reviews", h.adminPage(c, "Reviews", data))
}

func (h *handler) projectsPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{}

	projects, err := h.Projects.List(ctx, "")
	if err != nil {
		data["Error"] = response.FromError(err).Message
	}
	data["Projects"] = projects

	categories, err := h.Projects.Categories(ctx)
	if err != nil || len(categories) == 0 {
		categories = h.Site.PortfolioCategories
	}
	data["Categories"] = categories

	c.HTML(http.StatusOK, "admin_projects", h.adminPage(c, "Projects", data))
}

func (h *handler) teamPage(c *gin.Context) {
	data := gin.H{}
	team, err := h.Team.List(c.Request.Context())
	if err != nil {
		data["Error"] = response.FromError(err).Message
	}
	data["Team"] = team

	c.HTML(http.StatusOK, "admin_team", h.adminPage(c, "Team", data))
}

func (h *handler) inquiriesPage(c *gin.Context) {
	ctx := c.Request.Context()
	status := c.Query("status")
	data := gin.H{"Status": status, "Statuses": inquiryStatuses}

	inquiries, err := h.Inquiries.List(ctx, models.InquiryStatus(status))
	if err != nil {
		data["Error"] = response.FromError(err).Message
	}
	data["Inquiries"] = inquiries

	counts, err := h.Inquiries.Counts(ctx)
	if err != nil {
		counts = map[models.InquiryStatus]int64{}
	}
	data["Counts"] = counts

	c.HTML(http.StatusOK, "admin_inquiries", h.adminPage(c, "Inquiries", data))
}

func (h *handler) settingsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_settings", h.adminPage(c, "Settings", nil))
}
