package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"agency-site-server/config"
	"agency-site-server/content"
	"agency-site-server/logger"
	"agency-site-server/metrics"
	"agency-site-server/middleware"
	"agency-site-server/services"
	"agency-site-server/web"
	"agency-site-server/websocket"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Config       *config.Config
	Site         *content.Site
	Reviews      *services.ReviewService
	Testimonials *services.TestimonialService
	Projects     *services.ProjectService
	Team         *services.TeamService
	Inquiries    *services.InquiryService
	Dashboard    *services.DashboardService
	Auth         *services.AuthService
	Hub          *websocket.Hub
	Limiter      *middleware.RateLimiter
}

// handler carries Deps into the route handlers
type handler struct {
	*Deps
	upgrader *gorillaws.Upgrader
}

// Public form submissions: a burst of 5, then one every 12s per route and IP
var (
	submitLimit = rate.Every(12 * time.Second)
	submitBurst = 5
	loginLimit  = rate.Every(time.Minute)
	loginBurst  = 5
)

// NewRouter builds the gin engine serving the site, the admin area and the API
func NewRouter(d *Deps) *gin.Engine {
	if d.Limiter == nil {
		d.Limiter = middleware.NewRateLimiter()
	}
	h := &handler{Deps: d, upgrader: websocket.NewUpgrader(d.Config.Server.AllowedOrigins)}

	router := gin.New()
	router.Use(logger.GinRecovery())
	router.Use(logger.GinLogger())
	router.Use(metrics.GinMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.InputValidation(middleware.MaxRequestBytes))

	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())
	router.NoRoute(h.notFound)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.registerPages(router)
	h.registerAdminPages(router)

	apiV1 := router.Group("/api/v1")
	{
		h.registerPublicRoutes(apiV1)
		h.registerAuthRoutes(apiV1)
		h.registerAdminRoutes(apiV1)
	}

	return router
}

// registerAdminRoutes registers the JSON API behind admin auth
func (h *handler) registerAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth(h.Auth))
	{
		reviews := admin.Group("/reviews")
		{
			reviews.GET("", h.listReviews)
			reviews.POST("", h.createAdminReview)
			reviews.GET("/stats", h.reviewStats)
			reviews.GET("/:id", h.getReview)
			reviews.PUT("/:id", h.updateReview)
			reviews.DELETE("/:id", h.deleteReview)
			reviews.POST("/:id/approve", h.approveReview)
			reviews.POST("/:id/reject", h.rejectReview)
		}

		projects := admin.Group("/projects")
		{
			projects.GET("", h.adminListProjects)
			projects.POST("", h.createProject)
			projects.PUT("/:id", h.updateProject)
			projects.DELETE("/:id", h.deleteProject)
		}

		team := admin.Group("/team")
		{
			team.GET("", h.adminListTeam)
			team.POST("", h.createTeamMember)
			team.PUT("/order", h.reorderTeam)
			team.PUT("/:id", h.updateTeamMember)
			team.DELETE("/:id", h.deleteTeamMember)
		}

		inquiries := admin.Group("/inquiries")
		{
			inquiries.GET("", h.listInquiries)
			inquiries.PATCH("/:id/status", h.updateInquiryStatus)
			inquiries.DELETE("/:id", h.deleteInquiry)
		}

		settings := admin.Group("/settings")
		{
			settings.PUT("/profile", h.updateProfile)
			settings.PUT("/password", h.changePassword)
		}

		admin.GET("/dashboard/stats", h.dashboardStats)
		admin.GET("/ws", h.adminFeed)
	}
}
