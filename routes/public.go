package routes

import (
	"github.com/gin-gonic/gin"

	"agency-site-server/middleware"
	"agency-site-server/response"
	"agency-site-server/services"
)

// registerPublicRoutes registers the unauthenticated API used by the site
func (h *handler) registerPublicRoutes(router *gin.RouterGroup) {
	limited := middleware.RateLimit(h.Limiter, submitLimit, submitBurst)

	router.GET("/testimonials", h.listTestimonials)
	router.POST("/reviews", limited, h.submitReview)
	router.GET("/projects", h.listProjects)
	router.GET("/projects/categories", h.projectCategories)
	router.GET("/team", h.listTeam)
	router.POST("/inquiries", limited, h.submitInquiry)
}

// listTestimonials returns the carousel set; it never fails
func (h *handler) listTestimonials(c *gin.Context) {
	set := h.Testimonials.Load(c.Request.Context())
	response.Success(c, "", gin.H{
		"items":       set.Items,
		"fallback":    set.Fallback,
		"interval_ms": h.Config.Site.TestimonialInterval.Milliseconds(),
	})
}

// submitReview accepts a visitor review for moderation
func (h *handler) submitReview(c *gin.Context) {
	var input services.ReviewInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	image, _, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.Reviews.Submit(c.Request.Context(), input, image)
	if err != nil {
		if review == nil {
			response.Error(c, err)
			return
		}
		// The review is stored; only its image is missing
		response.Created(c, "Thank you! Your review was received, but the image could not be uploaded.", review)
		return
	}

	response.Created(c, "Thank you! Your review will appear once approved.", review)
}

// listProjects returns the portfolio, optionally filtered by ?category=
func (h *handler) listProjects(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", projects)
}

func (h *handler) projectCategories(c *gin.Context) {
	categories, err := h.Projects.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", categories)
}

// listTeam returns team members in display order
func (h *handler) listTeam(c *gin.Context) {
	members, err := h.Team.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", members)
}

// submitInquiry stores a contact-form message
func (h *handler) submitInquiry(c *gin.Context) {
	var input services.InquiryInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	inquiry, err := h.Inquiries.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Thanks for reaching out! We'll get back to you soon.", inquiry)
}
