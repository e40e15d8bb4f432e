package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agency-site-server/carousel"
	"agency-site-server/logger"
	"agency-site-server/middleware"
	"agency-site-server/repository"
	"agency-site-server/response"
	"agency-site-server/services"
	"agency-site-server/typewriter"
)

// featuredProjects is how many projects the home page shows
const featuredProjects = 3

// carouselView is the server-rendered carousel state the page script resumes from
type carouselView struct {
	Index      int   `json:"index"`
	Len        int   `json:"len"`
	Autoplay   bool  `json:"autoplay"`
	IntervalMs int64 `json:"interval_ms"`
	Prev       int   `json:"-"`
	Next       int   `json:"-"`
	Dots       []int `json:"-"`
}

type heroView struct {
	Prefix   string
	First    string
	Loop     bool
	Timeline []typewriter.Frame
}

// registerPages registers the public marketing pages
func (h *handler) registerPages(router *gin.Engine) {
	router.GET("/", h.homePage)
	router.GET("/services", h.simplePage("services", "Services"))
	router.GET("/portfolio", h.portfolioPage)
	router.GET("/contact", h.contactPage)
	router.POST("/contact", middleware.RateLimit(h.Limiter, submitLimit, submitBurst), h.submitContact)
	router.GET("/about", h.aboutPage)
	router.GET("/pricing", h.simplePage("pricing", "Pricing"))
	router.GET("/ai-robotics", h.simplePage("ai_robotics", "AI & Robotics"))
}

// page is the data every public template receives
func (h *handler) page(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{"Site": h.Site, "Title": title, "Path": c.Request.URL.Path}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *handler) simplePage(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, h.page(c, title, nil))
	}
}

func (h *handler) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.Error(c, response.NewNotFound("Not found"))
		return
	}
	c.HTML(http.StatusNotFound, "not_found", h.page(c, "Not found", nil))
}

// homePage renders the hero, services, recent work and the testimonial
// carousel. ?slide=n opens the carousel on slide n with autoplay off, the
// same as clicking a dot.
func (h *handler) homePage(c *gin.Context) {
	ctx := c.Request.Context()

	set := h.Testimonials.Load(ctx)
	car := carousel.New(len(set.Items), h.Config.Site.TestimonialInterval)
	if s := c.Query("slide"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			car.GoTo(i)
		}
	}
	if c.Query("autoplay") == "off" && car.Autoplay() {
		car.GoTo(car.Index())
	}

	projects, err := h.Projects.List(ctx, "")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load featured projects")
		projects = nil
	}
	if len(projects) > featuredProjects {
		projects = projects[:featuredProjects]
	}

	c.HTML(http.StatusOK, "home", h.page(c, "", gin.H{
		"Hero":         h.hero(),
		"Testimonials": set.Items,
		"Carousel":     newCarouselView(car),
		"Projects":     projects,
	}))
}

func (h *handler) hero() heroView {
	words := h.Site.Hero.Words
	cfg := h.Site.Hero.Typewriter
	view := heroView{Prefix: h.Site.Hero.Prefix, Loop: cfg.Loop, Timeline: typewriter.Timeline(words, cfg)}
	if len(words) > 0 {
		view.First = words[0]
	}
	return view
}

func newCarouselView(car *carousel.Carousel) *carouselView {
	n := car.Len()
	if n == 0 {
		return nil
	}
	v := &carouselView{
		Index:      car.Index(),
		Len:        n,
		Autoplay:   car.Autoplay(),
		IntervalMs: car.Interval().Milliseconds(),
		Prev:       (car.Index() - 1 + n) % n,
		Next:       (car.Index() + 1) % n,
		Dots:       make([]int, n),
	}
	for i := range v.Dots {
		v.Dots[i] = i
	}
	return v
}

// portfolioPage lists projects, filtered by ?category=
func (h *handler) portfolioPage(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.DefaultQuery("category", repository.CategoryAll)

	data := gin.H{"Category": category}
	projects, err := h.Projects.List(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load portfolio")
		data["Error"] = response.FromError(err).Message
	}
	data["Projects"] = projects

	categories, err := h.Projects.Categories(ctx)
	if err != nil || len(categories) == 0 {
		categories = h.Site.PortfolioCategories
	}
	data["Categories"] = categories

	c.HTML(http.StatusOK, "portfolio", h.page(c, "Portfolio", data))
}

func (h *handler) contactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", h.page(c, "Contact", gin.H{
		"Sent": c.Query("sent") == "1",
		"Form": services.InquiryInput{},
	}))
}

// submitContact is the no-script fallback of the contact form
func (h *handler) submitContact(c *gin.Context) {
	var input services.InquiryInput
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "contact", h.page(c, "Contact", gin.H{"Error": "Invalid form", "Form": input}))
		return
	}

	if _, err := h.Inquiries.Submit(c.Request.Context(), input); err != nil {
		appErr := response.FromError(err)
		c.HTML(appErr.HTTPStatus, "contact", h.page(c, "Contact", gin.H{"Error": appErr.Message, "Form": input}))
		return
	}
	c.Redirect(http.StatusSeeOther, "/contact?sent=1")
}

// aboutPage shows the company story and the team in display order
func (h *handler) aboutPage(c *gin.Context) {
	team, err := h.Team.List(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load team")
	}
	c.HTML(http.StatusOK, "about", h.page(c, "About", gin.H{"Team": team}))
}
