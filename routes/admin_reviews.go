package routes

import (
	"github.com/gin-gonic/gin"

	"agency-site-server/response"
	"agency-site-server/services"
)

// listReviews returns reviews filtered by ?q=, ?status= and ?rating=
func (h *handler) listReviews(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, bindError(err))
		return
	}

	reviews, err := h.Reviews.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", reviews)
}

// createAdminReview stores a review that skips moderation
func (h *handler) createAdminReview(c *gin.Context) {
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

	review, err := h.Reviews.CreateAdminReview(c.Request.Context(), input, image)
	if err != nil {
		if review == nil {
			response.Error(c, err)
			return
		}
		response.Created(c, "Review created, but the image could not be uploaded", review)
		return
	}
	response.Created(c, "Review created", review)
}

func (h *handler) reviewStats(c *gin.Context) {
	stats, err := h.Reviews.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", stats)
}

func (h *handler) getReview(c *gin.Context) {
	review, err := h.Reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", review)
}

// updateReview applies an admin edit, including a direct status override
func (h *handler) updateReview(c *gin.Context) {
	var upd services.ReviewUpdate
	if err := bindBody(c, &upd); err != nil {
		response.Error(c, err)
		return
	}
	image, removeImage, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !isMultipart(c) {
		removeImage = c.Query("remove_image") == "true"
	}

	review, err := h.Reviews.Update(c.Request.Context(), c.Param("id"), upd, image, removeImage)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Review updated", review)
}

func (h *handler) deleteReview(c *gin.Context) {
	if err := h.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Review deleted", nil)
}

func (h *handler) approveReview(c *gin.Context) {
	review, err := h.Reviews.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Review approved", review)
}

func (h *handler) rejectReview(c *gin.Context) {
	review, err := h.Reviews.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Review rejected", review)
}
