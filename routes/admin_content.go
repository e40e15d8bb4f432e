package routes

import (
	"github.com/gin-gonic/gin"

	"agency-site-server/models"
	"agency-site-server/response"
	"agency-site-server/services"
)

// adminListProjects returns every project regardless of category
func (h *handler) adminListProjects(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", projects)
}

func (h *handler) createProject(c *gin.Context) {
	var input services.ProjectInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	image, _, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Project created", project)
}

// updateProject replaces a project's fields; the image is kept unless a new one is sent
func (h *handler) updateProject(c *gin.Context) {
	var input services.ProjectInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	image, _, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), c.Param("id"), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Project updated", project)
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Project deleted", nil)
}

func (h *handler) adminListTeam(c *gin.Context) {
	h.listTeam(c)
}

func (h *handler) createTeamMember(c *gin.Context) {
	var input services.TeamMemberInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	image, _, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	member, err := h.Team.Create(c.Request.Context(), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Team member added", member)
}

func (h *handler) updateTeamMember(c *gin.Context) {
	var input services.TeamMemberInput
	if err := bindBody(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	image, _, err := imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	member, err := h.Team.Update(c.Request.Context(), c.Param("id"), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Team member updated", member)
}

func (h *handler) deleteTeamMember(c *gin.Context) {
	if err := h.Team.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Team member removed", nil)
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

// reorderTeam persists a drag-and-drop order
func (h *handler) reorderTeam(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	members, err := h.Team.Reorder(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Team order saved", members)
}

// listInquiries returns the inbox, optionally filtered by ?status=
func (h *handler) listInquiries(c *gin.Context) {
	inquiries, err := h.Inquiries.List(c.Request.Context(), models.InquiryStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", inquiries)
}

type inquiryStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,inquiry_status"`
}

func (h *handler) updateInquiryStatus(c *gin.Context) {
	var req inquiryStatusRequest
	if err := bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	inquiry, err := h.Inquiries.UpdateStatus(c.Request.Context(), c.Param("id"), models.InquiryStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Inquiry updated", inquiry)
}

func (h *handler) deleteInquiry(c *gin.Context) {
	if err := h.Inquiries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Inquiry deleted", nil)
}

func (h *handler) dashboardStats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", stats)
}
