package handlers

import (
	"net/http"

	"project-groups-backend/internal/auth"
	"project-groups-backend/internal/errors"
	"project-groups-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupHandler handles HTTP requests for official groups
type GroupHandler struct {
	groupService service.GroupServiceInterface
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService service.GroupServiceInterface) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetAll handles GET /groups
// @Summary List official groups
// @Tags groups
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.GroupListResponse "Official groups"
// @Security BearerAuth
// @Router /groups [get]
func (h *GroupHandler) GetAll(c *gin.Context) {
	page, pageSize := parsePagination(c)
	response, err := h.groupService.GetAll(page, pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetByID handles GET /groups/:id
// @Summary Get an official group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} service.GroupResponse "Official group"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *GroupHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	response, err := h.groupService.GetByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// linkProjectRequest represents the request to link a project to a group
type linkProjectRequest struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
}

// LinkProject handles POST /groups/:id/project
// @Summary Link an accepted project to a group
// @Description Attach an accepted project to the caller's group and reserve it so no other group can claim it
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body linkProjectRequest true "Project to link"
// @Success 200 {object} service.GroupResponse "Updated group"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 403 {object} map[string]interface{} "Caller is not a member of the group"
// @Failure 404 {object} map[string]interface{} "Group or project not found"
// @Failure 409 {object} map[string]interface{} "Project not linkable or group already has one"
// @Security BearerAuth
// @Router /groups/{id}/project [post]
func (h *GroupHandler) LinkProject(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req linkProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.groupService.LinkProject(groupID, req.ProjectID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
