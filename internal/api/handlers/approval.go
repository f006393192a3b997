package handlers

import (
	"net/http"

	"project-groups-backend/internal/auth"
	"project-groups-backend/internal/errors"
	"project-groups-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApprovalHandler handles HTTP requests for approval tasks
type ApprovalHandler struct {
	approvalService service.ApprovalServiceInterface
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService service.ApprovalServiceInterface) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) handleError(c *gin.Context, err error) {
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

// Create handles POST /approval-tasks
// @Summary Open an approval task
// @Description Open an approval task routed through the configured chain for its type; the first approver is notified
// @Tags approval-tasks
// @Accept json
// @Produce json
// @Param request body service.CreateApprovalTaskRequest true "Approval task data"
// @Success 201 {object} service.ApprovalTaskResponse "Approval task created"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "No approver found for the first chain level"
// @Security BearerAuth
// @Router /approval-tasks [post]
func (h *ApprovalHandler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateApprovalTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	req.RequestedBy = userID

	response, err := h.approvalService.Create(&req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Decide handles POST /approval-tasks/:id/decision
// @Summary Decide on an approval task
// @Description Accept or reject a pending task as its current approver; acceptance advances the chain, rejection terminates it
// @Tags approval-tasks
// @Accept json
// @Produce json
// @Param id path string true "Approval task ID"
// @Param request body service.DecisionRequest true "Decision"
// @Success 200 {object} service.ApprovalTaskResponse "Updated approval task"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 403 {object} map[string]interface{} "Caller is not the current approver"
// @Failure 404 {object} map[string]interface{} "Approval task not found"
// @Failure 409 {object} map[string]interface{} "Task already settled"
// @Security BearerAuth
// @Router /approval-tasks/{id}/decision [post]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approval task ID"})
		return
	}

	var req service.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.approvalService.Advance(taskID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetByID handles GET /approval-tasks/:id
// @Summary Get an approval task
// @Tags approval-tasks
// @Produce json
// @Param id path string true "Approval task ID"
// @Success 200 {object} service.ApprovalTaskResponse "Approval task"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Approval task not found"
// @Security BearerAuth
// @Router /approval-tasks/{id} [get]
func (h *ApprovalHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approval task ID"})
		return
	}

	response, err := h.approvalService.GetByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListPending handles GET /approval-tasks/pending
// @Summary List tasks waiting on the caller
// @Tags approval-tasks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ApprovalTaskListResponse "Approval tasks"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /approval-tasks/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := parsePagination(c)
	response, err := h.approvalService.ListForApprover(userID, page, pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListMine handles GET /approval-tasks/mine
// @Summary List tasks opened by the caller
// @Tags approval-tasks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ApprovalTaskListResponse "Approval tasks"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /approval-tasks/mine [get]
func (h *ApprovalHandler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := parsePagination(c)
	response, err := h.approvalService.ListForRequester(userID, page, pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
