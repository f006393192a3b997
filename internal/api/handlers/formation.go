package handlers

import (
	"net/http"

	"project-groups-backend/internal/auth"
	"project-groups-backend/internal/errors"
	"project-groups-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FormationHandler handles HTTP requests for group formation requests
type FormationHandler struct {
	formationService service.FormationServiceInterface
}

// NewFormationHandler creates a new formation handler
func NewFormationHandler(formationService service.FormationServiceInterface) *FormationHandler {
	return &FormationHandler{formationService: formationService}
}

func (h *FormationHandler) handleError(c *gin.Context, err error) {
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

// Create handles POST /formation-requests
// @Summary Create a group formation request
// @Description Create a formation request with a roster of students, supervisors and co-supervisors; invites everyone except the creator
// @Tags formation-requests
// @Accept json
// @Produce json
// @Param request body service.CreateFormationRequest true "Formation request data"
// @Success 201 {object} service.FormationRequestResponse "Formation request created"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /formation-requests [post]
func (h *FormationHandler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	req.CreatorID = userID

	response, err := h.formationService.Create(&req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetByID handles GET /formation-requests/:id
// @Summary Get a formation request
// @Description Get a formation request with its participants
// @Tags formation-requests
// @Produce json
// @Param id path string true "Formation request ID"
// @Success 200 {object} service.FormationRequestResponse "Formation request"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Formation request not found"
// @Security BearerAuth
// @Router /formation-requests/{id} [get]
func (h *FormationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid formation request ID"})
		return
	}

	response, err := h.formationService.GetByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Respond handles POST /formation-requests/:id/respond
// @Summary Respond to a group invitation
// @Description Accept or reject a pending invitation; the final acceptance materializes the official group
// @Tags formation-requests
// @Accept json
// @Produce json
// @Param id path string true "Formation request ID"
// @Param request body service.RespondRequest true "Decision"
// @Success 200 {object} service.RespondOutcome "Response recorded"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 403 {object} map[string]interface{} "Not a participant of this request"
// @Failure 404 {object} map[string]interface{} "Formation request not found"
// @Failure 409 {object} map[string]interface{} "Already responded, request closed, or membership conflict"
// @Security BearerAuth
// @Router /formation-requests/{id}/respond [post]
func (h *FormationHandler) Respond(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid formation request ID"})
		return
	}

	var req service.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	outcome, err := h.formationService.Respond(requestID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// MyGroup handles GET /my-group
// @Summary Get the caller's group situation
// @Description Returns the caller's official group if one exists, otherwise their still-open formation requests
// @Tags formation-requests
// @Produce json
// @Success 200 {object} service.MyGroupResponse "Current group situation"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /my-group [get]
func (h *FormationHandler) MyGroup(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	response, err := h.formationService.MyGroup(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
