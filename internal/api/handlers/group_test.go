package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-groups-backend/internal/api/handlers"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/mocks"
	"project-groups-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// GroupHandlerTestSuite defines the test suite for GroupHandler
type GroupHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockGroupServiceInterface
	handler     *handlers.GroupHandler
	router      *gin.Engine
	userID      uuid.UUID
}

func (suite *GroupHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockGroupServiceInterface(suite.ctrl)
	suite.handler = handlers.NewGroupHandler(suite.mockService)
	suite.userID = uuid.New()

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.userID)
	})
	suite.router.GET("/groups", suite.handler.GetAll)
	suite.router.GET("/groups/:id", suite.handler.GetByID)
	suite.router.POST("/groups/:id/project", suite.handler.LinkProject)
}

func (suite *GroupHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *GroupHandlerTestSuite) TestGetAll_Success() {
	suite.mockService.EXPECT().GetAll(1, 20).Return(&service.GroupListResponse{
		Groups:   []service.GroupResponse{{ID: uuid.New(), GroupName: "Robotics Squad"}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got service.GroupListResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(suite.T(), got.Groups, 1)
	assert.Equal(suite.T(), "Robotics Squad", got.Groups[0].GroupName)
}

func (suite *GroupHandlerTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mockService.EXPECT().GetByID(id).Return(nil, apperrors.ErrGroupNotFound)

	req := httptest.NewRequest(http.MethodGet, "/groups/"+id.String(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *GroupHandlerTestSuite) TestLinkProject_Success() {
	groupID := uuid.New()
	projectID := uuid.New()
	suite.mockService.EXPECT().LinkProject(groupID, projectID, suite.userID).
		Return(&service.GroupResponse{ID: groupID, ProjectID: &projectID}, nil)

	body, _ := json.Marshal(map[string]interface{}{"project_id": projectID})
	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID.String()+"/project", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got service.GroupResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), projectID, *got.ProjectID)
}

func (suite *GroupHandlerTestSuite) TestLinkProject_NotMemberReturns403() {
	groupID := uuid.New()
	projectID := uuid.New()
	suite.mockService.EXPECT().LinkProject(groupID, projectID, suite.userID).
		Return(nil, apperrors.ErrNotGroupMember)

	body, _ := json.Marshal(map[string]interface{}{"project_id": projectID})
	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID.String()+"/project", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *GroupHandlerTestSuite) TestLinkProject_AlreadyLinkedReturns409() {
	groupID := uuid.New()
	projectID := uuid.New()
	suite.mockService.EXPECT().LinkProject(groupID, projectID, suite.userID).
		Return(nil, apperrors.ErrProjectAlreadyLinked)

	body, _ := json.Marshal(map[string]interface{}{"project_id": projectID})
	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID.String()+"/project", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *GroupHandlerTestSuite) TestLinkProject_MissingBody() {
	groupID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID.String()+"/project", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestGroupHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GroupHandlerTestSuite))
}
