package service_test

import (
	"testing"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/mocks"
	"project-groups-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockProjectRepositoryInterface
	projectService *service.ProjectService
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.projectService = service.NewProjectService(suite.mockRepo, validator.New())
}

func (suite *ProjectServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ProjectServiceTestSuite) TestCreate_StartsPendingApproval() {
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(p *models.Project) error {
		p.ID = uuid.New()
		assert.Equal(suite.T(), models.ProjectStatePendingApproval, p.State)
		return nil
	})

	resp, err := suite.projectService.Create(&service.CreateProjectRequest{
		Title: "Smart irrigation controller",
		Type:  "graduation",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ProjectStatePendingApproval, resp.State)
}

func (suite *ProjectServiceTestSuite) TestCreate_MissingTitle() {
	resp, err := suite.projectService.Create(&service.CreateProjectRequest{Type: "graduation"})

	assert.Nil(suite.T(), resp)
	assert.ErrorContains(suite.T(), err, "validation failed")
}

func (suite *ProjectServiceTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.projectService.GetByID(id)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestList_FilteredByState() {
	projects := []models.Project{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "p1", State: models.ProjectStateAccepted},
	}
	suite.mockRepo.EXPECT().GetByState(models.ProjectStateAccepted, 20, 0).Return(projects, int64(1), nil)

	resp, err := suite.projectService.List("accepted", 1, 20)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Projects, 1)
	assert.Equal(suite.T(), models.ProjectStateAccepted, resp.Projects[0].State)
}

func (suite *ProjectServiceTestSuite) TestList_InvalidStateFilter() {
	resp, err := suite.projectService.List("archived", 1, 20)

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *ProjectServiceTestSuite) TestList_Unfiltered() {
	suite.mockRepo.EXPECT().GetAll(20, 0).Return(nil, int64(0), nil)

	resp, err := suite.projectService.List("", 1, 20)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), resp.Projects)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
