package service_test

import (
	"testing"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/mocks"
	"project-groups-backend/internal/repository"
	"project-groups-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type GroupServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockGroupRepo   *mocks.MockGroupRepositoryInterface
	mockProjectRepo *mocks.MockProjectRepositoryInterface
	groupService    *service.GroupService

	memberID uuid.UUID
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockGroupRepo = mocks.NewMockGroupRepositoryInterface(suite.ctrl)
	suite.mockProjectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)

	uow := &fakeUnitOfWork{tx: &repository.TxRepositories{
		Groups:   suite.mockGroupRepo,
		Projects: suite.mockProjectRepo,
	}}
	suite.groupService = service.NewGroupService(uow, suite.mockGroupRepo, suite.mockProjectRepo)
	suite.memberID = uuid.New()
}

func (suite *GroupServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *GroupServiceTestSuite) groupWithMember() *models.OfficialGroup {
	groupID := uuid.New()
	return &models.OfficialGroup{
		BaseModel:    models.BaseModel{ID: groupID},
		GroupName:    "Robotics Squad",
		RequestID:    uuid.New(),
		DepartmentID: uuid.New(),
		Members: []models.GroupMember{
			{BaseModel: models.BaseModel{ID: uuid.New()}, GroupID: groupID, UserID: suite.memberID},
		},
	}
}

func (suite *GroupServiceTestSuite) TestGetByID_Success() {
	group := suite.groupWithMember()
	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)

	resp, err := suite.groupService.GetByID(group.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Robotics Squad", resp.GroupName)
	assert.Len(suite.T(), resp.Members, 1)
}

func (suite *GroupServiceTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mockGroupRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.groupService.GetByID(id)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrGroupNotFound)
}

func (suite *GroupServiceTestSuite) TestGetAll_Success() {
	groups := []models.OfficialGroup{*suite.groupWithMember(), *suite.groupWithMember()}
	suite.mockGroupRepo.EXPECT().GetAll(20, 0).Return(groups, int64(2), nil)

	resp, err := suite.groupService.GetAll(1, 20)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Groups, 2)
	assert.Equal(suite.T(), int64(2), resp.Total)
}

func (suite *GroupServiceTestSuite) TestLinkProject_Success() {
	group := suite.groupWithMember()
	projectID := uuid.New()

	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)
	suite.mockProjectRepo.EXPECT().GetByID(projectID).
		Return(&models.Project{BaseModel: models.BaseModel{ID: projectID}, State: models.ProjectStateAccepted}, nil)
	suite.mockGroupRepo.EXPECT().LinkProject(group.ID, projectID).Return(nil)
	suite.mockProjectRepo.EXPECT().UpdateState(projectID, models.ProjectStateReserved).Return(nil)

	linked := *group
	linked.ProjectID = &projectID
	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(&linked, nil)

	resp, err := suite.groupService.LinkProject(group.ID, projectID, suite.memberID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), projectID, *resp.ProjectID)
}

func (suite *GroupServiceTestSuite) TestLinkProject_NotGroupMember() {
	group := suite.groupWithMember()
	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)

	resp, err := suite.groupService.LinkProject(group.ID, uuid.New(), uuid.New())

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotGroupMember)
}

func (suite *GroupServiceTestSuite) TestLinkProject_AlreadyLinked() {
	group := suite.groupWithMember()
	existing := uuid.New()
	group.ProjectID = &existing
	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)

	resp, err := suite.groupService.LinkProject(group.ID, uuid.New(), suite.memberID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectAlreadyLinked)
}

func (suite *GroupServiceTestSuite) TestLinkProject_ProjectNotAccepted() {
	group := suite.groupWithMember()
	projectID := uuid.New()

	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)
	suite.mockProjectRepo.EXPECT().GetByID(projectID).
		Return(&models.Project{BaseModel: models.BaseModel{ID: projectID}, State: models.ProjectStatePendingApproval}, nil)

	resp, err := suite.groupService.LinkProject(group.ID, projectID, suite.memberID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotLinkable)
}

func (suite *GroupServiceTestSuite) TestLinkProject_ProjectNotFound() {
	group := suite.groupWithMember()
	projectID := uuid.New()

	suite.mockGroupRepo.EXPECT().GetByID(group.ID).Return(group, nil)
	suite.mockProjectRepo.EXPECT().GetByID(projectID).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.groupService.LinkProject(group.ID, projectID, suite.memberID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
