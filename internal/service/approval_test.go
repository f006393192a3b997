package service_test

import (
	"errors"
	"testing"
	"time"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/mocks"
	"project-groups-backend/internal/repository"
	"project-groups-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockTaskRepo    *mocks.MockApprovalTaskRepositoryInterface
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockProjectRepo *mocks.MockProjectRepositoryInterface
	mockNotifRepo   *mocks.MockNotificationRepositoryInterface
	approvalService *service.ApprovalService

	requesterID  uuid.UUID
	headID       uuid.UUID
	deanID       uuid.UUID
	departmentID uuid.UUID
	collegeID    uuid.UUID
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTaskRepo = mocks.NewMockApprovalTaskRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockProjectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.mockNotifRepo = mocks.NewMockNotificationRepositoryInterface(suite.ctrl)
	v := validator.New()

	uow := &fakeUnitOfWork{tx: &repository.TxRepositories{
		Users:         suite.mockUserRepo,
		Projects:      suite.mockProjectRepo,
		Requests:      mocks.NewMockFormationRequestRepositoryInterface(suite.ctrl),
		Groups:        mocks.NewMockGroupRepositoryInterface(suite.ctrl),
		Approvals:     suite.mockTaskRepo,
		Notifications: suite.mockNotifRepo,
	}}

	chains := map[models.ApprovalType][]models.UserRole{
		models.ApprovalTypeProjectProposal:   {models.UserRoleDepartmentHead, models.UserRoleDean},
		models.ApprovalTypeCompanySubmission: {models.UserRoleSupervisor, models.UserRoleDepartmentHead, models.UserRoleDean},
	}
	suite.approvalService = service.NewApprovalService(
		uow,
		suite.mockTaskRepo,
		suite.mockUserRepo,
		service.NewNotificationService(suite.mockNotifRepo, v),
		chains,
		v,
	)

	suite.requesterID = uuid.New()
	suite.headID = uuid.New()
	suite.deanID = uuid.New()
	suite.departmentID = uuid.New()
	suite.collegeID = uuid.New()
}

func (suite *ApprovalServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ApprovalServiceTestSuite) TestBuildApprovalChains_Valid() {
	chains, err := service.BuildApprovalChains(map[string][]string{
		"project_proposal":   {"department_head", "dean"},
		"company_submission": {"supervisor", "department_head", "dean"},
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), chains, 2)
	assert.Equal(suite.T(),
		[]models.UserRole{models.UserRoleDepartmentHead, models.UserRoleDean},
		chains[models.ApprovalTypeProjectProposal])
}

func (suite *ApprovalServiceTestSuite) TestBuildApprovalChains_UnknownType() {
	chains, err := service.BuildApprovalChains(map[string][]string{
		"coffee_run": {"dean"},
	})

	assert.Nil(suite.T(), chains)
	assert.ErrorContains(suite.T(), err, "unknown approval type")
}

func (suite *ApprovalServiceTestSuite) TestBuildApprovalChains_UnknownRole() {
	chains, err := service.BuildApprovalChains(map[string][]string{
		"project_proposal": {"janitor"},
	})

	assert.Nil(suite.T(), chains)
	assert.ErrorContains(suite.T(), err, "unknown role")
}

func (suite *ApprovalServiceTestSuite) TestBuildApprovalChains_EmptyChain() {
	chains, err := service.BuildApprovalChains(map[string][]string{
		"project_proposal": {},
	})

	assert.Nil(suite.T(), chains)
	assert.ErrorContains(suite.T(), err, "is empty")
}

func (suite *ApprovalServiceTestSuite) TestCreate_ResolvesFirstApproverAndNotifies() {
	projectID := uuid.New()
	req := &service.CreateApprovalTaskRequest{
		ApprovalType: models.ApprovalTypeProjectProposal,
		ProjectID:    &projectID,
		RequestedBy:  suite.requesterID,
		DepartmentID: &suite.departmentID,
		CollegeID:    &suite.collegeID,
	}

	suite.mockUserRepo.EXPECT().
		GetApproverByRole(models.UserRoleDepartmentHead, &suite.departmentID, &suite.collegeID).
		Return(&models.User{BaseModel: models.BaseModel{ID: suite.headID}}, nil)
	suite.mockTaskRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(task *models.ApprovalTask) error {
		task.ID = uuid.New()
		assert.Equal(suite.T(), 1, task.Level)
		assert.Equal(suite.T(), models.ApprovalStatusPending, task.Status)
		assert.Equal(suite.T(), suite.headID, *task.CurrentApproverID)
		return nil
	})
	suite.mockNotifRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(n *models.NotificationRecord) error {
		assert.Equal(suite.T(), suite.headID, n.RecipientID)
		assert.Equal(suite.T(), models.NotificationTypeApprovalRequest, n.Type)
		return nil
	})

	resp, err := suite.approvalService.Create(req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, resp.Level)
	assert.Equal(suite.T(), 2, resp.ChainLength)
	assert.Equal(suite.T(), suite.headID, *resp.CurrentApproverID)
}

func (suite *ApprovalServiceTestSuite) TestCreate_DeanChainIgnoresDepartmentScope() {
	req := &service.CreateApprovalTaskRequest{
		ApprovalType: models.ApprovalTypeProjectProposal,
		RequestedBy:  suite.requesterID,
		DepartmentID: &suite.departmentID,
		CollegeID:    &suite.collegeID,
	}
	// swap the configured chain so the dean sits at level 1
	chains := map[models.ApprovalType][]models.UserRole{
		models.ApprovalTypeProjectProposal: {models.UserRoleDean},
	}
	svc := service.NewApprovalService(
		&fakeUnitOfWork{tx: &repository.TxRepositories{
			Approvals:     suite.mockTaskRepo,
			Notifications: suite.mockNotifRepo,
		}},
		suite.mockTaskRepo,
		suite.mockUserRepo,
		service.NewNotificationService(suite.mockNotifRepo, validator.New()),
		chains,
		validator.New(),
	)

	suite.mockUserRepo.EXPECT().
		GetApproverByRole(models.UserRoleDean, nil, &suite.collegeID).
		Return(&models.User{BaseModel: models.BaseModel{ID: suite.deanID}}, nil)
	suite.mockTaskRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockNotifRepo.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := svc.Create(req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.deanID, *resp.CurrentApproverID)
}

func (suite *ApprovalServiceTestSuite) TestCreate_ChainNotConfigured() {
	svc := service.NewApprovalService(
		&fakeUnitOfWork{tx: &repository.TxRepositories{}},
		suite.mockTaskRepo,
		suite.mockUserRepo,
		service.NewNotificationService(suite.mockNotifRepo, validator.New()),
		map[models.ApprovalType][]models.UserRole{},
		validator.New(),
	)

	resp, err := svc.Create(&service.CreateApprovalTaskRequest{
		ApprovalType: models.ApprovalTypeProjectProposal,
		RequestedBy:  suite.requesterID,
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrChainNotConfigured)
}

func (suite *ApprovalServiceTestSuite) TestCreate_ApproverNotFound() {
	suite.mockUserRepo.EXPECT().
		GetApproverByRole(models.UserRoleDepartmentHead, gomock.Any(), gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.approvalService.Create(&service.CreateApprovalTaskRequest{
		ApprovalType: models.ApprovalTypeProjectProposal,
		RequestedBy:  suite.requesterID,
		DepartmentID: &suite.departmentID,
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrApproverNotFound)
}

func (suite *ApprovalServiceTestSuite) pendingTask(level int) *models.ApprovalTask {
	projectID := uuid.New()
	return &models.ApprovalTask{
		BaseModel:         models.BaseModel{ID: uuid.New()},
		ApprovalType:      models.ApprovalTypeProjectProposal,
		ProjectID:         &projectID,
		RequestedByID:     suite.requesterID,
		CurrentApproverID: &suite.headID,
		Level:             level,
		Status:            models.ApprovalStatusPending,
	}
}

func (suite *ApprovalServiceTestSuite) TestAdvance_AcceptMovesToNextLevel() {
	task := suite.pendingTask(1)

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.mockNotifRepo.EXPECT().MarkReadByRelation(task.ID, suite.headID).Return(nil)
	suite.mockUserRepo.EXPECT().GetByID(suite.requesterID).Return(&models.User{
		BaseModel:    models.BaseModel{ID: suite.requesterID},
		DepartmentID: &suite.departmentID,
		CollegeID:    &suite.collegeID,
	}, nil)
	// the dean is the level-2 approver, resolved college-wide
	suite.mockUserRepo.EXPECT().
		GetApproverByRole(models.UserRoleDean, nil, &suite.collegeID).
		Return(&models.User{BaseModel: models.BaseModel{ID: suite.deanID}}, nil)
	suite.mockTaskRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(t *models.ApprovalTask) error {
		assert.Equal(suite.T(), 2, t.Level)
		assert.Equal(suite.T(), models.ApprovalStatusPending, t.Status)
		assert.Equal(suite.T(), suite.deanID, *t.CurrentApproverID)
		return nil
	})
	suite.mockNotifRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(n *models.NotificationRecord) error {
		assert.Equal(suite.T(), suite.deanID, n.RecipientID)
		return nil
	})

	resp, err := suite.approvalService.Advance(task.ID, suite.headID, &service.DecisionRequest{Decision: "accept"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, resp.Level)
	assert.Equal(suite.T(), models.ApprovalStatusPending, resp.Status)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_RequesterLookupErrorSurfaces() {
	task := suite.pendingTask(1)

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.mockNotifRepo.EXPECT().MarkReadByRelation(task.ID, suite.headID).Return(nil)
	// the next approver must not be resolved without the requester's scope
	suite.mockUserRepo.EXPECT().GetByID(suite.requesterID).
		Return(nil, errors.New("connection reset by peer"))

	resp, err := suite.approvalService.Advance(task.ID, suite.headID, &service.DecisionRequest{Decision: "accept"})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
	assert.Contains(suite.T(), err.Error(), "failed to resolve requester")
}

func (suite *ApprovalServiceTestSuite) TestAdvance_FinalAcceptCompletesTask() {
	task := suite.pendingTask(2)
	task.CurrentApproverID = &suite.deanID

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.mockNotifRepo.EXPECT().MarkReadByRelation(task.ID, suite.deanID).Return(nil)
	suite.mockTaskRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(t *models.ApprovalTask) error {
		assert.Equal(suite.T(), models.ApprovalStatusAccepted, t.Status)
		assert.NotNil(suite.T(), t.ApprovedAt)
		assert.Nil(suite.T(), t.CurrentApproverID)
		return nil
	})
	suite.mockProjectRepo.EXPECT().UpdateState(*task.ProjectID, models.ProjectStateAccepted).Return(nil)
	suite.mockNotifRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(n *models.NotificationRecord) error {
		assert.Equal(suite.T(), suite.requesterID, n.RecipientID)
		assert.Equal(suite.T(), models.NotificationTypeSystem, n.Type)
		return nil
	})

	resp, err := suite.approvalService.Advance(task.ID, suite.deanID, &service.DecisionRequest{Decision: "accept"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApprovalStatusAccepted, resp.Status)
	assert.NotNil(suite.T(), resp.ApprovedAt)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_RejectTerminatesAndRejectsProject() {
	task := suite.pendingTask(1)

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)
	suite.mockNotifRepo.EXPECT().MarkReadByRelation(task.ID, suite.headID).Return(nil)
	suite.mockTaskRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(t *models.ApprovalTask) error {
		assert.Equal(suite.T(), models.ApprovalStatusRejected, t.Status)
		assert.Nil(suite.T(), t.CurrentApproverID)
		assert.Equal(suite.T(), "too broad in scope", t.Comments)
		return nil
	})
	suite.mockProjectRepo.EXPECT().UpdateState(*task.ProjectID, models.ProjectStateRejected).Return(nil)
	suite.mockNotifRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(n *models.NotificationRecord) error {
		assert.Equal(suite.T(), suite.requesterID, n.RecipientID)
		return nil
	})

	resp, err := suite.approvalService.Advance(task.ID, suite.headID, &service.DecisionRequest{
		Decision: "reject",
		Comments: "too broad in scope",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApprovalStatusRejected, resp.Status)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_TerminalTask() {
	task := suite.pendingTask(2)
	task.Status = models.ApprovalStatusAccepted
	now := time.Now()
	task.ApprovedAt = &now

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)

	resp, err := suite.approvalService.Advance(task.ID, suite.headID, &service.DecisionRequest{Decision: "accept"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskAlreadyTerminal)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_NotCurrentApprover() {
	task := suite.pendingTask(1)

	suite.mockTaskRepo.EXPECT().GetByID(task.ID).Return(task, nil)

	resp, err := suite.approvalService.Advance(task.ID, uuid.New(), &service.DecisionRequest{Decision: "accept"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotCurrentApprover)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_TaskNotFound() {
	taskID := uuid.New()
	suite.mockTaskRepo.EXPECT().GetByID(taskID).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.approvalService.Advance(taskID, suite.headID, &service.DecisionRequest{Decision: "accept"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrApprovalTaskNotFound)
}

func (suite *ApprovalServiceTestSuite) TestAdvance_InvalidDecision() {
	resp, err := suite.approvalService.Advance(uuid.New(), suite.headID, &service.DecisionRequest{Decision: "escalate"})

	assert.Nil(suite.T(), resp)
	assert.ErrorContains(suite.T(), err, "validation failed")
}

func (suite *ApprovalServiceTestSuite) TestListForApprover_Success() {
	tasks := []models.ApprovalTask{*suite.pendingTask(1), *suite.pendingTask(1)}
	suite.mockTaskRepo.EXPECT().GetByApproverID(suite.headID, 20, 0).Return(tasks, int64(2), nil)

	resp, err := suite.approvalService.ListForApprover(suite.headID, 1, 20)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Tasks, 2)
	assert.Equal(suite.T(), int64(2), resp.Total)
	assert.Equal(suite.T(), 2, resp.Tasks[0].ChainLength)
}

func (suite *ApprovalServiceTestSuite) TestListForRequester_Success() {
	tasks := []models.ApprovalTask{*suite.pendingTask(1)}
	suite.mockTaskRepo.EXPECT().GetByRequestedByID(suite.requesterID, 10, 10).Return(tasks, int64(11), nil)

	resp, err := suite.approvalService.ListForRequester(suite.requesterID, 2, 10)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Tasks, 1)
	assert.Equal(suite.T(), int64(11), resp.Total)
	assert.Equal(suite.T(), 2, resp.Page)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
