//go:build integration
// +build integration

package repository

import (
	"sync"
	"testing"
	"time"

	"project-groups-backend/internal/database/models"
	"project-groups-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// FormationRequestRepositoryTestSuite tests the FormationRequestRepository
type FormationRequestRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *FormationRequestRepository
	userRepo      *UserRepository
	factories     *testutils.FactorySet

	college    *models.College
	department *models.Department
	creator    *models.User
	invitee    *models.User
}

// SetupSuite runs before all tests in the suite
func (suite *FormationRequestRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewFormationRequestRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *FormationRequestRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds the academic hierarchy each test builds requests on
func (suite *FormationRequestRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.college = suite.factories.College.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(suite.college).Error)
	suite.department = suite.factories.Department.WithCollege(suite.college.ID)
	suite.Require().NoError(suite.baseTestSuite.DB.Create(suite.department).Error)

	suite.creator = suite.factories.User.WithDepartment(suite.department.ID, suite.college.ID)
	suite.Require().NoError(suite.userRepo.Create(suite.creator))
	suite.invitee = suite.factories.User.WithDepartment(suite.department.ID, suite.college.ID)
	suite.Require().NoError(suite.userRepo.Create(suite.invitee))
}

// TearDownTest runs after each test
func (suite *FormationRequestRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *FormationRequestRepositoryTestSuite) newRequest() *models.GroupFormationRequest {
	request := suite.factories.FormationRequest.Create()
	request.DepartmentID = suite.department.ID
	request.CollegeID = suite.college.ID
	suite.factories.FormationRequest.WithCreator(request, suite.creator.ID)
	suite.factories.FormationRequest.WithParticipant(request, suite.invitee.ID, models.ParticipantRoleStudent)
	return request
}

// TestCreate tests creating a request with its participants in one call
func (suite *FormationRequestRepositoryTestSuite) TestCreate() {
	request := suite.newRequest()

	err := suite.repo.Create(request)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, request.ID)

	found, err := suite.repo.GetByID(request.ID)
	suite.NoError(err)
	suite.Len(found.Participants, 2)
	suite.False(found.IsFullyConfirmed)
}

// TestGetByID_NotFound tests that a missing request maps to gorm's sentinel
func (suite *FormationRequestRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetParticipant tests retrieving a single participant row
func (suite *FormationRequestRepositoryTestSuite) TestGetParticipant() {
	request := suite.newRequest()
	suite.Require().NoError(suite.repo.Create(request))

	participant, err := suite.repo.GetParticipant(request.ID, suite.invitee.ID)

	suite.NoError(err)
	suite.Equal(suite.invitee.ID, participant.UserID)
	suite.Equal(models.ParticipantStatusPending, participant.Status)

	_, err = suite.repo.GetParticipant(request.ID, uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestUpdateParticipant tests persisting a response
func (suite *FormationRequestRepositoryTestSuite) TestUpdateParticipant() {
	request := suite.newRequest()
	suite.Require().NoError(suite.repo.Create(request))

	participant, err := suite.repo.GetParticipant(request.ID, suite.invitee.ID)
	suite.Require().NoError(err)

	participant.Status = models.ParticipantStatusAccepted
	suite.NoError(suite.repo.UpdateParticipant(participant))

	reloaded, err := suite.repo.GetByID(request.ID)
	suite.NoError(err)
	suite.True(reloaded.AllAccepted())
}

// TestMarkFullyConfirmed tests flipping the confirmation flag
func (suite *FormationRequestRepositoryTestSuite) TestMarkFullyConfirmed() {
	request := suite.newRequest()
	suite.Require().NoError(suite.repo.Create(request))

	suite.NoError(suite.repo.MarkFullyConfirmed(request.ID))

	reloaded, err := suite.repo.GetByID(request.ID)
	suite.NoError(err)
	suite.True(reloaded.IsFullyConfirmed)
	suite.True(reloaded.IsTerminal())
}

// TestGetPendingByUserID tests that open requests surface for both the
// creator and invitees, and confirmed requests drop out
func (suite *FormationRequestRepositoryTestSuite) TestGetPendingByUserID() {
	open := suite.newRequest()
	suite.Require().NoError(suite.repo.Create(open))

	confirmed := suite.factories.FormationRequest.Create()
	confirmed.DepartmentID = suite.department.ID
	confirmed.CollegeID = suite.college.ID
	suite.factories.FormationRequest.WithCreator(confirmed, suite.creator.ID)
	confirmed.IsFullyConfirmed = true
	suite.Require().NoError(suite.repo.Create(confirmed))

	forCreator, err := suite.repo.GetPendingByUserID(suite.creator.ID)
	suite.NoError(err)
	suite.Len(forCreator, 1)
	suite.Equal(open.ID, forCreator[0].ID)

	forInvitee, err := suite.repo.GetPendingByUserID(suite.invitee.ID)
	suite.NoError(err)
	suite.Len(forInvitee, 1)

	forStranger, err := suite.repo.GetPendingByUserID(uuid.New())
	suite.NoError(err)
	suite.Empty(forStranger)
}

// TestGetByIDForUpdate tests the locked read inside a transaction
func (suite *FormationRequestRepositoryTestSuite) TestGetByIDForUpdate() {
	request := suite.newRequest()
	suite.Require().NoError(suite.repo.Create(request))

	err := suite.baseTestSuite.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := NewFormationRequestRepository(tx)
		locked, err := txRepo.GetByIDForUpdate(request.ID)
		if err != nil {
			return err
		}
		suite.Equal(request.ID, locked.ID)
		suite.Len(locked.Participants, 2)
		return nil
	})
	suite.NoError(err)
}

// TestConcurrentFinalizeCreatesOneGroup tests that the row lock serializes
// two finalize attempts: the loser blocks on GetByIDForUpdate, then observes
// the already-confirmed request and backs off, so exactly one official group
// exists for the request
func (suite *FormationRequestRepositoryTestSuite) TestConcurrentFinalizeCreatesOneGroup() {
	request := suite.newRequest()
	now := time.Now()
	for i := range request.Participants {
		request.Participants[i].Status = models.ParticipantStatusAccepted
		request.Participants[i].RespondedAt = &now
	}
	suite.Require().NoError(suite.repo.Create(request))

	finalize := func() (bool, error) {
		materialized := false
		err := suite.baseTestSuite.DB.Transaction(func(tx *gorm.DB) error {
			txRequests := NewFormationRequestRepository(tx)
			locked, err := txRequests.GetByIDForUpdate(request.ID)
			if err != nil {
				return err
			}
			if locked.IsFullyConfirmed {
				return nil
			}
			group := &models.OfficialGroup{
				GroupName:    locked.GroupName,
				RequestID:    locked.ID,
				DepartmentID: locked.DepartmentID,
			}
			for _, p := range locked.Participants {
				if p.Role == models.ParticipantRoleStudent {
					group.Members = append(group.Members, models.GroupMember{UserID: p.UserID})
				}
			}
			if err := NewGroupRepository(tx).Create(group); err != nil {
				return err
			}
			if err := txRequests.MarkFullyConfirmed(locked.ID); err != nil {
				return err
			}
			materialized = true
			return nil
		})
		return materialized, err
	}

	var wg sync.WaitGroup
	results := make([]bool, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = finalize()
		}(i)
	}
	wg.Wait()

	suite.NoError(errs[0])
	suite.NoError(errs[1])

	winners := 0
	for _, materialized := range results {
		if materialized {
			winners++
		}
	}
	suite.Equal(1, winners)

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.OfficialGroup{}).
		Where("request_id = ?", request.ID).Count(&count).Error)
	suite.Equal(int64(1), count)

	confirmed, err := suite.repo.GetByID(request.ID)
	suite.NoError(err)
	suite.True(confirmed.IsFullyConfirmed)
}

func TestFormationRequestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FormationRequestRepositoryTestSuite))
}
