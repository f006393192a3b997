package service_test

import (
	"errors"
	"testing"

	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/mocks"
	"project-groups-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MembershipGuardTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockGroupRepo *mocks.MockGroupRepositoryInterface
	guard         *service.MembershipGuard
}

func (suite *MembershipGuardTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockGroupRepo = mocks.NewMockGroupRepositoryInterface(suite.ctrl)
	suite.guard = service.NewMembershipGuard()
}

func (suite *MembershipGuardTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MembershipGuardTestSuite) TestAssertAvailable_AllFree() {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	suite.mockGroupRepo.EXPECT().GetTakenUserIDs(ids).Return(nil, nil)

	err := suite.guard.AssertAvailable(suite.mockGroupRepo, ids)

	assert.NoError(suite.T(), err)
}

func (suite *MembershipGuardTestSuite) TestAssertAvailable_ConflictListsTakenUsers() {
	free := uuid.New()
	taken := uuid.New()
	suite.mockGroupRepo.EXPECT().GetTakenUserIDs([]uuid.UUID{free, taken}).
		Return([]uuid.UUID{taken}, nil)

	err := suite.guard.AssertAvailable(suite.mockGroupRepo, []uuid.UUID{free, taken})

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsMembershipConflict(err))

	var conflict *apperrors.MembershipConflictError
	assert.ErrorAs(suite.T(), err, &conflict)
	assert.Equal(suite.T(), []uuid.UUID{taken}, conflict.OffendingIDs)
	assert.Contains(suite.T(), err.Error(), taken.String())
}

func (suite *MembershipGuardTestSuite) TestAssertAvailable_RepositoryError() {
	ids := []uuid.UUID{uuid.New()}
	suite.mockGroupRepo.EXPECT().GetTakenUserIDs(ids).Return(nil, errors.New("connection reset"))

	err := suite.guard.AssertAvailable(suite.mockGroupRepo, ids)

	assert.Error(suite.T(), err)
	assert.False(suite.T(), apperrors.IsMembershipConflict(err))
}

func TestMembershipGuardTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipGuardTestSuite))
}
