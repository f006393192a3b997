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

type UserServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockRepo    *mocks.MockUserRepositoryInterface
	userService *service.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.userService = service.NewUserService(suite.mockRepo, validator.New())
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserServiceTestSuite) TestCreate_Success() {
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.ID = uuid.New()
		assert.True(suite.T(), u.IsActive)
		return nil
	})

	resp, err := suite.userService.Create(&service.CreateUserRequest{
		FullName: "Layla Hamdan",
		Username: "lhamdan",
		Email:    "lhamdan@test.edu",
		Role:     "student",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.UserRoleStudent, resp.Role)
	assert.True(suite.T(), resp.IsActive)
}

func (suite *UserServiceTestSuite) TestCreate_InvalidRole() {
	resp, err := suite.userService.Create(&service.CreateUserRequest{
		FullName: "Layla Hamdan",
		Username: "lhamdan",
		Email:    "lhamdan@test.edu",
		Role:     "provost",
	})

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *UserServiceTestSuite) TestCreate_InvalidEmail() {
	resp, err := suite.userService.Create(&service.CreateUserRequest{
		FullName: "Layla Hamdan",
		Username: "lhamdan",
		Email:    "not-an-email",
		Role:     "student",
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorContains(suite.T(), err, "validation failed")
}

func (suite *UserServiceTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.userService.GetByID(id)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestHasRole_Match() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(&models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.UserRoleDean,
		IsActive:  true,
	}, nil)

	ok, err := suite.userService.HasRole(id, models.UserRoleDean)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
}

func (suite *UserServiceTestSuite) TestHasRole_InactiveUserHoldsNoRoles() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(&models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.UserRoleDean,
		IsActive:  false,
	}, nil)

	ok, err := suite.userService.HasRole(id, models.UserRoleDean)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *UserServiceTestSuite) TestHasRole_UnknownUser() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	ok, err := suite.userService.HasRole(id, models.UserRoleStudent)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *UserServiceTestSuite) TestList_FilteredByRole() {
	users := []models.User{
		{BaseModel: models.BaseModel{ID: uuid.New()}, FullName: "Dean One", Role: models.UserRoleDean},
	}
	suite.mockRepo.EXPECT().GetByRole(models.UserRoleDean, 20, 0).Return(users, int64(1), nil)

	resp, err := suite.userService.List("dean", 1, 20)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Users, 1)
	assert.Equal(suite.T(), models.UserRoleDean, resp.Users[0].Role)
}

func (suite *UserServiceTestSuite) TestList_InvalidRoleFilter() {
	resp, err := suite.userService.List("provost", 1, 20)

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
