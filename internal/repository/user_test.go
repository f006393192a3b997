//go:build integration
// +build integration

package repository

import (
	"testing"

	"project-groups-backend/internal/database/models"
	"project-groups-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet

	college    *models.College
	department *models.Department
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.college = suite.factories.College.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(suite.college).Error)
	suite.department = suite.factories.Department.WithCollege(suite.college.ID)
	suite.Require().NoError(suite.baseTestSuite.DB.Create(suite.department).Error)
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := suite.factories.User.WithDepartment(suite.department.ID, suite.college.ID)

	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, user.ID)
	suite.NotZero(user.CreatedAt)
}

// TestCreateDuplicateUsername tests the unique username constraint
func (suite *UserRepositoryTestSuite) TestCreateDuplicateUsername() {
	first := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.User.Create()
	second.Username = first.Username

	err := suite.repo.Create(second)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByIDs tests the roster resolution lookup
func (suite *UserRepositoryTestSuite) TestGetByIDs() {
	first := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.Create(first))
	second := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.Create(second))

	users, err := suite.repo.GetByIDs([]uuid.UUID{first.ID, second.ID, uuid.New()})

	suite.NoError(err)
	suite.Len(users, 2)
}

// TestGetApproverByRole_DepartmentScoped tests that a department head is
// resolved within their department only
func (suite *UserRepositoryTestSuite) TestGetApproverByRole_DepartmentScoped() {
	head := suite.factories.User.WithRole(models.UserRoleDepartmentHead)
	head.DepartmentID = &suite.department.ID
	head.CollegeID = &suite.college.ID
	suite.Require().NoError(suite.repo.Create(head))

	otherDept := suite.factories.Department.WithCollege(suite.college.ID)
	suite.Require().NoError(suite.baseTestSuite.DB.Create(otherDept).Error)

	found, err := suite.repo.GetApproverByRole(models.UserRoleDepartmentHead, &suite.department.ID, &suite.college.ID)
	suite.NoError(err)
	suite.Equal(head.ID, found.ID)

	_, err = suite.repo.GetApproverByRole(models.UserRoleDepartmentHead, &otherDept.ID, &suite.college.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetApproverByRole_CollegeWide tests dean resolution without a
// department filter
func (suite *UserRepositoryTestSuite) TestGetApproverByRole_CollegeWide() {
	dean := suite.factories.User.WithRole(models.UserRoleDean)
	dean.CollegeID = &suite.college.ID
	suite.Require().NoError(suite.repo.Create(dean))

	found, err := suite.repo.GetApproverByRole(models.UserRoleDean, nil, &suite.college.ID)

	suite.NoError(err)
	suite.Equal(dean.ID, found.ID)
}

// TestGetApproverByRole_InactiveSkipped tests that deactivated users never
// resolve as approvers
func (suite *UserRepositoryTestSuite) TestGetApproverByRole_InactiveSkipped() {
	head := suite.factories.User.WithRole(models.UserRoleDepartmentHead)
	head.DepartmentID = &suite.department.ID
	suite.Require().NoError(suite.repo.Create(head))
	// flip after insert: gorm skips zero values for columns with a default
	suite.Require().NoError(suite.baseTestSuite.DB.Model(head).Update("is_active", false).Error)

	_, err := suite.repo.GetApproverByRole(models.UserRoleDepartmentHead, &suite.department.ID, nil)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByRole tests the role filter with pagination
func (suite *UserRepositoryTestSuite) TestGetByRole() {
	suite.Require().NoError(suite.repo.Create(suite.factories.User.WithRole(models.UserRoleStudent)))
	suite.Require().NoError(suite.repo.Create(suite.factories.User.WithRole(models.UserRoleStudent)))
	suite.Require().NoError(suite.repo.Create(suite.factories.User.WithRole(models.UserRoleSupervisor)))

	students, total, err := suite.repo.GetByRole(models.UserRoleStudent, 10, 0)

	suite.NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(students, 2)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
