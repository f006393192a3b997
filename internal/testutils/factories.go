package testutils

import (
	"fmt"
	"time"

	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
)

// CollegeFactory provides methods to create test College data
type CollegeFactory struct{}

// NewCollegeFactory creates a new CollegeFactory
func NewCollegeFactory() *CollegeFactory {
	return &CollegeFactory{}
}

// Create creates a test College with default values
func (f *CollegeFactory) Create() *models.College {
	id := uuid.New()
	return &models.College{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		// unique suffix avoids collisions with the college name unique index
		Name: "College of Engineering " + id.String()[:8],
	}
}

// WithName sets a custom name for the college
func (f *CollegeFactory) WithName(name string) *models.College {
	college := f.Create()
	college.Name = name
	return college
}

// DepartmentFactory provides methods to create test Department data
type DepartmentFactory struct{}

// NewDepartmentFactory creates a new DepartmentFactory
func NewDepartmentFactory() *DepartmentFactory {
	return &DepartmentFactory{}
}

// Create creates a test Department with default values
func (f *DepartmentFactory) Create() *models.Department {
	id := uuid.New()
	return &models.Department{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		CollegeID: uuid.New(),
		Name:      "Department of Software Engineering " + id.String()[:8],
	}
}

// WithCollege sets the college ID for the department
func (f *DepartmentFactory) WithCollege(collegeID uuid.UUID) *models.Department {
	department := f.Create()
	department.CollegeID = collegeID
	return department
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	// unique username and email using part of the UUID to avoid conflicts
	suffix := id.String()[:8]

	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FullName: "Test Student",
		Username: "student_" + suffix,
		Email:    fmt.Sprintf("student_%s@test.edu", suffix),
		Role:     models.UserRoleStudent,
		IsActive: true,
	}
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithDepartment sets the department and college for the user
func (f *UserFactory) WithDepartment(departmentID, collegeID uuid.UUID) *models.User {
	user := f.Create()
	user.DepartmentID = &departmentID
	user.CollegeID = &collegeID
	return user
}

// WithName sets a custom full name for the user
func (f *UserFactory) WithName(name string) *models.User {
	user := f.Create()
	user.FullName = name
	return user
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:       "Test Graduation Project",
		Type:        "internal",
		Description: "A test project for testing purposes",
		State:       models.ProjectStatePendingApproval,
	}
}

// WithState sets a custom state for the project
func (f *ProjectFactory) WithState(state models.ProjectState) *models.Project {
	project := f.Create()
	project.State = state
	return project
}

// WithDepartment sets the department ID for the project
func (f *ProjectFactory) WithDepartment(departmentID uuid.UUID) *models.Project {
	project := f.Create()
	project.DepartmentID = &departmentID
	return project
}

// FormationRequestFactory provides methods to create test GroupFormationRequest data
type FormationRequestFactory struct{}

// NewFormationRequestFactory creates a new FormationRequestFactory
func NewFormationRequestFactory() *FormationRequestFactory {
	return &FormationRequestFactory{}
}

// Create creates a test GroupFormationRequest with default values. The
// roster is empty; add participants with WithParticipant.
func (f *FormationRequestFactory) Create() *models.GroupFormationRequest {
	return &models.GroupFormationRequest{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		GroupName:    "Test Group",
		CreatorID:    uuid.New(),
		DepartmentID: uuid.New(),
		CollegeID:    uuid.New(),
	}
}

// WithCreator sets the creator and adds their pre-accepted participant row
func (f *FormationRequestFactory) WithCreator(request *models.GroupFormationRequest, creatorID uuid.UUID) *models.GroupFormationRequest {
	request.CreatorID = creatorID
	now := time.Now()
	request.Participants = append(request.Participants, models.Participant{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		RequestID:   request.ID,
		UserID:      creatorID,
		Role:        models.ParticipantRoleStudent,
		Status:      models.ParticipantStatusAccepted,
		RespondedAt: &now,
	})
	return request
}

// WithParticipant adds a pending participant to the request
func (f *FormationRequestFactory) WithParticipant(request *models.GroupFormationRequest, userID uuid.UUID, role models.ParticipantRole) *models.GroupFormationRequest {
	request.Participants = append(request.Participants, models.Participant{
		BaseModel: models.BaseModel{ID: uuid.New()},
		RequestID: request.ID,
		UserID:    userID,
		Role:      role,
		Status:    models.ParticipantStatusPending,
	})
	return request
}

// OfficialGroupFactory provides methods to create test OfficialGroup data
type OfficialGroupFactory struct{}

// NewOfficialGroupFactory creates a new OfficialGroupFactory
func NewOfficialGroupFactory() *OfficialGroupFactory {
	return &OfficialGroupFactory{}
}

// Create creates a test OfficialGroup with default values
func (f *OfficialGroupFactory) Create() *models.OfficialGroup {
	return &models.OfficialGroup{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		GroupName:    "Test Group",
		RequestID:    uuid.New(),
		DepartmentID: uuid.New(),
	}
}

// WithMember adds a student member to the group
func (f *OfficialGroupFactory) WithMember(group *models.OfficialGroup, userID uuid.UUID) *models.OfficialGroup {
	group.Members = append(group.Members, models.GroupMember{
		BaseModel: models.BaseModel{ID: uuid.New()},
		GroupID:   group.ID,
		UserID:    userID,
	})
	return group
}

// WithSupervisor adds a supervisor to the group
func (f *OfficialGroupFactory) WithSupervisor(group *models.OfficialGroup, userID uuid.UUID, svType models.SupervisorType) *models.OfficialGroup {
	group.Supervisors = append(group.Supervisors, models.GroupSupervisor{
		BaseModel: models.BaseModel{ID: uuid.New()},
		GroupID:   group.ID,
		UserID:    userID,
		Type:      svType,
	})
	return group
}

// NotificationFactory provides methods to create test NotificationRecord data
type NotificationFactory struct{}

// NewNotificationFactory creates a new NotificationFactory
func NewNotificationFactory() *NotificationFactory {
	return &NotificationFactory{}
}

// Create creates a test NotificationRecord with default values
func (f *NotificationFactory) Create() *models.NotificationRecord {
	return &models.NotificationRecord{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		RecipientID: uuid.New(),
		Type:        models.NotificationTypeSystem,
		Title:       "Test Notification",
		Message:     "A test notification for testing purposes",
	}
}

// WithRecipient sets the recipient for the notification
func (f *NotificationFactory) WithRecipient(recipientID uuid.UUID) *models.NotificationRecord {
	record := f.Create()
	record.RecipientID = recipientID
	return record
}

// WithRelated sets the related entity for the notification
func (f *NotificationFactory) WithRelated(relatedID uuid.UUID) *models.NotificationRecord {
	record := f.Create()
	record.RelatedID = &relatedID
	return record
}

// FactorySet provides access to all factories
type FactorySet struct {
	College          *CollegeFactory
	Department       *DepartmentFactory
	User             *UserFactory
	Project          *ProjectFactory
	FormationRequest *FormationRequestFactory
	OfficialGroup    *OfficialGroupFactory
	Notification     *NotificationFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		College:          NewCollegeFactory(),
		Department:       NewDepartmentFactory(),
		User:             NewUserFactory(),
		Project:          NewProjectFactory(),
		FormationRequest: NewFormationRequestFactory(),
		OfficialGroup:    NewOfficialGroupFactory(),
		Notification:     NewNotificationFactory(),
	}
}

// CreateAcademicHierarchy creates a college, a department within it, and a
// department head plus dean scoped to them
func (fs *FactorySet) CreateAcademicHierarchy() (*models.College, *models.Department, *models.User, *models.User) {
	college := fs.College.Create()
	department := fs.Department.WithCollege(college.ID)

	head := fs.User.WithRole(models.UserRoleDepartmentHead)
	head.DepartmentID = &department.ID
	head.CollegeID = &college.ID

	dean := fs.User.WithRole(models.UserRoleDean)
	dean.CollegeID = &college.ID

	return college, department, head, dean
}
