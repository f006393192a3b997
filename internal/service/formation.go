package service

import (
	"errors"
	"fmt"
	"time"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationService coordinates group formation requests: roster validation,
// per-participant responses and the finalize-into-official-group transition
type FormationService struct {
	uow         repository.UnitOfWork
	requestRepo repository.FormationRequestRepositoryInterface
	groupRepo   repository.GroupRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	deptRepo    repository.DepartmentRepositoryInterface
	collegeRepo repository.CollegeRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	notifier    *NotificationService
	guard       *MembershipGuard
	validator   *validator.Validate
}

// NewFormationService creates a new formation service
func NewFormationService(
	uow repository.UnitOfWork,
	requestRepo repository.FormationRequestRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	deptRepo repository.DepartmentRepositoryInterface,
	collegeRepo repository.CollegeRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	notifier *NotificationService,
	guard *MembershipGuard,
	validator *validator.Validate,
) *FormationService {
	return &FormationService{
		uow:         uow,
		requestRepo: requestRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		deptRepo:    deptRepo,
		collegeRepo: collegeRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
		guard:       guard,
		validator:   validator,
	}
}

// InlineProjectRequest carries an optional project proposal submitted
// together with the formation request
type InlineProjectRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Type        string `json:"type" validate:"required,max=100"`
	Description string `json:"description"`
}

// CreateFormationRequest represents the request to create a group formation request
type CreateFormationRequest struct {
	GroupName       string                `json:"group_name" validate:"required,max=255"`
	CreatorID       uuid.UUID             `json:"-"`
	DepartmentID    uuid.UUID             `json:"department_id" validate:"required"`
	CollegeID       uuid.UUID             `json:"college_id" validate:"required"`
	Note            string                `json:"note"`
	StudentIDs      []uuid.UUID           `json:"student_ids" validate:"required,min=1"`
	SupervisorIDs   []uuid.UUID           `json:"supervisor_ids"`
	CoSupervisorIDs []uuid.UUID           `json:"co_supervisor_ids"`
	ProjectID       *uuid.UUID            `json:"project_id,omitempty"`
	Project         *InlineProjectRequest `json:"project,omitempty"`
}

// RespondRequest represents a participant's decision on an invitation
type RespondRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// ParticipantResponse represents one participant's state on a request
type ParticipantResponse struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"user_id"`
	Name        string                   `json:"name,omitempty"`
	Role        models.ParticipantRole   `json:"role"`
	Status      models.ParticipantStatus `json:"status"`
	RespondedAt *time.Time               `json:"responded_at,omitempty"`
}

// FormationRequestResponse represents a formation request
type FormationRequestResponse struct {
	ID               uuid.UUID             `json:"id"`
	GroupName        string                `json:"group_name"`
	CreatorID        uuid.UUID             `json:"creator_id"`
	DepartmentID     uuid.UUID             `json:"department_id"`
	CollegeID        uuid.UUID             `json:"college_id"`
	ProjectID        *uuid.UUID            `json:"project_id,omitempty"`
	Note             string                `json:"note"`
	IsFullyConfirmed bool                  `json:"is_fully_confirmed"`
	CreatedAt        time.Time             `json:"created_at"`
	Participants     []ParticipantResponse `json:"participants"`
}

// RespondOutcome reports the settled state of a request after a response
type RespondOutcome struct {
	RequestID        uuid.UUID  `json:"request_id"`
	IsFullyConfirmed bool       `json:"is_fully_confirmed"`
	GroupID          *uuid.UUID `json:"group_id,omitempty"`
}

// MyGroupResponse describes the caller's current group situation: an
// official group, pending formation requests, or neither
type MyGroupResponse struct {
	IsOfficialGroup bool                       `json:"is_official_group"`
	IsPending       bool                       `json:"is_pending"`
	Group           *GroupResponse             `json:"group,omitempty"`
	PendingRequests []FormationRequestResponse `json:"pending_requests,omitempty"`
}

// Create validates the roster and persists the formation request, its
// participants and their invitation notifications in one unit of work. The
// creator's participant row is pre-accepted. Every violated validation rule
// is reported, not just the first.
func (s *FormationService) Create(req *CreateFormationRequest) (*FormationRequestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	violations := &apperrors.ValidationErrors{}

	// (a) counts within bounds
	if len(req.StudentIDs) > models.MaxStudents {
		violations.Add("student_ids", fmt.Sprintf("at most %d students allowed", models.MaxStudents))
	}
	if len(req.SupervisorIDs) > models.MaxSupervisors {
		violations.Add("supervisor_ids", fmt.Sprintf("at most %d supervisors allowed", models.MaxSupervisors))
	}
	if len(req.CoSupervisorIDs) > models.MaxCoSupervisors {
		violations.Add("co_supervisor_ids", fmt.Sprintf("at most %d co-supervisors allowed", models.MaxCoSupervisors))
	}

	// (b) no id repeated across lists
	allIDs := make([]uuid.UUID, 0, len(req.StudentIDs)+len(req.SupervisorIDs)+len(req.CoSupervisorIDs))
	allIDs = append(allIDs, req.StudentIDs...)
	allIDs = append(allIDs, req.SupervisorIDs...)
	allIDs = append(allIDs, req.CoSupervisorIDs...)
	seen := make(map[uuid.UUID]bool, len(allIDs))
	duplicate := false
	for _, id := range allIDs {
		if seen[id] {
			duplicate = true
		}
		seen[id] = true
	}
	if duplicate {
		violations.Add("roster", "a user may appear only once across the student, supervisor and co-supervisor lists")
	}

	// (c) all ids resolve to existing actors
	uniqueIDs := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		uniqueIDs = append(uniqueIDs, id)
	}
	existing, err := s.userRepo.GetByIDs(uniqueIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster users: %w", err)
	}
	if len(existing) != len(uniqueIDs) {
		found := make(map[uuid.UUID]bool, len(existing))
		for _, u := range existing {
			found[u.ID] = true
		}
		for _, id := range uniqueIDs {
			if !found[id] {
				violations.Add("roster", fmt.Sprintf("user %s does not exist", id))
			}
		}
	}

	// (d) department and college references resolve
	if _, err := s.deptRepo.GetByID(req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			violations.Add("department_id", "department does not exist")
		} else {
			return nil, fmt.Errorf("failed to verify department: %w", err)
		}
	}
	if _, err := s.collegeRepo.GetByID(req.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			violations.Add("college_id", "college does not exist")
		} else {
			return nil, fmt.Errorf("failed to verify college: %w", err)
		}
	}

	// (e) creator must be on the student list
	creatorListed := false
	for _, id := range req.StudentIDs {
		if id == req.CreatorID {
			creatorListed = true
			break
		}
	}
	if !creatorListed {
		violations.Add("student_ids", "the creator must appear in the student list")
	}

	if req.ProjectID != nil && req.Project != nil {
		violations.Add("project", "provide either a project reference or an inline project, not both")
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(*req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				violations.Add("project_id", "project does not exist")
			} else {
				return nil, fmt.Errorf("failed to verify project: %w", err)
			}
		}
	}

	if violations.HasViolations() {
		return nil, violations
	}

	creator, err := s.userRepo.GetByID(req.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}

	var request *models.GroupFormationRequest
	err = s.uow.Do(func(tx *repository.TxRepositories) error {
		projectID := req.ProjectID
		if req.Project != nil {
			project := &models.Project{
				Title:        req.Project.Title,
				Type:         req.Project.Type,
				Description:  req.Project.Description,
				State:        models.ProjectStatePendingApproval,
				DepartmentID: &req.DepartmentID,
			}
			if err := tx.Projects.Create(project); err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}
			projectID = &project.ID
		}

		now := time.Now()
		request = &models.GroupFormationRequest{
			GroupName:    req.GroupName,
			CreatorID:    req.CreatorID,
			DepartmentID: req.DepartmentID,
			CollegeID:    req.CollegeID,
			ProjectID:    projectID,
			Note:         req.Note,
		}
		appendParticipants := func(ids []uuid.UUID, role models.ParticipantRole) {
			for _, id := range ids {
				participant := models.Participant{
					UserID: id,
					Role:   role,
					Status: models.ParticipantStatusPending,
				}
				if id == req.CreatorID {
					// the creator never waits on their own invitation
					participant.Status = models.ParticipantStatusAccepted
					respondedAt := now
					participant.RespondedAt = &respondedAt
				}
				request.Participants = append(request.Participants, participant)
			}
		}
		appendParticipants(req.StudentIDs, models.ParticipantRoleStudent)
		appendParticipants(req.SupervisorIDs, models.ParticipantRoleSupervisor)
		appendParticipants(req.CoSupervisorIDs, models.ParticipantRoleCoSupervisor)

		if err := tx.Requests.Create(request); err != nil {
			return fmt.Errorf("failed to create formation request: %w", err)
		}

		for i := range request.Participants {
			p := &request.Participants[i]
			if p.UserID == req.CreatorID {
				continue
			}
			relatedID := p.ID
			_, err := s.notifier.Dispatch(tx.Notifications, DispatchInput{
				RecipientID: p.UserID,
				Type:        models.NotificationTypeInvitation,
				Title:       "Group invitation",
				Message:     fmt.Sprintf("%s invited you to join the group %q", creator.FullName, req.GroupName),
				RelatedID:   &relatedID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// a roster with no invitees has nobody left to respond, so it settles now
	if request.AllAccepted() {
		if _, materialized, err := s.Finalize(request.ID); err != nil {
			return nil, err
		} else if materialized {
			request.IsFullyConfirmed = true
		}
	}

	return s.toRequestResponse(request), nil
}

// GetByID retrieves a formation request
func (s *FormationService) GetByID(id uuid.UUID) (*FormationRequestResponse, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFormationRequestNotFound
		}
		return nil, fmt.Errorf("failed to get formation request: %w", err)
	}
	return s.toRequestResponse(request), nil
}

// Respond records a participant's decision. The participant update and its
// notification bookkeeping commit in one unit of work under a row lock on
// the request; an accepting response then runs finalize, which takes its
// own lock so a membership conflict never rolls back the acceptance itself.
func (s *FormationService) Respond(requestID, userID uuid.UUID, req *RespondRequest) (*RespondOutcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	accept := req.Decision == "accept"

	var creatorID uuid.UUID
	var groupName string
	err := s.uow.Do(func(tx *repository.TxRepositories) error {
		request, err := tx.Requests.GetByIDForUpdate(requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFormationRequestNotFound
			}
			return fmt.Errorf("failed to get formation request: %w", err)
		}
		creatorID = request.CreatorID
		groupName = request.GroupName

		participant := request.FindParticipant(userID)
		if participant == nil {
			return apperrors.ErrNotAParticipant
		}
		if participant.Status != models.ParticipantStatusPending {
			return apperrors.ErrAlreadyResponded
		}
		if request.IsTerminal() {
			return apperrors.ErrRequestTerminated
		}

		now := time.Now()
		participant.RespondedAt = &now
		if accept {
			participant.Status = models.ParticipantStatusAccepted
		} else {
			participant.Status = models.ParticipantStatusRejected
		}
		if err := tx.Requests.UpdateParticipant(participant); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}

		if err := s.notifier.MarkReadByRelation(tx.Notifications, participant.ID, userID); err != nil {
			return err
		}

		if !accept {
			// one rejection terminates the whole request
			relatedID := participant.ID
			_, err := s.notifier.Dispatch(tx.Notifications, DispatchInput{
				RecipientID: creatorID,
				Type:        models.NotificationTypeRequestRejected,
				Title:       "Group invitation declined",
				Message:     fmt.Sprintf("An invitee declined to join %q; the formation request is closed", groupName),
				RelatedID:   &relatedID,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := &RespondOutcome{RequestID: requestID}
	if accept {
		groupID, _, err := s.Finalize(requestID)
		if err != nil {
			return nil, err
		}
		if groupID != nil {
			outcome.IsFullyConfirmed = true
			outcome.GroupID = groupID
		}
	}
	return outcome, nil
}

// Finalize materializes the official group once every participant has
// accepted. It is idempotent and safe under concurrent callers: the request
// row lock serializes the read-check-write, and a loser simply observes the
// already-confirmed request. Returns the group id (when one exists) and
// whether this call performed the materialization.
func (s *FormationService) Finalize(requestID uuid.UUID) (*uuid.UUID, bool, error) {
	var groupID *uuid.UUID
	materialized := false

	err := s.uow.Do(func(tx *repository.TxRepositories) error {
		request, err := tx.Requests.GetByIDForUpdate(requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFormationRequestNotFound
			}
			return fmt.Errorf("failed to get formation request: %w", err)
		}

		if request.HasRejection() {
			return nil
		}
		if request.IsFullyConfirmed {
			// already materialized by a concurrent caller
			existing, err := tx.Groups.GetByRequestID(requestID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return fmt.Errorf("failed to get official group: %w", err)
			}
			groupID = &existing.ID
			return nil
		}
		if !request.AllAccepted() {
			return nil
		}

		var memberIDs []uuid.UUID
		group := &models.OfficialGroup{
			GroupName:    request.GroupName,
			RequestID:    request.ID,
			DepartmentID: request.DepartmentID,
			ProjectID:    request.ProjectID,
		}
		for _, p := range request.Participants {
			switch p.Role {
			case models.ParticipantRoleStudent:
				memberIDs = append(memberIDs, p.UserID)
				group.Members = append(group.Members, models.GroupMember{UserID: p.UserID})
			case models.ParticipantRoleSupervisor:
				group.Supervisors = append(group.Supervisors, models.GroupSupervisor{
					UserID: p.UserID,
					Type:   models.SupervisorTypeSupervisor,
				})
			case models.ParticipantRoleCoSupervisor:
				group.Supervisors = append(group.Supervisors, models.GroupSupervisor{
					UserID: p.UserID,
					Type:   models.SupervisorTypeCoSupervisor,
				})
			}
		}

		if err := s.guard.AssertAvailable(tx.Groups, memberIDs); err != nil {
			return err
		}

		if err := tx.Groups.Create(group); err != nil {
			return fmt.Errorf("failed to create official group: %w", err)
		}
		if err := tx.Requests.MarkFullyConfirmed(request.ID); err != nil {
			return fmt.Errorf("failed to mark request confirmed: %w", err)
		}

		relatedID := group.ID
		if _, err := s.notifier.Dispatch(tx.Notifications, DispatchInput{
			RecipientID: request.CreatorID,
			Type:        models.NotificationTypeGroupFinalized,
			Title:       "Group formed",
			Message:     fmt.Sprintf("Everyone accepted; the group %q is now official", request.GroupName),
			RelatedID:   &relatedID,
		}); err != nil {
			return err
		}

		groupID = &group.ID
		materialized = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return groupID, materialized, nil
}

// MyGroup reports the user's current situation: their official group if they
// are a member, otherwise any still-open formation requests they created or
// were invited to
func (s *FormationService) MyGroup(userID uuid.UUID) (*MyGroupResponse, error) {
	group, err := s.groupRepo.GetByMemberUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get group membership: %w", err)
	}
	if group != nil {
		return &MyGroupResponse{
			IsOfficialGroup: true,
			Group:           toGroupResponse(group),
		}, nil
	}

	requests, err := s.requestRepo.GetPendingByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}
	if len(requests) == 0 {
		return &MyGroupResponse{}, nil
	}

	responses := make([]FormationRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *s.toRequestResponse(&requests[i])
	}
	return &MyGroupResponse{
		IsPending:       true,
		PendingRequests: responses,
	}, nil
}

func (s *FormationService) toRequestResponse(request *models.GroupFormationRequest) *FormationRequestResponse {
	participants := make([]ParticipantResponse, len(request.Participants))
	for i, p := range request.Participants {
		participants[i] = ParticipantResponse{
			ID:          p.ID,
			UserID:      p.UserID,
			Name:        p.User.FullName,
			Role:        p.Role,
			Status:      p.Status,
			RespondedAt: p.RespondedAt,
		}
	}
	return &FormationRequestResponse{
		ID:               request.ID,
		GroupName:        request.GroupName,
		CreatorID:        request.CreatorID,
		DepartmentID:     request.DepartmentID,
		CollegeID:        request.CollegeID,
		ProjectID:        request.ProjectID,
		Note:             request.Note,
		IsFullyConfirmed: request.IsFullyConfirmed,
		CreatedAt:        request.CreatedAt,
		Participants:     participants,
	}
}
