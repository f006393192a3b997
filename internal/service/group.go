package service

import (
	"errors"
	"fmt"
	"time"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupService exposes read access to official groups and the
// project-linking transition
type GroupService struct {
	uow         repository.UnitOfWork
	groupRepo   repository.GroupRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
}

// NewGroupService creates a new group service
func NewGroupService(uow repository.UnitOfWork, groupRepo repository.GroupRepositoryInterface, projectRepo repository.ProjectRepositoryInterface) *GroupService {
	return &GroupService{
		uow:         uow,
		groupRepo:   groupRepo,
		projectRepo: projectRepo,
	}
}

// GroupMemberResponse represents one member or supervisor of a group
type GroupMemberResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name,omitempty"`
	Role   string    `json:"role"`
}

// GroupResponse represents an official group
type GroupResponse struct {
	ID           uuid.UUID             `json:"id"`
	GroupName    string                `json:"group_name"`
	RequestID    uuid.UUID             `json:"request_id"`
	DepartmentID uuid.UUID             `json:"department_id"`
	ProjectID    *uuid.UUID            `json:"project_id,omitempty"`
	Members      []GroupMemberResponse `json:"members"`
	Supervisors  []GroupMemberResponse `json:"supervisors"`
	CreatedAt    time.Time             `json:"created_at"`
}

// GroupListResponse represents a paginated list of official groups
type GroupListResponse struct {
	Groups   []GroupResponse `json:"groups"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// GetByID retrieves an official group
func (s *GroupService) GetByID(id uuid.UUID) (*GroupResponse, error) {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return toGroupResponse(group), nil
}

// GetAll retrieves official groups with pagination
func (s *GroupService) GetAll(page, pageSize int) (*GroupListResponse, error) {
	limit, offset := paginate(page, pageSize)
	groups, total, err := s.groupRepo.GetAll(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	responses := make([]GroupResponse, len(groups))
	for i := range groups {
		responses[i] = *toGroupResponse(&groups[i])
	}
	return &GroupListResponse{
		Groups:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// LinkProject attaches an accepted project to a group and reserves it so no
// other group can claim it. Only members of the group may link a project.
func (s *GroupService) LinkProject(groupID, projectID, actorID uuid.UUID) (*GroupResponse, error) {
	err := s.uow.Do(func(tx *repository.TxRepositories) error {
		group, err := tx.Groups.GetByID(groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGroupNotFound
			}
			return fmt.Errorf("failed to get group: %w", err)
		}

		isMember := false
		for _, id := range group.MemberUserIDs() {
			if id == actorID {
				isMember = true
				break
			}
		}
		if !isMember {
			return apperrors.ErrNotGroupMember
		}
		if group.ProjectID != nil {
			return apperrors.ErrProjectAlreadyLinked
		}

		project, err := tx.Projects.GetByID(projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrProjectNotFound
			}
			return fmt.Errorf("failed to get project: %w", err)
		}
		if project.State != models.ProjectStateAccepted {
			return apperrors.ErrProjectNotLinkable
		}

		if err := tx.Groups.LinkProject(groupID, projectID); err != nil {
			return fmt.Errorf("failed to link project: %w", err)
		}
		if err := tx.Projects.UpdateState(projectID, models.ProjectStateReserved); err != nil {
			return fmt.Errorf("failed to reserve project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(groupID)
}

func toGroupResponse(group *models.OfficialGroup) *GroupResponse {
	members := make([]GroupMemberResponse, len(group.Members))
	for i, m := range group.Members {
		members[i] = GroupMemberResponse{
			UserID: m.UserID,
			Name:   m.User.FullName,
			Role:   string(models.ParticipantRoleStudent),
		}
	}
	supervisors := make([]GroupMemberResponse, len(group.Supervisors))
	for i, sv := range group.Supervisors {
		supervisors[i] = GroupMemberResponse{
			UserID: sv.UserID,
			Name:   sv.User.FullName,
			Role:   string(sv.Type),
		}
	}
	return &GroupResponse{
		ID:           group.ID,
		GroupName:    group.GroupName,
		RequestID:    group.RequestID,
		DepartmentID: group.DepartmentID,
		ProjectID:    group.ProjectID,
		Members:      members,
		Supervisors:  supervisors,
		CreatedAt:    group.CreatedAt,
	}
}
