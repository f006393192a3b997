package service

import (
	"fmt"

	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/repository"

	"github.com/google/uuid"
)

// MembershipGuard enforces that a user belongs to at most one official
// group at a time
type MembershipGuard struct{}

// NewMembershipGuard creates a new membership guard
func NewMembershipGuard() *MembershipGuard {
	return &MembershipGuard{}
}

// AssertAvailable fails with a MembershipConflictError listing every user id
// that already belongs to an official group. Callers must pass the group
// repository bound to the finalize transaction; the check is only race-free
// inside that lock scope.
func (g *MembershipGuard) AssertAvailable(groups repository.GroupRepositoryInterface, userIDs []uuid.UUID) error {
	taken, err := groups.GetTakenUserIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if len(taken) > 0 {
		return apperrors.NewMembershipConflictError(taken)
	}
	return nil
}
