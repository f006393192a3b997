package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a single validation rule violation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors aggregates every violated rule of a request so callers
// see the full list, not just the first failure
type ValidationErrors struct {
	Violations []*ValidationError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation
func (e *ValidationErrors) Add(field, message string) {
	e.Violations = append(e.Violations, &ValidationError{Field: field, Message: message})
}

// HasViolations reports whether any rule was violated
func (e *ValidationErrors) HasViolations() bool {
	return len(e.Violations) > 0
}

// Messages returns the violation messages as a flat list
func (e *ValidationErrors) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return msgs
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for AuthorizationError
func (e *AuthorizationError) Is(target error) bool {
	t, ok := target.(*AuthorizationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// MembershipConflictError is raised when finalize detects that a roster
// member already belongs to another official group. The whole finalize
// aborts; the request stays open so the conflict can be resolved out of band.
type MembershipConflictError struct {
	OffendingIDs []uuid.UUID
}

func (e *MembershipConflictError) Error() string {
	ids := make([]string, len(e.OffendingIDs))
	for i, id := range e.OffendingIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("membership conflict: users already belong to another group: %s", strings.Join(ids, ", "))
}

// Entity Not Found Errors
var (
	ErrUserNotFound             = &NotFoundError{Entity: "user"}
	ErrCollegeNotFound          = &NotFoundError{Entity: "college"}
	ErrDepartmentNotFound       = &NotFoundError{Entity: "department"}
	ErrProjectNotFound          = &NotFoundError{Entity: "project"}
	ErrFormationRequestNotFound = &NotFoundError{Entity: "formation request"}
	ErrGroupNotFound            = &NotFoundError{Entity: "group"}
	ErrApprovalTaskNotFound     = &NotFoundError{Entity: "approval task"}
	ErrNotificationNotFound     = &NotFoundError{Entity: "notification"}
	ErrApproverNotFound         = &NotFoundError{Entity: "approver for next level"}
)

// Authorization Errors
var (
	ErrNotAParticipant    = &AuthorizationError{Message: "user is not a participant of this formation request"}
	ErrNotCurrentApprover = &AuthorizationError{Message: "user is not the current approver of this task"}
	ErrNotGroupMember     = &AuthorizationError{Message: "user is not a member of this group"}
)

// Stale-State Conflict Errors
var (
	ErrAlreadyResponded    = errors.New("participant has already responded to this request")
	ErrRequestTerminated   = errors.New("formation request is terminal and accepts no further responses")
	ErrTaskAlreadyTerminal = errors.New("approval task is terminal and cannot be advanced")
)

// Business Logic Errors
var (
	ErrInvalidDecision         = errors.New("decision must be accept or reject")
	ErrProjectNotLinkable      = errors.New("project is not available for linking")
	ErrProjectAlreadyLinked    = errors.New("group already has a linked project")
	ErrChainNotConfigured      = errors.New("no approval chain configured for this approval type")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
)

// Authentication Errors
var (
	ErrMissingAuthToken = &AuthenticationError{Message: "missing or malformed authorization token"}
	ErrInvalidAuthToken = &AuthenticationError{Message: "invalid or expired authorization token"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError or ValidationErrors
func IsValidation(err error) bool {
	var validationErr *ValidationError
	var validationErrs *ValidationErrors
	return errors.As(err, &validationErr) || errors.As(err, &validationErrs)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsMembershipConflict checks if an error is a MembershipConflictError
func IsMembershipConflict(err error) bool {
	var conflictErr *MembershipConflictError
	return errors.As(err, &conflictErr)
}

// IsConflict checks if an error is a stale-state or invariant conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyResponded) ||
		errors.Is(err, ErrRequestTerminated) ||
		errors.Is(err, ErrTaskAlreadyTerminal) ||
		errors.Is(err, ErrProjectNotLinkable) ||
		errors.Is(err, ErrProjectAlreadyLinked) ||
		IsMembershipConflict(err)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewMembershipConflictError creates a MembershipConflictError with the
// offending user ids
func NewMembershipConflictError(offendingIDs []uuid.UUID) error {
	return &MembershipConflictError{OffendingIDs: offendingIDs}
}
