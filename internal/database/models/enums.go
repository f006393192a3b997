package models

// UserRole defines the academic roles a user can hold
type UserRole string

const (
	UserRoleStudent        UserRole = "student"
	UserRoleSupervisor     UserRole = "supervisor"
	UserRoleCoSupervisor   UserRole = "co_supervisor"
	UserRoleDepartmentHead UserRole = "department_head"
	UserRoleDean           UserRole = "dean"
	UserRoleAdmin          UserRole = "admin"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleSupervisor, UserRoleCoSupervisor,
		UserRoleDepartmentHead, UserRoleDean, UserRoleAdmin:
		return true
	}
	return false
}

// ParticipantRole defines the role an invitee plays in a formation request
type ParticipantRole string

const (
	ParticipantRoleStudent      ParticipantRole = "student"
	ParticipantRoleSupervisor   ParticipantRole = "supervisor"
	ParticipantRoleCoSupervisor ParticipantRole = "co_supervisor"
)

// IsValid checks if the ParticipantRole is valid
func (r ParticipantRole) IsValid() bool {
	switch r {
	case ParticipantRoleStudent, ParticipantRoleSupervisor, ParticipantRoleCoSupervisor:
		return true
	}
	return false
}

// ParticipantStatus defines the response state of a formation-request invitee
type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusRejected ParticipantStatus = "rejected"
)

// IsValid checks if the ParticipantStatus is valid
func (s ParticipantStatus) IsValid() bool {
	switch s {
	case ParticipantStatusPending, ParticipantStatusAccepted, ParticipantStatusRejected:
		return true
	}
	return false
}

// ApprovalType defines the kinds of sequential approval chains
type ApprovalType string

const (
	ApprovalTypeProjectProposal   ApprovalType = "project_proposal"
	ApprovalTypeCompanySubmission ApprovalType = "company_submission"
)

// IsValid checks if the ApprovalType is valid
func (t ApprovalType) IsValid() bool {
	switch t {
	case ApprovalTypeProjectProposal, ApprovalTypeCompanySubmission:
		return true
	}
	return false
}

// ApprovalStatus defines the state of an approval task
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusAccepted ApprovalStatus = "accepted"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid checks if the ApprovalStatus is valid
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusAccepted, ApprovalStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status allows no further transitions
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusAccepted || s == ApprovalStatusRejected
}

// ProjectState defines the lifecycle states of a project
type ProjectState string

const (
	ProjectStatePendingApproval ProjectState = "pending_approval"
	ProjectStateAccepted        ProjectState = "accepted"
	ProjectStateRejected        ProjectState = "rejected"
	ProjectStateReserved        ProjectState = "reserved"
)

// IsValid checks if the ProjectState is valid
func (s ProjectState) IsValid() bool {
	switch s {
	case ProjectStatePendingApproval, ProjectStateAccepted, ProjectStateRejected, ProjectStateReserved:
		return true
	}
	return false
}

// NotificationType defines the kinds of notification records
type NotificationType string

const (
	NotificationTypeInvitation      NotificationType = "invitation"
	NotificationTypeApprovalRequest NotificationType = "approval_request"
	NotificationTypeGroupFinalized  NotificationType = "group_finalized"
	NotificationTypeRequestRejected NotificationType = "request_rejected"
	NotificationTypeSystem          NotificationType = "system"
)

// IsValid checks if the NotificationType is valid
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInvitation, NotificationTypeApprovalRequest,
		NotificationTypeGroupFinalized, NotificationTypeRequestRejected, NotificationTypeSystem:
		return true
	}
	return false
}

// SupervisorType distinguishes lead supervisors from co-supervisors on a group
type SupervisorType string

const (
	SupervisorTypeSupervisor   SupervisorType = "supervisor"
	SupervisorTypeCoSupervisor SupervisorType = "co_supervisor"
)

// IsValid checks if the SupervisorType is valid
func (t SupervisorType) IsValid() bool {
	switch t {
	case SupervisorTypeSupervisor, SupervisorTypeCoSupervisor:
		return true
	}
	return false
}
