package policy

import "github.com/spec-kit/ticket-tracker/internal/domain"

// The MANAGER bypass is explicit and total: every rule below grants a
// MANAGER before consulting ownership or assignment.

// CanViewTicket decides read access to a single ticket.
func CanViewTicket(role domain.Role, actorID, creatorID string, assigneeID *string) bool {
	switch role {
	case domain.RoleManager:
		return true
	case domain.RoleSupport:
		return assigneeID != nil && *assigneeID == actorID
	case domain.RoleUser:
		return creatorID == actorID
	}
	return false
}

// ListScope describes the store-level filter for ticket listings.
type ListScope struct {
	// CreatorID restricts to tickets created by this user, when set.
	CreatorID *string
	// AssigneeID restricts to tickets assigned to this user, when set.
	AssigneeID *string
}

// TicketListScope returns the role-based filter for listing tickets:
// MANAGER sees everything, SUPPORT only assigned tickets, USER only own.
func TicketListScope(role domain.Role, actorID string) ListScope {
	switch role {
	case domain.RoleSupport:
		return ListScope{AssigneeID: &actorID}
	case domain.RoleUser:
		return ListScope{CreatorID: &actorID}
	}
	return ListScope{}
}

// CanCreateTicket decides whether the role may open new tickets.
func CanCreateTicket(role domain.Role) bool {
	return role == domain.RoleUser || role == domain.RoleManager
}

// CanAssignTicket decides whether the role may assign tickets.
func CanAssignTicket(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleSupport
}

// CanChangeStatus decides whether the role may move tickets along the
// status chain.
func CanChangeStatus(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleSupport
}

// CanDeleteTicket decides whether the role may hard-delete tickets.
func CanDeleteTicket(role domain.Role) bool {
	return role == domain.RoleManager
}

// IsAssignableRole validates the assignment target: the assignee, not the
// actor, must currently hold SUPPORT or MANAGER. A USER-role account is
// never assignable regardless of who performs the assignment.
func IsAssignableRole(role domain.Role) bool {
	return role == domain.RoleSupport || role == domain.RoleManager
}

// CanCommentOnTicket decides whether the actor may post to the ticket's
// thread: owner for USER, assignee for SUPPORT, anyone for MANAGER.
func CanCommentOnTicket(role domain.Role, actorID, creatorID string, assigneeID *string) bool {
	return CanViewTicket(role, actorID, creatorID, assigneeID)
}

// CanViewComments mirrors the view rule for the comment thread.
func CanViewComments(role domain.Role, actorID, creatorID string, assigneeID *string) bool {
	return CanViewTicket(role, actorID, creatorID, assigneeID)
}

// CanModifyComment decides update/delete rights on a comment: its author
// or any MANAGER.
func CanModifyComment(role domain.Role, actorID, authorID string) bool {
	if role == domain.RoleManager {
		return true
	}
	return actorID == authorID
}
