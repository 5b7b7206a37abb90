package domain

import "github.com/scentlog/scentlog/internal/domain/entity"

// Policy is the single authorization capability check. Services consult it
// before mutating operations instead of comparing role strings inline.
type Policy struct{}

// NewPolicy returns the default role-based policy.
func NewPolicy() Policy { return Policy{} }

// CanManageCatalog reports whether the role may create, edit or delete
// perfumes.
func (Policy) CanManageCatalog(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanModerate reports whether the role may remove other users' reviews,
// discussions and replies.
func (Policy) CanModerate(role entity.Role) bool {
	return role == entity.RoleAdmin || role == entity.RoleModerator
}

// CanEditOwn reports whether the actor may edit a record they own. Ownership
// is the only grant; privileged roles do not edit other users' content, they
// only moderate (delete) it.
func (Policy) CanEditOwn(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// CanDelete reports whether the actor may delete a record owned by ownerID,
// either through ownership or moderation capability.
func (p Policy) CanDelete(actorID string, role entity.Role, ownerID string) bool {
	return p.CanEditOwn(actorID, ownerID) || p.CanModerate(role)
}
