package user

import "github.com/google/uuid"

// Actor is the authenticated caller of a command.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

// ActsFor reports whether the actor may act with provider authority over providerID:
// any admin, or the provider itself.
func (a Actor) ActsFor(providerID uuid.UUID) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleProvider:
		return a.ID == providerID
	default:
		return false
	}
}
