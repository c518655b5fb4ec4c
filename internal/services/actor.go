package services

import "skillhub.com/skillhub/internal/constants"

// Actor is the resolved session identity, passed explicitly into every
// operation. There is no ambient current-user state anywhere below the
// HTTP layer.
type Actor struct {
	ID       string
	Username string
	Role     constants.Role
}

func (a Actor) IsCustomer() bool {
	return a.Role == constants.RoleCustomer
}

func (a Actor) IsTasker() bool {
	return a.Role == constants.RoleTasker
}
