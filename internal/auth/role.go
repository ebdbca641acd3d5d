package auth

import "github.com/frahmantamala/bakery-hub/internal"

// Role is one of a closed set. Anything that is not Manager is treated as Editor.
type Role string

const (
	RoleManager Role = "Manager"
	RoleEditor  Role = "Editor"
)

type Capability string

const (
	CapRead          Capability = "read"
	CapCreate        Capability = "create"
	CapEditAnyStatus Capability = "edit_any_status"
	CapDecide        Capability = "decide"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleManager: {CapRead: true, CapCreate: true, CapEditAnyStatus: true, CapDecide: true},
	RoleEditor:  {CapRead: true, CapCreate: true},
}

func ParseRole(s string) Role {
	if Role(s) == RoleManager {
		return RoleManager
	}
	return RoleEditor
}

func RoleOf(u *internal.User) Role {
	if u == nil {
		return RoleEditor
	}
	return ParseRole(u.Role)
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[ParseRole(string(r))][c]
}
