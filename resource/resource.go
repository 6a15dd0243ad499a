package resource

import (
	"salon-booking/constants"
	userModel "salon-booking/models/user"
)

// ModuleResponse describes one dashboard module the frontend may render
type ModuleResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Route      string `json:"route"`
	Permission string `json:"permission"`
	IsActive   bool   `json:"is_active"`
}

var modules = []ModuleResponse{
	{ID: 1, Name: "Dashboard", Route: "/dashboard", Permission: constants.PermAdminFull, IsActive: true},
	{ID: 2, Name: "Bookings", Route: "/bookings", Permission: constants.PermAny, IsActive: true},
	{ID: 3, Name: "My Assignments", Route: "/assignments", Permission: constants.PermArtistFull, IsActive: true},
	{ID: 4, Name: "Services", Route: "/services", Permission: constants.PermAdminFull, IsActive: true},
	{ID: 5, Name: "Categories", Route: "/categories", Permission: constants.PermAdminFull, IsActive: true},
	{ID: 6, Name: "Banners", Route: "/banners", Permission: constants.PermAdminFull, IsActive: true},
	{ID: 7, Name: "Status Codes", Route: "/status-codes", Permission: constants.PermSuperAdminFull, IsActive: true},
	{ID: 8, Name: "Users", Route: "/users", Permission: constants.PermSuperAdminFull, IsActive: true},
}

// ModulesForRole returns the active modules visible to the given role.
// Unknown roles only see modules tagged with the wildcard permission.
func ModulesForRole(role string) []ModuleResponse {
	granted := map[string]bool{
		constants.PermAny: true,
	}
	switch userModel.UserRole(role) {
	case userModel.RoleSuperAdmin:
		granted[constants.PermSuperAdminFull] = true
		granted[constants.PermAdminFull] = true
	case userModel.RoleAdmin, userModel.RoleController:
		granted[constants.PermAdminFull] = true
	case userModel.RoleArtist:
		granted[constants.PermArtistFull] = true
	}

	var visible []ModuleResponse
	for _, m := range modules {
		if m.IsActive && granted[m.Permission] {
			visible = append(visible, m)
		}
	}
	return visible
}
