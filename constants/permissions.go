package constants

// Role permissions
const (
	PermSuperAdminFull = "salon-booking.superadmin.full-permit"
	PermAdminFull      = "salon-booking.admin.full-permit"
	PermControllerFull = "salon-booking.controller.full-permit"
	PermArtistFull     = "salon-booking.artist.full-permit"
	PermMemberFull     = "salon-booking.member.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	StaffPermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
		PermControllerFull,
	}

	StatusUpdatePermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
		PermControllerFull,
		PermArtistFull,
	}
)

// PermissionForRole maps a user role to its full-permit permission string.
func PermissionForRole(role string) string {
	switch role {
	case "superadmin":
		return PermSuperAdminFull
	case "admin":
		return PermAdminFull
	case "controller":
		return PermControllerFull
	case "artist":
		return PermArtistFull
	case "member":
		return PermMemberFull
	default:
		return ""
	}
}
