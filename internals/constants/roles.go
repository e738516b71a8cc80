package constants

import "fmt"

// Role values carried in the JWT "role" claim.
const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner" // cross-centre super-role
)

// Role error message templates
const (
	ErrOnlyStaffCanAccess  = "❌ Only teachers, admins, or owners may access %s."
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
	ErrOnlyOwnersCanAccess = "❌ Only owners may access %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleParent,
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	// Staff = anyone who teaches or administers a centre.
	StaffRoles = []string{
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)
