package models

// Role is the closed set of account roles. Authorization compares against
// explicit per-route role lists; there is no hierarchy between roles.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleHR          Role = "HR"
	RoleFaculty     Role = "FACULTY"
	RoleTeacher     Role = "TEACHER"
	RoleStudent     Role = "STUDENT"
	RoleStudyOffice Role = "STUDY_OFFICE"
)

// AllRoles lists every valid role.
var AllRoles = []Role{
	RoleAdmin,
	RoleHR,
	RoleFaculty,
	RoleTeacher,
	RoleStudent,
	RoleStudyOffice,
}

// ParseRole validates a raw string against the closed role set.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}
