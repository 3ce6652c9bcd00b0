package user

import (
	"strings"
	"time"
)

// Roles
const (
	// Administrative staff
	RoleStaff          = "staff:"
	RoleStaffAdmin     = "staff:admin"
	RoleStaffSecretary = "staff:secretary"

	// Teacher
	RoleTeacher = "teacher:"

	// Parent / guardian
	RoleParent = "parent:"

	// Student
	RoleStudent = "student:"
)

var (
	rolePriorities = map[string]int{
		// Staff: 30 - 21
		RoleStaffAdmin:     30,
		RoleStaffSecretary: 29,
		RoleStaff:          21,

		// Teachers: 20 - 11
		RoleTeacher: 11,

		// Parents: 10 - 2
		RoleParent: 2,

		// Students: 1
		RoleStudent: 1,
	}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Parent", Value: RoleParent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Staff", Value: RoleStaff},
		{Name: "Staff Secretary", Value: RoleStaffSecretary},
		{Name: "Staff Admin", Value: RoleStaffAdmin},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PrimaryRole returns the display name of the highest-priority role held,
// or "" when none of the roles is known.
func PrimaryRole(roles []string) string {
	max := MaxRolePriority(roles)
	if max == 0 {
		return ""
	}
	for _, r := range Roles {
		if RolePriority(r.Value) == max {
			return r.Name
		}
	}
	return ""
}

// User is the read-only view of an account as served by the Kampus API.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
	LastLogin time.Time `json:"last_login"` // UTC
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsStaff() bool {
	return u.RoleStartsWith(RoleStaff)
}

func (u *User) IsTeacher() bool {
	return u.RoleStartsWith(RoleTeacher)
}

func (u *User) IsParent() bool {
	return u.RoleStartsWith(RoleParent)
}

func (u *User) IsStudent() bool {
	return u.RoleStartsWith(RoleStudent)
}
