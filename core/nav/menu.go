package nav

import (
	"context"

	"github.com/kampushq/kampus/core/user"
)

// Flags are feature-availability switches that shape a teacher's menu.
type Flags struct {
	DirectsGroup            bool
	HasPreschoolAssignments bool
}

// Item is a navigation entry: either a direct target (Route) or a submenu
// (Children). Nesting goes at most two levels below the top.
type Item struct {
	Label    string `json:"label"`
	Route    string `json:"route,omitempty"`
	Children []Item `json:"children,omitempty"`
	Badge    int    `json:"badge,omitempty"`
}

// UnreadCounter supplies the unread notifications count shown as a badge.
type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// BuildMenu produces the ordered navigation tree for the given user.
// Pure function of the user's roles, the flags and the unread count;
// exactly one role-shaped variant applies, staff acting as the default
// administrative view and everyone else getting only the common entries.
func BuildMenu(usr user.User, flags Flags, unread int) []Item {
	items := []Item{{Label: "Home", Route: "/"}}

	switch {
	case usr.IsParent():
		items = append(items, parentItems()...)
	case usr.IsTeacher():
		items = append(items, teacherItems(flags)...)
	case usr.IsStaff():
		items = append(items, staffItems()...)
	}

	items = append(items, Item{Label: "Notifications", Route: "/notifications", Badge: unread})
	return items
}

func parentItems() []Item {
	return []Item{
		{Label: "My Children", Route: "/children"},
		{Label: "Bulletins", Route: "/bulletins"},
		{Label: "Payments", Route: "/payments"},
	}
}

func teacherItems(flags Flags) []Item {
	items := []Item{
		{Label: "My Groups", Route: "/my-groups"},
		{Label: "Grading", Children: []Item{
			{Label: "Enter Grades", Route: "/grades/enter"},
			{Label: "Bulletins", Route: "/grades/bulletins"},
		}},
		{Label: "Attendance", Route: "/attendance"},
	}
	if flags.DirectsGroup {
		items = append(items, Item{Label: "Group Direction", Children: []Item{
			{Label: "Students", Route: "/direction/students"},
			{Label: "Discipline Cases", Route: "/direction/discipline"},
		}})
	}
	if flags.HasPreschoolAssignments {
		items = append(items, Item{Label: "Preschool Evaluations", Route: "/preschool"})
	}
	return items
}

func staffItems() []Item {
	return []Item{
		{Label: "Students", Route: "/students"},
		{Label: "Enrollments", Route: "/enrollments"},
		{Label: "Teachers", Route: "/teachers"},
		{Label: "Academic", Children: []Item{
			{Label: "Periods", Route: "/academic/periods"},
			{Label: "Grades", Route: "/academic/grades"},
			{Label: "Groups", Route: "/academic/groups"},
			{Label: "Evaluation", Children: []Item{
				{Label: "Scales", Route: "/academic/evaluation/scales"},
				{Label: "Achievements", Route: "/academic/evaluation/achievements"},
			}},
		}},
		{Label: "Discipline", Route: "/discipline"},
		{Label: "Reports", Children: []Item{
			{Label: "Enrollment Lists", Route: "/reports/enrollment-lists"},
			{Label: "Group Bulletins", Route: "/reports/group-bulletins"},
			{Label: "Student Bulletins", Route: "/reports/student-bulletins"},
		}},
	}
}

// OwnsRoute reports whether the item or any of its descendants targets route.
func (it Item) OwnsRoute(route string) bool {
	if it.Route == route && route != "" {
		return true
	}
	for _, child := range it.Children {
		if child.OwnsRoute(route) {
			return true
		}
	}
	return false
}
