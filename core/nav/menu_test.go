package nav

import (
	"reflect"
	"testing"

	"github.com/kampushq/kampus/core/user"
)

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestBuildMenu_roleVariants(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		flags Flags
		want  []string
	}{
		{
			name:  "staff default",
			roles: []string{user.RoleStaffSecretary},
			want:  []string{"Home", "Students", "Enrollments", "Teachers", "Academic", "Discipline", "Reports", "Notifications"},
		},
		{
			name:  "teacher",
			roles: []string{user.RoleTeacher},
			want:  []string{"Home", "My Groups", "Grading", "Attendance", "Notifications"},
		},
		{
			name:  "teacher directing a group",
			roles: []string{user.RoleTeacher},
			flags: Flags{DirectsGroup: true},
			want:  []string{"Home", "My Groups", "Grading", "Attendance", "Group Direction", "Notifications"},
		},
		{
			name:  "teacher with preschool assignments",
			roles: []string{user.RoleTeacher},
			flags: Flags{DirectsGroup: true, HasPreschoolAssignments: true},
			want:  []string{"Home", "My Groups", "Grading", "Attendance", "Group Direction", "Preschool Evaluations", "Notifications"},
		},
		{
			name:  "parent",
			roles: []string{user.RoleParent},
			want:  []string{"Home", "My Children", "Bulletins", "Payments", "Notifications"},
		},
		{
			name:  "student fallback has no extra items",
			roles: []string{user.RoleStudent},
			want:  []string{"Home", "Notifications"},
		},
		{
			name: "no roles fallback",
			want: []string{"Home", "Notifications"},
		},
		{
			name:  "parent who also teaches gets the parent variant",
			roles: []string{user.RoleParent, user.RoleTeacher},
			want:  []string{"Home", "My Children", "Bulletins", "Payments", "Notifications"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := user.User{Roles: tt.roles}
			got := labels(BuildMenu(usr, tt.flags, 0))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildMenu() labels = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestBuildMenu_deterministic(t *testing.T) {
	usr := user.User{Roles: []string{user.RoleStaff}}
	a := BuildMenu(usr, Flags{}, 3)
	b := BuildMenu(usr, Flags{}, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildMenu() is not deterministic for identical inputs")
	}
}

func TestBuildMenu_notificationsBadge(t *testing.T) {
	usr := user.User{Roles: []string{user.RoleTeacher}}
	menu := BuildMenu(usr, Flags{}, 7)

	last := menu[len(menu)-1]
	if last.Label != "Notifications" {
		t.Fatalf("last item = %q; want Notifications", last.Label)
	}
	if last.Badge != 7 {
		t.Errorf("badge = %d; want 7", last.Badge)
	}
}

func TestBuildMenu_nestingDepth(t *testing.T) {
	usr := user.User{Roles: []string{user.RoleStaffAdmin}}
	menu := BuildMenu(usr, Flags{}, 0)

	var maxDepth func(items []Item, depth int) int
	maxDepth = func(items []Item, depth int) int {
		max := depth
		for _, it := range items {
			if d := maxDepth(it.Children, depth+1); d > max {
				max = d
			}
		}
		return max
	}
	// top level plus at most two nested levels
	if got := maxDepth(menu, 0); got > 3 {
		t.Errorf("menu depth = %d; want <= 3", got)
	}
}

func TestItem_OwnsRoute(t *testing.T) {
	academic := Item{Label: "Academic", Children: []Item{
		{Label: "Periods", Route: "/academic/periods"},
		{Label: "Evaluation", Children: []Item{
			{Label: "Scales", Route: "/academic/evaluation/scales"},
		}},
	}}

	tests := []struct {
		name  string
		route string
		want  bool
	}{
		{name: "direct child", route: "/academic/periods", want: true},
		{name: "grandchild", route: "/academic/evaluation/scales", want: true},
		{name: "foreign route", route: "/students", want: false},
		{name: "empty route", route: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := academic.OwnsRoute(tt.route); got != tt.want {
				t.Errorf("OwnsRoute(%q) = %v; want %v", tt.route, got, tt.want)
			}
		})
	}
}
