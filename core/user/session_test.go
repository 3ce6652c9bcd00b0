package user

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestNewSession(t *testing.T) {
	now := time.Now().UTC()
	token := signToken(t, Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "42",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Hour).Unix(),
		},
		Username: "profe",
		Email:    "profe@kampus.test",
		Roles:    []string{RoleTeacher},
	})

	sess, err := NewSession(token)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if sess.Token != token {
		t.Error("session does not hold the raw token")
	}
	if sess.Claims.Username != "profe" {
		t.Errorf("Claims.Username = %q; want %q", sess.Claims.Username, "profe")
	}

	usr := sess.User()
	if usr.ID != 42 {
		t.Errorf("User().ID = %d; want 42", usr.ID)
	}
	if !usr.IsTeacher() || usr.IsStaff() {
		t.Errorf("User() roles = %v; want a teacher", usr.Roles)
	}

	if _, err = NewSession("not.a.token"); err == nil {
		t.Error("NewSession() accepted garbage")
	}
}

func TestSession_Expired(t *testing.T) {
	origNow := NowFunc
	defer func() { NowFunc = origNow }()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }

	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{"future expiry", now.Add(time.Minute).Unix(), false},
		{"past expiry", now.Add(-time.Minute).Unix(), true},
		{"expiring right now", now.Unix(), true},
		{"no expiry claim", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := Session{Claims: Claims{StandardClaims: jwt.StandardClaims{ExpiresAt: tt.expiresAt}}}
			if got := sess.Expired(); got != tt.want {
				t.Errorf("Expired() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestUser_RoleStartsWith(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		check func(u *User) bool
		want  bool
	}{
		{"secretary is staff", []string{RoleStaffSecretary}, (*User).IsStaff, true},
		{"bare staff prefix is staff", []string{RoleStaff}, (*User).IsStaff, true},
		{"teacher is not staff", []string{RoleTeacher}, (*User).IsStaff, false},
		{"teacher is teacher", []string{RoleTeacher}, (*User).IsTeacher, true},
		{"parent who teaches is both", []string{RoleParent, RoleTeacher}, (*User).IsParent, true},
		{"no roles", nil, (*User).IsStudent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			if got := tt.check(u); got != tt.want {
				t.Errorf("role check = %v; want %v (roles %v)", got, tt.want, tt.roles)
			}
		})
	}
}

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{"admin outranks secretary", []string{RoleStaffSecretary, RoleStaffAdmin}, "Staff Admin"},
		{"secretary alone", []string{RoleStaffSecretary}, "Staff Secretary"},
		{"teacher outranks parent", []string{RoleParent, RoleTeacher}, "Teacher"},
		{"student", []string{RoleStudent}, "Student"},
		{"unknown roles only", []string{"visitor:"}, ""},
		{"no roles", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryRole(tt.roles); got != tt.want {
				t.Errorf("PrimaryRole(%v) = %q; want %q", tt.roles, got, tt.want)
			}
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{"admin tops secretary", []string{RoleStaffSecretary, RoleStaffAdmin}, 30},
		{"teacher", []string{RoleTeacher}, 11},
		{"student only", []string{RoleStudent}, 1},
		{"none", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxRolePriority(tt.roles); got != tt.want {
				t.Errorf("MaxRolePriority(%v) = %d; want %d", tt.roles, got, tt.want)
			}
		})
	}
}
