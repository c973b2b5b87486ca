package database

import "testing"

func TestNewUser_Defaults(t *testing.T) {
	user, err := NewUser(" Alice@Example.COM ", "alice", "hash", "")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != RoleCandidate {
		t.Fatalf("default role wrong: %q", user.Role)
	}
	if user.IsStaff || user.IsSuperuser {
		t.Fatalf("regular user must not carry elevated flags")
	}
	if !user.IsActive {
		t.Fatalf("new user should be active")
	}
}

func TestNewUser_AdminRejected(t *testing.T) {
	if _, err := NewUser("a@example.com", "a", "hash", RoleAdmin); err == nil {
		t.Fatalf("admin creation must go through NewAdminUser")
	}
	if _, err := NewUser("a@example.com", "a", "hash", "superuser"); err == nil {
		t.Fatalf("unknown role accepted")
	}
}

func TestNewAdminUser_FlagsConsistent(t *testing.T) {
	admin, err := NewAdminUser("root@example.com", "root", "hash")
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}
	if admin.Role != RoleAdmin || !admin.IsStaff || !admin.IsSuperuser {
		t.Fatalf("admin flags inconsistent: %+v", admin)
	}
	if err := admin.ValidateRoleFlags(); err != nil {
		t.Fatalf("validate admin flags: %v", err)
	}
}

func TestValidateRoleFlags_RejectsHalfElevated(t *testing.T) {
	cases := []User{
		{Role: RoleAdmin, IsStaff: true, IsSuperuser: false},
		{Role: RoleAdmin, IsStaff: false, IsSuperuser: true},
		{Role: RoleCandidate, IsStaff: true},
		{Role: RoleRecruiter, IsSuperuser: true},
	}
	for i, u := range cases {
		if err := u.ValidateRoleFlags(); err == nil {
			t.Fatalf("case %d: half-elevated user accepted: %+v", i, u)
		}
	}
}

func TestValidSkillProficiency(t *testing.T) {
	for _, v := range SkillProficiencies {
		if !ValidSkillProficiency(v) {
			t.Fatalf("allowed value %d rejected", v)
		}
	}
	for _, v := range []int{0, 10, 50, 99, 101} {
		if ValidSkillProficiency(v) {
			t.Fatalf("value %d should be rejected", v)
		}
	}
}
