package domain

import "testing"

func TestImplies_AdminSupersetOfUser(t *testing.T) {
	admin := Implies(RoleAdmin)
	user := Implies(RoleUser)

	for _, want := range user {
		found := false
		for _, got := range admin {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("Implies(ADMIN) missing %q implied by USER", want)
		}
	}
}

func TestImplies_UserDoesNotImplyAdmin(t *testing.T) {
	for _, r := range Implies(RoleUser) {
		if r == RoleAdmin {
			t.Fatalf("USER must not imply ADMIN")
		}
	}
}

func TestImplies_UnknownRole(t *testing.T) {
	if got := Implies("SUPERUSER"); len(got) != 0 {
		t.Fatalf("unknown role implied %v", got)
	}
}

func TestIdentity_Grants(t *testing.T) {
	admin := Identity{Username: "root", Roles: []string{RoleAdmin}}
	user := Identity{Username: "alice", Roles: []string{RoleUser}}

	if !admin.Grants(RoleUser) {
		t.Fatalf("admin should grant USER via hierarchy")
	}
	if !admin.Grants(RoleAdmin) {
		t.Fatalf("admin should grant ADMIN")
	}
	if !user.Grants(RoleUser) {
		t.Fatalf("user should grant USER")
	}
	if user.Grants(RoleAdmin) {
		t.Fatalf("user must not grant ADMIN")
	}
	if (Identity{}).Grants(RoleUser) {
		t.Fatalf("empty identity must grant nothing")
	}
}

func TestUser_Is_CaseInsensitive(t *testing.T) {
	u := &User{Username: "Admin"}
	if !u.Is("admin") || !u.Is("ADMIN") {
		t.Fatalf("username comparison must ignore case")
	}
	if u.Is("admin2") {
		t.Fatalf("different usernames must not match")
	}
}
