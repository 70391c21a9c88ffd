package permission

import "testing"

func TestRolePermissions(t *testing.T) {
	roles := RolePermissions()

	admin := NewSet(roles[RoleAdmin]...)
	for _, p := range All() {
		if !admin.Contains(p) {
			t.Fatalf("admin missing %s", p)
		}
	}

	librarian := NewSet(roles[RoleLibrarian]...)
	if librarian.Contains(RoleManage) {
		t.Fatal("librarian must not manage roles")
	}
	if librarian.Contains(MemberDelete) {
		t.Fatal("librarian must not delete members")
	}
	if !librarian.Contains(MemberUpdate) {
		t.Fatal("librarian should update members")
	}

	member := NewSet(roles[RoleMember]...)
	if len(member) != 4 {
		t.Fatalf("expected 4 member permissions, got %d", len(member))
	}
	if member.Contains(BookCreate) {
		t.Fatal("member must not create books")
	}
}

func TestParseSetRoundTrip(t *testing.T) {
	roles := RolePermissions()
	serialized := Serialize(roles[RoleMember])

	set := ParseSet(serialized)
	if !set.Contains(BorrowReturn) {
		t.Fatal("expected borrow:return after round trip")
	}
	if missing := set.Missing([]Permission{BookRead, BorrowCreate}); len(missing) != 0 {
		t.Fatalf("unexpected missing permissions: %v", missing)
	}
}

func TestParseSetMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"a":1}`, `[1,2,3]`} {
		set := ParseSet(raw)
		if len(set) != 0 {
			t.Fatalf("expected empty set for %q, got %v", raw, set)
		}
	}
}

func TestMissing(t *testing.T) {
	set := NewSet(BookRead)
	missing := set.Missing([]Permission{BookRead, BookCreate, RoleManage})
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing, got %v", missing)
	}
}
