// Package permission enumerates the capability strings checked by the
// authorization layer and the built-in role assignments.
package permission

import (
	"encoding/json"
	"sort"
)

// Permission is a namespaced capability string, resource:action.
type Permission string

const (
	BookRead   Permission = "book:read"
	BookCreate Permission = "book:create"
	BookUpdate Permission = "book:update"
	BookDelete Permission = "book:delete"

	BorrowCreate Permission = "borrow:create"
	BorrowRead   Permission = "borrow:read"
	BorrowReturn Permission = "borrow:return"

	MemberRead   Permission = "member:read"
	MemberCreate Permission = "member:create"
	MemberUpdate Permission = "member:update"
	MemberDelete Permission = "member:delete"

	RoleManage Permission = "role:manage"
)

// Built-in role names seeded at startup.
const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleMember    = "member"
)

func All() []Permission {
	perms := []Permission{
		BookRead, BookCreate, BookUpdate, BookDelete,
		BorrowCreate, BorrowRead, BorrowReturn,
		MemberRead, MemberCreate, MemberUpdate, MemberDelete,
		RoleManage,
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// RolePermissions maps each built-in role to its ordered permission list.
func RolePermissions() map[string][]Permission {
	return map[string][]Permission{
		RoleAdmin: All(),
		RoleLibrarian: {
			BookRead, BookCreate, BookUpdate, BookDelete,
			BorrowCreate, BorrowRead, BorrowReturn,
			MemberRead, MemberCreate, MemberUpdate,
		},
		RoleMember: {
			BookRead,
			BorrowCreate, BorrowRead, BorrowReturn,
		},
	}
}

func Strings(perms []Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

// Set is the effective permission set resolved for a role.
type Set map[Permission]struct{}

func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParseSet decodes a serialized permission list. A malformed value
// yields an empty set, never an error: a bad role row must reduce the
// effective permissions, not crash the request.
func ParseSet(serialized string) Set {
	if serialized == "" {
		return Set{}
	}
	var raw []string
	if err := json.Unmarshal([]byte(serialized), &raw); err != nil {
		return Set{}
	}
	s := make(Set, len(raw))
	for _, p := range raw {
		s[Permission(p)] = struct{}{}
	}
	return s
}

func (s Set) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Missing returns the required permissions absent from the set.
func (s Set) Missing(required []Permission) []Permission {
	var missing []Permission
	for _, p := range required {
		if !s.Contains(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Serialize encodes a permission list for storage on a role row.
func Serialize(perms []Permission) string {
	b, err := json.Marshal(Strings(perms))
	if err != nil {
		return "[]"
	}
	return string(b)
}
