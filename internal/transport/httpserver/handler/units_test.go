package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	unitdomain "hometeam-go/internal/domain/unit"
)

func TestUnitErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{unitdomain.ErrUnitNotFound, http.StatusNotFound, "unit_not_found"},
		{unitdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found"},
		{unitdomain.ErrNotMember, http.StatusForbidden, "not_member"},
		{unitdomain.ErrNotAdmin, http.StatusForbidden, "not_admin"},
		{unitdomain.ErrAlreadyMember, http.StatusConflict, "already_member"},
		{unitdomain.ErrLastAdmin, http.StatusBadRequest, "last_admin"},
		{unitdomain.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	}
	for _, tc := range cases {
		status, code, ok := unitErrorStatus(tc.err)
		if !ok {
			t.Errorf("%v: expected a mapping", tc.err)
			continue
		}
		if status != tc.status || code != tc.code {
			t.Errorf("%v: got %d %q, want %d %q", tc.err, status, code, tc.status, tc.code)
		}
	}
}

func TestUnitErrorStatusUnmapped(t *testing.T) {
	if _, _, ok := unitErrorStatus(errors.New("connection reset")); ok {
		t.Fatal("unexpected mapping for an internal error")
	}
}

func TestMemberResponseCarriesPermissions(t *testing.T) {
	member := unitdomain.UnitMember{
		ID:        "member-1",
		UnitID:    "unit-1",
		UserID:    "user-1",
		Role:      unitdomain.RoleAdmin,
		Status:    unitdomain.StatusActive,
		CreatedAt: time.Now(),
	}

	resp := toMemberResponse(member)
	found := false
	for _, perm := range resp.Permissions {
		if perm == unitdomain.PermManageUnit {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected admin permissions to include %s, got %v", unitdomain.PermManageUnit, resp.Permissions)
	}

	member.Role = unitdomain.RoleMember
	resp = toMemberResponse(member)
	if len(resp.Permissions) != 2 {
		t.Fatalf("expected two member permissions, got %v", resp.Permissions)
	}
	for _, perm := range resp.Permissions {
		if perm == unitdomain.PermManageMembers {
			t.Fatal("member role must not manage members")
		}
	}
}
