package domain

import (
	"errors"
	"testing"
)

func TestResolveRole_DeclaredOrdinals(t *testing.T) {
	roles := Roles()
	if len(roles) != 2 {
		t.Fatalf("expected 2 declared roles, got %d", len(roles))
	}
	for i, want := range roles {
		got, err := ResolveRole(i + 1)
		if err != nil {
			t.Fatalf("ResolveRole(%d) error: %v", i+1, err)
		}
		if got != want {
			t.Fatalf("ResolveRole(%d) = %s, want %s", i+1, got, want)
		}
	}
	if r, _ := ResolveRole(1); r != RoleAdmin {
		t.Fatalf("ordinal 1 must stay admin, got %s", r)
	}
	if r, _ := ResolveRole(2); r != RoleCustomer {
		t.Fatalf("ordinal 2 must stay customer, got %s", r)
	}
}

func TestResolveRole_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, len(Roles()) + 1, 99} {
		if _, err := ResolveRole(n); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ResolveRole(%d): expected ErrInvalidRole, got %v", n, err)
		}
	}
}

func TestRole_OrdinalRoundTrip(t *testing.T) {
	for _, r := range Roles() {
		back, err := ResolveRole(r.Ordinal())
		if err != nil || back != r {
			t.Fatalf("role %s did not round-trip: %s %v", r, back, err)
		}
	}
	if Role("ghost").Ordinal() != 0 {
		t.Fatalf("unknown role should have ordinal 0")
	}
}

func TestCheckRoleTable(t *testing.T) {
	tests := []struct {
		name    string
		table   map[int]Role
		wantErr bool
	}{
		{"contiguous", map[int]Role{1: "a", 2: "b", 3: "c"}, false},
		{"gap", map[int]Role{1: "a", 3: "c"}, true},
		{"starts at zero", map[int]Role{0: "a", 1: "b"}, true},
		{"duplicate role", map[int]Role{1: "a", 2: "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRoleTable(tt.table)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkRoleTable() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoleSet_Contains(t *testing.T) {
	set := NewRoleSet(RoleAdmin)
	if !set.Contains(RoleAdmin) {
		t.Fatalf("expected admin in set")
	}
	if set.Contains(RoleCustomer) {
		t.Fatalf("customer should not be in set")
	}
}
