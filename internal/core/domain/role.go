package domain

import (
	"fmt"
	"sort"
)

// Role is a symbolic access level carried (as an ordinal) inside every issued credential.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// roleTable is the encoding contract between credential ordinals and roles.
// Entries may be appended; existing ordinals must never be reassigned, or every
// credential already in circulation silently changes meaning.
var roleTable = map[int]Role{
	1: RoleAdmin,
	2: RoleCustomer,
}

// DefaultRole is assigned to freshly signed-up accounts.
const DefaultRole = RoleCustomer

func init() {
	if err := checkRoleTable(roleTable); err != nil {
		panic(err)
	}
}

// checkRoleTable verifies the ordinal domain is contiguous from 1 and that no
// role appears twice.
func checkRoleTable(table map[int]Role) error {
	seen := make(map[Role]int, len(table))
	for n := 1; n <= len(table); n++ {
		r, ok := table[n]
		if !ok {
			return fmt.Errorf("role table: ordinal %d missing, table must be contiguous from 1", n)
		}
		if prev, dup := seen[r]; dup {
			return fmt.Errorf("role table: role %q mapped by both %d and %d", r, prev, n)
		}
		seen[r] = n
	}
	return nil
}

// ResolveRole maps a 1-based credential ordinal to its role.
func ResolveRole(ordinal int) (Role, error) {
	r, ok := roleTable[ordinal]
	if !ok {
		return "", Errorf(ErrInvalidRole, "role ordinal %d is not defined", ordinal)
	}
	return r, nil
}

// Ordinal returns the credential ordinal for r, or 0 when r is not in the table.
func (r Role) Ordinal() int {
	for n, role := range roleTable {
		if role == r {
			return n
		}
	}
	return 0
}

// Roles returns every declared role in ordinal order.
func Roles() []Role {
	ordinals := make([]int, 0, len(roleTable))
	for n := range roleTable {
		ordinals = append(ordinals, n)
	}
	sort.Ints(ordinals)
	out := make([]Role, len(ordinals))
	for i, n := range ordinals {
		out[i] = roleTable[n]
	}
	return out
}

// RoleSet is the declared set of roles a route accepts.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Identity is the verified caller attached to one request. It is never persisted.
type Identity struct {
	UserID      int64
	RoleOrdinal int
	RoleLabel   string
}
