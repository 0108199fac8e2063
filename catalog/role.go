package catalog

import (
	"errors"

	"github.com/herbverse/plantdb"
)

// Role is the caller's permission level.
type Role int

const (
	// RoleUser may read.
	RoleUser Role = iota
	// RoleAdmin may also insert and delete.
	RoleAdmin
)

// ParseRole maps "admin" to RoleAdmin and anything else to RoleUser.
func ParseRole(s string) Role {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// AdminOnlyMessage is what non-admin callers are told when they try to mutate the catalog.
const AdminOnlyMessage = "Only administrators can insert or delete plants."

func requireAdmin(role Role, op string) error {
	if role != RoleAdmin {
		return plantdb.NewError(plantdb.Unauthorized, errors.New(AdminOnlyMessage), op)
	}
	return nil
}
