package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the binary classification of an account.
//
// The wire encoding is an integer flag: 0 for ordinary users,
// 1 for administrators. No third value exists.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// ParseRole rejects anything outside the canonical two-value enumeration.
func ParseRole(v int) (Role, error) {
	switch Role(v) {
	case RoleUser, RoleAdmin:
		return Role(v), nil
	default:
		return 0, fmt.Errorf("unknown role %d", v)
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// Gender is a fixed enumeration required at signup.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender normalizes case before matching so that "Male" and "male"
// are the same value.
func ParseGender(v string) (Gender, error) {
	switch Gender(strings.ToLower(v)) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", fmt.Errorf("unknown gender %q", v)
	}
}

// User is the sole persisted entity: one row per account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Gender       Gender
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleFilter selects a slice of the user population for list and count
// operations.
type RoleFilter int

const (
	// FilterUsers matches every record that is not an admin.
	FilterUsers RoleFilter = iota
	// FilterAdmins matches every record that is not an ordinary user.
	FilterAdmins
	// FilterAll matches every record.
	FilterAll
)

func (f RoleFilter) String() string {
	switch f {
	case FilterUsers:
		return "users"
	case FilterAdmins:
		return "admins"
	default:
		return "all"
	}
}
