package role

import (
	"errors"
	"strings"
)

// Role is one of the three fixed account kinds. It is set when the user is
// created and never changes afterwards.
type Role string

const (
	Doctor  Role = "doctor"
	Patient Role = "patient"
	Admin   Role = "admin"
)

var ErrUnknownRole = errors.New("role must be one of doctor, patient, admin")

// All lists the roles in a stable order.
func All() []Role {
	return []Role{Doctor, Patient, Admin}
}

func (r Role) Valid() bool {
	switch r {
	case Doctor, Patient, Admin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

/*
* Parse lower-cases and trims the raw value
* Returns ErrUnknownRole for anything outside the fixed set
 */
func Parse(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}
