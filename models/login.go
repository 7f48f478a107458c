package models

import "SmartCare360/role"

// Credential is a verified identity. It comes either from a successful login
// or from a verified token and is passed explicitly to every ledger call.
type Credential struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Role  role.Role `json:"role"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Registration struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"licenseNumber"`
}

type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
