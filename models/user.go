package models

import (
	"time"

	"SmartCare360/role"
)

type User struct {
	ID             string    `json:"id" bson:"_id" db:"id"`
	Email          string    `json:"email" bson:"email" db:"email"`
	Password       string    `json:"-" bson:"password" db:"password"`
	Role           role.Role `json:"role" bson:"role" db:"role"`
	FirstName      string    `json:"firstName" bson:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" bson:"lastName" db:"last_name"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty" db:"phone"`
	Specialization string    `json:"specialization,omitempty" bson:"specialization,omitempty" db:"specialization"`
	LicenseNumber  string    `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty" db:"license_number"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// FullName is used by the chat assistant and the joined list views.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Credential returns the identity a successful login grants for this user.
func (u User) Credential() Credential {
	return Credential{ID: u.ID, Email: u.Email, Role: u.Role}
}

// PatientSummary is one row of a doctor's patient list.
type PatientSummary struct {
	ID        string `json:"id" bson:"_id" db:"id"`
	FirstName string `json:"firstName" bson:"firstName" db:"first_name"`
	LastName  string `json:"lastName" bson:"lastName" db:"last_name"`
	Email     string `json:"email" bson:"email" db:"email"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty" db:"phone"`
}
