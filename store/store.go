package store

import (
	"context"

	"SmartCare360/models"
	"SmartCare360/role"
)

// ScopeKind selects one of the fixed role-scoped query variants.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeDoctor
	ScopePatient
)

// Scope restricts a ledger listing to the rows a caller may see.
type Scope struct {
	Kind   ScopeKind
	UserID string
}

// ScopeFor derives the listing scope from a verified identity.
func ScopeFor(cred models.Credential) Scope {
	switch cred.Role {
	case role.Doctor:
		return Scope{Kind: ScopeDoctor, UserID: cred.ID}
	case role.Patient:
		return Scope{Kind: ScopePatient, UserID: cred.ID}
	}
	return Scope{Kind: ScopeAll}
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUserByEmailAndRole matches on both fields; a user registered under
	// another role is reported as not found.
	FindUserByEmailAndRole(ctx context.Context, email string, r role.Role) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListDoctors(ctx context.Context) ([]models.User, error)
	ListPatientsOfDoctor(ctx context.Context, doctorID string) ([]models.PatientSummary, error)
	DeleteUser(ctx context.Context, id string) error
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, scope Scope) ([]models.AppointmentView, error)
	// TransitionAppointmentStatus moves a scheduled appointment to status and
	// reports whether a row changed. Rows in any other status are untouched.
	TransitionAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (bool, error)
}

type PrescriptionStore interface {
	CreatePrescription(ctx context.Context, p *models.Prescription) error
	ListPrescriptions(ctx context.Context, scope Scope) ([]models.PrescriptionView, error)
}

type AuditStore interface {
	AppendAudit(ctx context.Context, entry *models.AuditLogEntry) error
}

// Store is the single shared row store behind every ledger.
type Store interface {
	UserStore
	AppointmentStore
	PrescriptionStore
	AuditStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
